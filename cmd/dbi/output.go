// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

// Output formats for result sets.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

const nullText = "NULL"

// printResult writes every row of res to w. Results without fields print the
// affected row count.
func printResult(w io.Writer, res *dbi.Result, format string) error {
	if res.NumFields() == 0 {
		_, err := fmt.Fprintf(w, "%d row(s) affected\n", res.RowsAffected())
		return err
	}

	names := res.FieldNames()
	switch format {
	case FormatTable, "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(names, "\t"))
		fmt.Fprintln(tw, strings.Join(underline(names), "\t"))
		err := eachRow(res, func(cells []string, _ []bool) error {
			_, err := fmt.Fprintln(tw, strings.Join(cells, "\t"))
			return err
		})
		if err != nil {
			return err
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "(%d row(s))\n", res.NumRows())
		return err

	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(names); err != nil {
			return err
		}
		err := eachRow(res, func(cells []string, _ []bool) error {
			return cw.Write(cells)
		})
		if err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()

	case FormatJSON:
		enc := json.NewEncoder(w)
		return eachRow(res, func(cells []string, nulls []bool) error {
			obj := make(map[string]any, len(cells))
			for i, name := range names {
				if nulls[i] {
					obj[name] = nil
				} else {
					obj[name] = cells[i]
				}
			}
			return enc.Encode(obj)
		})
	}
	return fmt.Errorf("unknown output format %q (must be: table, csv, json)", format)
}

// eachRow walks res from the first row, rendering each field with
// GetAsString.
func eachRow(res *dbi.Result, fn func(cells []string, nulls []bool) error) error {
	n := res.NumFields()
	cells := make([]string, n)
	nulls := make([]bool, n)
	for row := uint64(1); row <= res.NumRows(); row++ {
		if err := res.Seek(row); err != nil {
			return err
		}
		for i := 1; i <= n; i++ {
			isNull, err := res.FieldIsNullIdx(i)
			if err != nil {
				return err
			}
			nulls[i-1] = isNull
			if isNull {
				cells[i-1] = nullText
				continue
			}
			if cells[i-1], err = res.GetAsStringIdx(i); err != nil {
				return err
			}
		}
		if err := fn(cells, nulls); err != nil {
			return err
		}
	}
	return nil
}

func underline(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.Repeat("-", len(n))
	}
	return out
}
