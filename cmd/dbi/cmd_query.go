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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

var (
	queryFormat string
	queryFile   string
)

var queryCmd = &cobra.Command{
	Use:   "query [statement]",
	Short: "Run a statement and print its result",
	Long: `Run one SQL statement and print the rows it returns, or the number of
rows it changed.

Examples:
  dbi query -d sqlite3 -D app.db "SELECT * FROM users"
  dbi query -p shop --format csv "SELECT id, total FROM orders"
  dbi query -p shop -f migration.sql`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryFormat, "format", FormatTable, "output format (table, csv, json)")
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "read the statement from a file (- for stdin)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	stmt, err := readStatement(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), config)
	if err != nil {
		return err
	}
	defer s.Close()

	return execute(cmd, s.conn, stmt, queryFormat)
}

// execute runs stmt on conn and prints the result to the command's output.
func execute(cmd *cobra.Command, conn *dbi.Conn, stmt []byte, format string) error {
	res, err := conn.QueryBytes(cmd.Context(), stmt)
	if err != nil {
		return err
	}
	defer res.Free()
	return printResult(cmd.OutOrStdout(), res, format)
}

func readStatement(stdin io.Reader, args []string) ([]byte, error) {
	switch {
	case queryFile == "-":
		return io.ReadAll(stdin)
	case queryFile != "":
		return os.ReadFile(queryFile)
	case len(args) == 1 && strings.TrimSpace(args[0]) != "":
		return []byte(args[0]), nil
	}
	return nil, fmt.Errorf("no statement given")
}
