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
package sqlbridge

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

// ToValue converts a value produced by a Go database driver into the dbi
// value for field f. Text from text-protocol engines is parsed according to
// the field type. nil converts to the zero Value, which marks NULL.
func ToValue(f dbi.Field, v any) (dbi.Value, error) {
	if v == nil {
		return dbi.Value{}, nil
	}
	switch f.Type {
	case dbi.TypeInteger:
		return toInteger(f, v)
	case dbi.TypeDecimal:
		return toDecimal(f, v)
	case dbi.TypeString, dbi.TypeEnum, dbi.TypeSet, dbi.TypeBinary:
		return dbi.BytesValue(f.Type, toBytes(v)), nil
	case dbi.TypeDatetime:
		return toDatetime(f, v)
	}
	return dbi.Value{}, fmt.Errorf("field %q has no usable type", f.Name)
}

func toInteger(f dbi.Field, v any) (dbi.Value, error) {
	switch x := v.(type) {
	case int64:
		return dbi.IntegerValue(x), nil
	case int32:
		return dbi.IntegerValue(int64(x)), nil
	case int16:
		return dbi.IntegerValue(int64(x)), nil
	case int8:
		return dbi.IntegerValue(int64(x)), nil
	case int:
		return dbi.IntegerValue(int64(x)), nil
	case uint64:
		return dbi.UnsignedValue(x), nil
	case uint32:
		return dbi.UnsignedValue(uint64(x)), nil
	case uint16:
		return dbi.UnsignedValue(uint64(x)), nil
	case uint8:
		return dbi.UnsignedValue(uint64(x)), nil
	case bool:
		if x {
			return dbi.IntegerValue(1), nil
		}
		return dbi.IntegerValue(0), nil
	case float64:
		return dbi.IntegerValue(int64(x)), nil
	case []byte:
		return parseInteger(f, string(x))
	case string:
		return parseInteger(f, x)
	}
	return dbi.Value{}, fmt.Errorf("cannot convert %T to integer field %q", v, f.Name)
}

func parseInteger(f dbi.Field, s string) (dbi.Value, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "t", "true":
		return dbi.IntegerValue(1), nil
	case "f", "false":
		return dbi.IntegerValue(0), nil
	}
	if f.Attrs.Has(dbi.AttrUnsigned) {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return dbi.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		return dbi.UnsignedValue(n), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return dbi.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return dbi.IntegerValue(n), nil
}

func toDecimal(f dbi.Field, v any) (dbi.Value, error) {
	switch x := v.(type) {
	case float64:
		return dbi.DecimalValue(x), nil
	case float32:
		return dbi.DecimalValue(float64(x)), nil
	case int64:
		return dbi.DecimalValue(float64(x)), nil
	case []byte:
		return parseDecimal(f, string(x))
	case string:
		return parseDecimal(f, x)
	}
	return dbi.Value{}, fmt.Errorf("cannot convert %T to decimal field %q", v, f.Name)
}

func parseDecimal(f dbi.Field, s string) (dbi.Value, error) {
	bits := 64
	if f.Attrs.DecSize() == 4 {
		bits = 32
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), bits)
	if err != nil {
		return dbi.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return dbi.DecimalValue(n), nil
}

func toBytes(v any) []byte {
	switch x := v.(type) {
	case []byte:
		return bytes.Clone(x)
	case string:
		return []byte(x)
	case time.Time:
		return []byte(x.UTC().Format("2006-01-02 15:04:05"))
	case int64:
		return strconv.AppendInt(nil, x, 10)
	case float64:
		return strconv.AppendFloat(nil, x, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(nil, x)
	}
	return []byte(fmt.Sprint(v))
}

func toDatetime(f dbi.Field, v any) (dbi.Value, error) {
	switch x := v.(type) {
	case time.Time:
		if dbi.Isolate(f.Attrs, dbi.AttrDate, dbi.AttrTime) == dbi.AttrTime {
			// Time-only columns keep the time of day on 1970-01-01.
			return dbi.DatetimeValue(dbi.TimeOfDay(x)), nil
		}
		return dbi.TimeValue(x), nil
	case int64:
		return dbi.DatetimeValue(x), nil
	case []byte:
		return parseDatetime(f, string(x))
	case string:
		return parseDatetime(f, x)
	}
	return dbi.Value{}, fmt.Errorf("cannot convert %T to datetime field %q", v, f.Name)
}

func parseDatetime(f dbi.Field, s string) (dbi.Value, error) {
	epoch, err := dbi.ParseDatetime(s, f.Attrs)
	if err != nil {
		return dbi.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return dbi.DatetimeValue(epoch), nil
}
