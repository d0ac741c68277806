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
package dbi

import (
	"bytes"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// formatCode is one conversion of the field format mini-language.
type formatCode int

const (
	codeInvalid formatCode = iota
	codeChar
	codeUChar
	codeShort
	codeUShort
	codeInt
	codeUInt
	codeLongLong
	codeULongLong
	codeFloat
	codeDouble
	codeString
	codeBinary
	codeStringCopy
	codeBinaryCopy
	codeDatetime
)

var formatCodes = map[string]formatCode{
	"c":  codeChar,
	"uc": codeUChar,
	"h":  codeShort,
	"uh": codeUShort,
	"l":  codeInt,
	"ul": codeUInt,
	"i":  codeInt,
	"ui": codeUInt,
	"L":  codeLongLong,
	"uL": codeULongLong,
	"f":  codeFloat,
	"d":  codeDouble,
	"s":  codeString,
	"b":  codeBinary,
	"S":  codeStringCopy,
	"B":  codeBinaryCopy,
	"m":  codeDatetime,
}

// destination names the Go type each code writes through.
func (c formatCode) destination() string {
	switch c {
	case codeChar:
		return "*int8"
	case codeUChar:
		return "*uint8"
	case codeShort:
		return "*int16"
	case codeUShort:
		return "*uint16"
	case codeInt:
		return "*int32"
	case codeUInt:
		return "*uint32"
	case codeLongLong:
		return "*int64"
	case codeULongLong:
		return "*uint64"
	case codeFloat:
		return "*float32"
	case codeDouble:
		return "*float64"
	case codeString, codeStringCopy:
		return "*string"
	case codeBinary, codeBinaryCopy:
		return "*[]byte"
	case codeDatetime:
		return "*time.Time"
	default:
		return "nothing"
	}
}

// fieldSpec is one "name.%code" token.
type fieldSpec struct {
	name string
	code formatCode
	raw  string
}

// parseFormat splits a format string such as "id.%l name.%s" into tokens.
// A token without a ".%" separator fails the whole format with KindBadName.
// An unknown code yields codeInvalid so the caller can skip the token.
func parseFormat(format string) ([]fieldSpec, error) {
	tokens := strings.Fields(format)
	specs := make([]fieldSpec, 0, len(tokens))
	for _, tok := range tokens {
		sep := strings.LastIndex(tok, ".%")
		if sep <= 0 {
			return nil, newError(KindBadName, "format token %q has no field name", tok)
		}
		specs = append(specs, fieldSpec{
			name: tok[:sep],
			code: formatCodes[tok[sep+2:]],
			raw:  tok,
		})
	}
	return specs, nil
}

// checkCode validates a field's type and width against a conversion.
func (r *Result) checkCode(pos int, code formatCode) error {
	switch code {
	case codeChar, codeUChar:
		return r.checkInteger(pos, 1)
	case codeShort, codeUShort:
		return r.checkInteger(pos, 2)
	case codeInt, codeUInt:
		return r.checkInteger(pos, 4)
	case codeLongLong, codeULongLong:
		return r.checkInteger(pos, 8)
	case codeFloat:
		return r.checkDecimal(pos, 4)
	case codeDouble:
		return r.checkDecimal(pos, 8)
	case codeString, codeStringCopy:
		return r.checkString(pos)
	case codeBinary, codeBinaryCopy:
		return r.checkBinary(pos)
	case codeDatetime:
		return r.checkDatetime(pos)
	default:
		return r.fail(newError(KindBadType, "unknown format code"))
	}
}

// checkDest verifies dst is a non-nil pointer of the type code writes.
func checkDest(code formatCode, dst any) error {
	ok := false
	switch p := dst.(type) {
	case *int8:
		ok = p != nil && code == codeChar
	case *uint8:
		ok = p != nil && code == codeUChar
	case *int16:
		ok = p != nil && code == codeShort
	case *uint16:
		ok = p != nil && code == codeUShort
	case *int32:
		ok = p != nil && code == codeInt
	case *uint32:
		ok = p != nil && code == codeUInt
	case *int64:
		ok = p != nil && code == codeLongLong
	case *uint64:
		ok = p != nil && code == codeULongLong
	case *float32:
		ok = p != nil && code == codeFloat
	case *float64:
		ok = p != nil && code == codeDouble
	case *string:
		ok = p != nil && (code == codeString || code == codeStringCopy)
	case *[]byte:
		ok = p != nil && (code == codeBinary || code == codeBinaryCopy)
	case *time.Time:
		ok = p != nil && code == codeDatetime
	}
	if !ok {
		return newError(KindBadPointer, "destination must be a non-nil %s, got %T", code.destination(), dst)
	}
	return nil
}

// isNilDest reports whether dst is nil or a typed nil pointer.
func isNilDest(dst any) bool {
	switch p := dst.(type) {
	case nil:
		return true
	case *int8:
		return p == nil
	case *uint8:
		return p == nil
	case *int16:
		return p == nil
	case *uint16:
		return p == nil
	case *int32:
		return p == nil
	case *uint32:
		return p == nil
	case *int64:
		return p == nil
	case *uint64:
		return p == nil
	case *float32:
		return p == nil
	case *float64:
		return p == nil
	case *string:
		return p == nil
	case *[]byte:
		return p == nil
	case *time.Time:
		return p == nil
	}
	return false
}

// assign writes the value at pos of row into dst. Type, width and
// destination have already been checked. NULL writes the zero value.
func assign(row *Row, pos int, code formatCode, dst any) {
	v := row.values[pos]
	if row.IsNull(pos) {
		v = Value{typ: v.typ}
	}
	switch code {
	case codeChar:
		*dst.(*int8) = int8(v.i)
	case codeUChar:
		*dst.(*uint8) = uint8(v.i)
	case codeShort:
		*dst.(*int16) = int16(v.i)
	case codeUShort:
		*dst.(*uint16) = uint16(v.i)
	case codeInt:
		*dst.(*int32) = int32(v.i)
	case codeUInt:
		*dst.(*uint32) = uint32(v.i)
	case codeLongLong:
		*dst.(*int64) = v.i
	case codeULongLong:
		*dst.(*uint64) = uint64(v.i)
	case codeFloat:
		*dst.(*float32) = float32(v.f)
	case codeDouble:
		*dst.(*float64) = v.f
	case codeString, codeStringCopy:
		*dst.(*string) = string(v.b)
	case codeBinary:
		*dst.(*[]byte) = v.b
	case codeBinaryCopy:
		*dst.(*[]byte) = bytes.Clone(v.b)
	case codeDatetime:
		if row.IsNull(pos) {
			*dst.(*time.Time) = time.Time{}
		} else {
			*dst.(*time.Time) = v.Time()
		}
	}
}

// GetFields reads several fields of the current row in one call, e.g.
//
//	n, err := res.GetFields("id.%l name.%s", &id, &name)
//
// Destinations are consumed in order by every well-formed token. Tokens
// with an unknown code are skipped and consume no destination. The count is
// the number of fields written; failures of individual tokens are combined
// into the returned error. A malformed token returns FieldError.
func (r *Result) GetFields(format string, dest ...any) (int, error) {
	r.begin()
	if r.freed {
		return FieldError, newError(KindBadPointer, "result is freed")
	}
	specs, err := parseFormat(format)
	if err != nil {
		return FieldError, r.fail(err.(*Error))
	}
	row, err := r.current()
	if err != nil {
		return FieldError, err
	}

	n, next := 0, 0
	var errs error
	for _, s := range specs {
		if s.code == codeInvalid {
			errs = multierr.Append(errs, r.fail(newError(KindBadType, "unknown format code in %q", s.raw)))
			continue
		}
		if next >= len(dest) {
			errs = multierr.Append(errs, r.fail(newError(KindBadIndex, "no destination for %q", s.raw)))
			break
		}
		dst := dest[next]
		next++

		pos, err := r.pos(s.name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := r.checkCode(pos, s.code); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if err := checkDest(s.code, dst); err != nil {
			errs = multierr.Append(errs, r.fail(err.(*Error)))
			continue
		}
		assign(row, pos, s.code, dst)
		n++
	}
	return n, errs
}
