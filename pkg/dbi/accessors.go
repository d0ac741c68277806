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
	"strconv"
	"time"
)

// Typed accessors read a field of the current row. Each one checks the
// field's declared type and width: an integer accessor accepts only fields
// no wider than its result, so a 2-byte accessor rejects a 4-byte column
// with KindBadType rather than truncate. A NULL value reads as the zero
// value of the accessor's type with a nil error; use FieldIsNull to tell
// NULL from zero.

func (r *Result) checkInteger(pos, width int) error {
	f := r.fields[pos]
	if f.Type != TypeInteger {
		return r.fail(newError(KindBadType, "field %q is %s, not integer", f.Name, f.Type))
	}
	size := f.Attrs.IntSize()
	if size == 0 {
		size = 8
	}
	if size > width {
		return r.fail(newError(KindBadType, "field %q is %d bytes wide, accessor holds %d", f.Name, size, width))
	}
	return nil
}

func (r *Result) checkDecimal(pos, width int) error {
	f := r.fields[pos]
	if f.Type != TypeDecimal {
		return r.fail(newError(KindBadType, "field %q is %s, not decimal", f.Name, f.Type))
	}
	size := f.Attrs.DecSize()
	if size == 0 {
		size = 8
	}
	if size > width {
		return r.fail(newError(KindBadType, "field %q is %d bytes wide, accessor holds %d", f.Name, size, width))
	}
	return nil
}

func (r *Result) checkString(pos int) error {
	f := r.fields[pos]
	if !f.Type.textual() {
		return r.fail(newError(KindBadType, "field %q is %s, not string", f.Name, f.Type))
	}
	return nil
}

func (r *Result) checkBinary(pos int) error {
	f := r.fields[pos]
	if f.Type != TypeBinary {
		return r.fail(newError(KindBadType, "field %q is %s, not binary", f.Name, f.Type))
	}
	return nil
}

func (r *Result) checkDatetime(pos int) error {
	f := r.fields[pos]
	if f.Type != TypeDatetime {
		return r.fail(newError(KindBadType, "field %q is %s, not datetime", f.Name, f.Type))
	}
	return nil
}

// currentValue returns the value at pos in the current row and whether it
// is NULL.
func (r *Result) currentValue(pos int) (Value, bool, error) {
	row, err := r.current()
	if err != nil {
		return Value{}, false, err
	}
	return row.values[pos], row.IsNull(pos), nil
}

func (r *Result) integerAt(pos, width int) (int64, error) {
	if err := r.checkInteger(pos, width); err != nil {
		return 0, err
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return 0, err
	}
	return v.i, nil
}

func (r *Result) decimalAt(pos, width int) (float64, error) {
	if err := r.checkDecimal(pos, width); err != nil {
		return 0, err
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return 0, err
	}
	return v.f, nil
}

func (r *Result) stringAt(pos int) (string, error) {
	if err := r.checkString(pos); err != nil {
		return "", err
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return "", err
	}
	return string(v.b), nil
}

func (r *Result) binaryAt(pos int, copied bool) ([]byte, error) {
	if err := r.checkBinary(pos); err != nil {
		return nil, err
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return nil, err
	}
	if copied {
		return bytes.Clone(v.b), nil
	}
	return v.b, nil
}

func (r *Result) datetimeAt(pos int) (time.Time, error) {
	if err := r.checkDatetime(pos); err != nil {
		return time.Time{}, err
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return time.Time{}, err
	}
	return v.Time(), nil
}

// GetChar returns a 1-byte integer field.
func (r *Result) GetChar(name string) (int8, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 1)
	return int8(v), err
}

// GetCharIdx is GetChar by 1-based index.
func (r *Result) GetCharIdx(idx int) (int8, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 1)
	return int8(v), err
}

// GetUChar returns a 1-byte unsigned integer field.
func (r *Result) GetUChar(name string) (uint8, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 1)
	return uint8(v), err
}

// GetUCharIdx is GetUChar by 1-based index.
func (r *Result) GetUCharIdx(idx int) (uint8, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 1)
	return uint8(v), err
}

// GetShort returns an integer field at most 2 bytes wide.
func (r *Result) GetShort(name string) (int16, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 2)
	return int16(v), err
}

// GetShortIdx is GetShort by 1-based index.
func (r *Result) GetShortIdx(idx int) (int16, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 2)
	return int16(v), err
}

// GetUShort returns an unsigned integer field at most 2 bytes wide.
func (r *Result) GetUShort(name string) (uint16, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 2)
	return uint16(v), err
}

// GetUShortIdx is GetUShort by 1-based index.
func (r *Result) GetUShortIdx(idx int) (uint16, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 2)
	return uint16(v), err
}

// GetInt returns an integer field at most 4 bytes wide.
func (r *Result) GetInt(name string) (int32, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 4)
	return int32(v), err
}

// GetIntIdx is GetInt by 1-based index.
func (r *Result) GetIntIdx(idx int) (int32, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 4)
	return int32(v), err
}

// GetUInt returns an unsigned integer field at most 4 bytes wide.
func (r *Result) GetUInt(name string) (uint32, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 4)
	return uint32(v), err
}

// GetUIntIdx is GetUInt by 1-based index.
func (r *Result) GetUIntIdx(idx int) (uint32, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 4)
	return uint32(v), err
}

// GetLongLong returns an integer field of any width.
func (r *Result) GetLongLong(name string) (int64, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return r.integerAt(pos, 8)
}

// GetLongLongIdx is GetLongLong by 1-based index.
func (r *Result) GetLongLongIdx(idx int) (int64, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	return r.integerAt(pos, 8)
}

// GetULongLong returns an unsigned integer field of any width.
func (r *Result) GetULongLong(name string) (uint64, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 8)
	return uint64(v), err
}

// GetULongLongIdx is GetULongLong by 1-based index.
func (r *Result) GetULongLongIdx(idx int) (uint64, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.integerAt(pos, 8)
	return uint64(v), err
}

// GetFloat returns a 4-byte decimal field.
func (r *Result) GetFloat(name string) (float32, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	v, err := r.decimalAt(pos, 4)
	return float32(v), err
}

// GetFloatIdx is GetFloat by 1-based index.
func (r *Result) GetFloatIdx(idx int) (float32, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	v, err := r.decimalAt(pos, 4)
	return float32(v), err
}

// GetDouble returns a decimal field of either width.
func (r *Result) GetDouble(name string) (float64, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return r.decimalAt(pos, 8)
}

// GetDoubleIdx is GetDouble by 1-based index.
func (r *Result) GetDoubleIdx(idx int) (float64, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	return r.decimalAt(pos, 8)
}

// GetString returns a string, enum or set field.
func (r *Result) GetString(name string) (string, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return "", err
	}
	return r.stringAt(pos)
}

// GetStringIdx is GetString by 1-based index.
func (r *Result) GetStringIdx(idx int) (string, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return "", err
	}
	return r.stringAt(pos)
}

// GetStringCopy is GetString; the returned string never aliases row memory.
func (r *Result) GetStringCopy(name string) (string, error) {
	return r.GetString(name)
}

// GetStringCopyIdx is GetStringCopy by 1-based index.
func (r *Result) GetStringCopyIdx(idx int) (string, error) {
	return r.GetStringIdx(idx)
}

// GetBinary returns a binary field. The slice is owned by the Result and
// valid until Free; callers must not modify it.
func (r *Result) GetBinary(name string) ([]byte, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return nil, err
	}
	return r.binaryAt(pos, false)
}

// GetBinaryIdx is GetBinary by 1-based index.
func (r *Result) GetBinaryIdx(idx int) ([]byte, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return nil, err
	}
	return r.binaryAt(pos, false)
}

// GetBinaryCopy returns a caller-owned copy of a binary field.
func (r *Result) GetBinaryCopy(name string) ([]byte, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return nil, err
	}
	return r.binaryAt(pos, true)
}

// GetBinaryCopyIdx is GetBinaryCopy by 1-based index.
func (r *Result) GetBinaryCopyIdx(idx int) ([]byte, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return nil, err
	}
	return r.binaryAt(pos, true)
}

// GetDatetime returns a datetime field in UTC. NULL reads as the zero Time.
func (r *Result) GetDatetime(name string) (time.Time, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return time.Time{}, err
	}
	return r.datetimeAt(pos)
}

// GetDatetimeIdx is GetDatetime by 1-based index.
func (r *Result) GetDatetimeIdx(idx int) (time.Time, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return time.Time{}, err
	}
	return r.datetimeAt(pos)
}

// GetAsLongLong converts any numeric, string or datetime field to int64.
// Strings that do not parse read as 0. Binary fields are rejected.
func (r *Result) GetAsLongLong(name string) (int64, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return r.asLongLong(pos)
}

// GetAsLongLongIdx is GetAsLongLong by 1-based index.
func (r *Result) GetAsLongLongIdx(idx int) (int64, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	return r.asLongLong(pos)
}

func (r *Result) asLongLong(pos int) (int64, error) {
	f := r.fields[pos]
	if f.Type == TypeBinary || f.Type == TypeUnknown {
		return 0, r.fail(newError(KindBadType, "field %q is %s, not convertible", f.Name, f.Type))
	}
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return 0, err
	}
	switch f.Type {
	case TypeInteger:
		return v.i, nil
	case TypeDecimal:
		return int64(v.f), nil
	case TypeDatetime:
		return v.epoch, nil
	default:
		n, perr := strconv.ParseInt(string(bytes.TrimSpace(v.b)), 10, 64)
		if perr != nil {
			return 0, nil
		}
		return n, nil
	}
}

// GetAsString renders any field as text. NULL reads as "".
func (r *Result) GetAsString(name string) (string, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return "", err
	}
	return r.asString(pos)
}

// GetAsStringIdx is GetAsString by 1-based index.
func (r *Result) GetAsStringIdx(idx int) (string, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return "", err
	}
	return r.asString(pos)
}

func (r *Result) asString(pos int) (string, error) {
	f := r.fields[pos]
	v, null, err := r.currentValue(pos)
	if err != nil || null {
		return "", err
	}
	switch f.Type {
	case TypeInteger:
		if f.Attrs.Has(AttrUnsigned) {
			return strconv.FormatUint(v.Uint64(), 10), nil
		}
		return strconv.FormatInt(v.i, 10), nil
	case TypeDecimal:
		bits := 64
		if f.Attrs.DecSize() == 4 {
			bits = 32
		}
		return strconv.FormatFloat(v.f, 'f', -1, bits), nil
	case TypeDatetime:
		return FormatDatetime(v.epoch, f.Attrs), nil
	default:
		return string(v.b), nil
	}
}
