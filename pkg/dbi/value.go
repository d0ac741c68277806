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
	"time"
)

// Value is one column value of a fetched row.
//
// The active representation is selected by the type tag: integers are kept as
// a 64-bit pattern (unsigned columns reinterpret it), decimals as float64,
// strings and binaries as a byte buffer owned by the value, and datetimes as
// seconds since the Unix epoch in UTC.
type Value struct {
	typ   FieldType
	i     int64
	f     float64
	b     []byte
	epoch int64
}

// IntegerValue builds an integer value. Unsigned columns pass the bit pattern.
func IntegerValue(v int64) Value {
	return Value{typ: TypeInteger, i: v}
}

// UnsignedValue builds an integer value from an unsigned quantity.
func UnsignedValue(v uint64) Value {
	return Value{typ: TypeInteger, i: int64(v)}
}

// DecimalValue builds a decimal value.
func DecimalValue(v float64) Value {
	return Value{typ: TypeDecimal, f: v}
}

// BytesValue builds a string, enum, set or binary value. The value takes
// ownership of b; callers must not modify it afterwards.
func BytesValue(typ FieldType, b []byte) Value {
	return Value{typ: typ, b: b}
}

// StringValue builds a string value from s.
func StringValue(s string) Value {
	return Value{typ: TypeString, b: []byte(s)}
}

// DatetimeValue builds a datetime value from epoch seconds.
func DatetimeValue(epoch int64) Value {
	return Value{typ: TypeDatetime, epoch: epoch}
}

// TimeValue builds a datetime value from t, truncated to whole seconds.
func TimeValue(t time.Time) Value {
	return Value{typ: TypeDatetime, epoch: t.Unix()}
}

// Type returns the value's type tag.
func (v Value) Type() FieldType { return v.typ }

// Int64 returns the integer payload.
func (v Value) Int64() int64 { return v.i }

// Uint64 returns the integer payload reinterpreted as unsigned.
func (v Value) Uint64() uint64 { return uint64(v.i) }

// Float64 returns the decimal payload.
func (v Value) Float64() float64 { return v.f }

// Bytes returns the byte buffer. The slice is owned by the value.
func (v Value) Bytes() []byte { return v.b }

// Epoch returns the datetime payload in seconds since the Unix epoch.
func (v Value) Epoch() int64 { return v.epoch }

// Time returns the datetime payload as a UTC time.
func (v Value) Time() time.Time { return time.Unix(v.epoch, 0).UTC() }

// Clone returns a copy whose byte buffer is not shared with v.
func (v Value) Clone() Value {
	if v.b != nil {
		v.b = bytes.Clone(v.b)
	}
	return v
}

// Equal reports whether two values carry the same tag and payload.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeInteger:
		return v.i == o.i
	case TypeDecimal:
		return v.f == o.f
	case TypeDatetime:
		return v.epoch == o.epoch
	default:
		return bytes.Equal(v.b, o.b)
	}
}

// byteLen is the length recorded for the value in its row.
func (v Value) byteLen() int {
	switch v.typ {
	case TypeString, TypeBinary, TypeEnum, TypeSet:
		return len(v.b)
	default:
		return 0
	}
}

// release drops the byte buffer so it is not reachable through the value.
func (v *Value) release() {
	v.b = nil
}
