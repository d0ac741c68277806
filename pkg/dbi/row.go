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

// nullSet is a bit-per-field NULL flag set.
type nullSet []uint64

func newNullSet(n int) nullSet {
	return make(nullSet, (n+63)/64)
}

func (s nullSet) set(i int) {
	s[i/64] |= 1 << (uint(i) % 64)
}

func (s nullSet) has(i int) bool {
	return s[i/64]&(1<<(uint(i)%64)) != 0
}

// Row is one fetched record. Values, lengths and NULL flags are parallel to
// the Result's field list. A Row is immutable once materialized and owns the
// byte buffers of its string and binary values.
type Row struct {
	values  []Value
	lengths []int
	nulls   nullSet
}

// NumFields returns the number of values in the row.
func (r *Row) NumFields() int { return len(r.values) }

// Value returns the value at 0-based position i.
func (r *Row) Value(i int) Value { return r.values[i] }

// IsNull reports whether the value at 0-based position i is NULL.
func (r *Row) IsNull(i int) bool { return r.nulls.has(i) }

// Length returns the byte length of the value at 0-based position i: 0 for
// NULL, the buffer length for variable-length types, 0 for fixed-width types.
func (r *Row) Length(i int) int { return r.lengths[i] }

// release drops every owned buffer. It is called exactly once, by the owning
// Result when it frees its row table.
func (r *Row) release() {
	for i := range r.values {
		r.values[i].release()
	}
	r.values = nil
	r.lengths = nil
	r.nulls = nil
}

// RowBuilder collects the values of one row during a driver fetch. Positions
// are 0-based. Every setter checks the value against the field's declared type
// so a materialized Row never holds a value whose tag disagrees with its field.
type RowBuilder struct {
	fields []Field
	values []Value
	nulls  nullSet
}

func newRowBuilder(fields []Field) *RowBuilder {
	b := &RowBuilder{
		fields: fields,
		values: make([]Value, len(fields)),
		nulls:  newNullSet(len(fields)),
	}
	// Positions the driver never sets read as NULL.
	for i := range fields {
		b.nulls.set(i)
	}
	return b
}

// NewRowBuilder creates a builder for one row of fields. Results create their
// own builders; drivers use this to exercise FetchRow outside a Result.
func NewRowBuilder(fields []Field) *RowBuilder {
	return newRowBuilder(fields)
}

// Build freezes the builder into a Row.
func (b *RowBuilder) Build() *Row {
	return b.build()
}

// NumFields returns the number of positions in the row.
func (b *RowBuilder) NumFields() int { return len(b.fields) }

// Field returns the metadata of the field at 0-based position i.
func (b *RowBuilder) Field(i int) Field { return b.fields[i] }

// Set stores v at position i. The value's tag must equal the field's type.
func (b *RowBuilder) Set(i int, v Value) error {
	if i < 0 || i >= len(b.fields) {
		return newError(KindBadIndex, "field position %d out of range [0,%d)", i, len(b.fields))
	}
	if v.typ != b.fields[i].Type {
		return newError(KindBadType, "field %q is %s, got %s value", b.fields[i].Name, b.fields[i].Type, v.typ)
	}
	b.values[i] = v
	b.nulls[i/64] &^= 1 << (uint(i) % 64)
	return nil
}

// SetNull marks position i as NULL.
func (b *RowBuilder) SetNull(i int) error {
	if i < 0 || i >= len(b.fields) {
		return newError(KindBadIndex, "field position %d out of range [0,%d)", i, len(b.fields))
	}
	b.values[i] = Value{typ: b.fields[i].Type}
	b.nulls.set(i)
	return nil
}

// SetInteger stores a signed integer at position i.
func (b *RowBuilder) SetInteger(i int, v int64) error {
	return b.Set(i, IntegerValue(v))
}

// SetUnsigned stores an unsigned integer at position i.
func (b *RowBuilder) SetUnsigned(i int, v uint64) error {
	return b.Set(i, UnsignedValue(v))
}

// SetDecimal stores a decimal at position i.
func (b *RowBuilder) SetDecimal(i int, v float64) error {
	return b.Set(i, DecimalValue(v))
}

// SetBytes stores a byte buffer at position i, tagged with the field's own
// type. The row takes ownership of p.
func (b *RowBuilder) SetBytes(i int, p []byte) error {
	if i < 0 || i >= len(b.fields) {
		return newError(KindBadIndex, "field position %d out of range [0,%d)", i, len(b.fields))
	}
	typ := b.fields[i].Type
	if !typ.textual() && typ != TypeBinary {
		return newError(KindBadType, "field %q is %s, cannot hold bytes", b.fields[i].Name, typ)
	}
	if p == nil {
		p = []byte{}
	}
	return b.Set(i, BytesValue(typ, p))
}

// SetString stores text at position i.
func (b *RowBuilder) SetString(i int, s string) error {
	return b.SetBytes(i, []byte(s))
}

// SetDatetime stores epoch seconds at position i.
func (b *RowBuilder) SetDatetime(i int, epoch int64) error {
	return b.Set(i, DatetimeValue(epoch))
}

// build freezes the builder into a Row. The builder must not be used after.
func (b *RowBuilder) build() *Row {
	row := &Row{
		values:  b.values,
		lengths: make([]int, len(b.values)),
		nulls:   b.nulls,
	}
	for i, v := range b.values {
		if !row.nulls.has(i) {
			row.lengths[i] = v.byteLen()
		}
	}
	b.values = nil
	b.nulls = nil
	return row
}
