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
	"math"

	"golang.org/x/text/cases"
)

// ResultState is the fetch state of a Result.
type ResultState int

const (
	// StateNothingReturned means the statement produced no rows.
	StateNothingReturned ResultState = iota
	// StateRowsReturned means rows exist but none has been fetched.
	StateRowsReturned
	// StateGettingRows means at least one row has been fetched.
	StateGettingRows
)

func (s ResultState) String() string {
	switch s {
	case StateNothingReturned:
		return "nothing returned"
	case StateRowsReturned:
		return "rows returned"
	case StateGettingRows:
		return "getting rows"
	default:
		return "unknown"
	}
}

// FieldError is the field count reported when a result or format string is
// unusable.
const FieldError = -1

// Result is the outcome of one statement: field metadata plus a lazily
// filled cache of rows. Row indices are 1-based; row 0 means no current row.
type Result struct {
	conn   *Conn
	handle QueryHandle

	numRows  uint64
	affected uint64
	fields   []Field
	index    map[string]int

	rows   []*Row
	cursor uint64
	high   uint64
	state  ResultState

	bindings []*binding
	freed    bool
}

func newResult(c *Conn, qh QueryHandle) (*Result, *Error) {
	r := &Result{
		conn:     c,
		handle:   qh,
		numRows:  qh.NumRows(),
		affected: qh.RowsAffected(),
	}
	if r.numRows >= math.MaxInt32 {
		return nil, newError(KindNoMemory, "cannot cache %d rows", r.numRows)
	}

	fields := qh.Fields()
	r.setFieldCount(len(fields))
	for i, f := range fields {
		if err := r.addField(i+1, f.Name, f.Type, f.Attrs); err != nil {
			r.release()
			return nil, driverError(err, "describe field")
		}
	}

	r.rows = make([]*Row, r.numRows+1)
	if r.numRows > 0 {
		r.state = StateRowsReturned
	}
	return r, nil
}

// setFieldCount sizes the metadata arrays. Called once during creation.
func (r *Result) setFieldCount(n int) {
	r.fields = make([]Field, n)
	r.index = make(map[string]int, n)
}

// addField records the metadata of the field at 1-based idx. Setting the same
// index again replaces the previous entry.
func (r *Result) addField(idx int, name string, typ FieldType, attrs Attribute) error {
	if r.fields == nil && idx > 0 {
		return newError(KindBadObject, "field count not set")
	}
	if idx < 1 || idx > len(r.fields) {
		return newError(KindBadIndex, "field index %d out of range [1,%d]", idx, len(r.fields))
	}
	if old := r.fields[idx-1].Name; old != "" {
		if pos, ok := r.index[foldName(old)]; ok && pos == idx-1 {
			delete(r.index, foldName(old))
		}
	}
	r.fields[idx-1] = Field{Name: name, Type: typ, Attrs: attrs}
	key := foldName(name)
	if _, dup := r.index[key]; !dup {
		r.index[key] = idx - 1
	}
	return nil
}

func foldName(name string) string {
	return cases.Fold().String(name)
}

func (r *Result) isRowFetched(row uint64) bool {
	return row >= 1 && row < uint64(len(r.rows)) && r.rows[row] != nil
}

// Conn returns the owning connection, or nil once the Result is disjoined
// or freed.
func (r *Result) Conn() *Conn {
	return r.conn
}

// State returns the fetch state.
func (r *Result) State() ResultState {
	return r.state
}

// NumRows returns the number of rows the statement matched.
func (r *Result) NumRows() uint64 {
	return r.numRows
}

// RowsAffected returns the number of rows the statement changed.
func (r *Result) RowsAffected() uint64 {
	return r.affected
}

// NumFields returns the number of fields, or FieldError for a freed Result.
func (r *Result) NumFields() int {
	if r.freed {
		return FieldError
	}
	return len(r.fields)
}

// Fields returns a copy of the field metadata.
func (r *Result) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// FieldNames returns the field names in order.
func (r *Result) FieldNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// FieldName returns the name of the field at 1-based idx.
func (r *Result) FieldName(idx int) (string, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return "", err
	}
	return r.fields[pos].Name, nil
}

// FieldIndex returns the 1-based index of the named field. Names compare
// case-insensitively.
func (r *Result) FieldIndex(name string) (int, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return pos + 1, nil
}

// FieldType returns the type of the named field.
func (r *Result) FieldType(name string) (FieldType, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return TypeUnknown, err
	}
	return r.fields[pos].Type, nil
}

// FieldTypeIdx returns the type of the field at 1-based idx.
func (r *Result) FieldTypeIdx(idx int) (FieldType, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return TypeUnknown, err
	}
	return r.fields[pos].Type, nil
}

// FieldAttrs returns the attribute bits of the named field.
func (r *Result) FieldAttrs(name string) (Attribute, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return r.fields[pos].Attrs, nil
}

// FieldAttrsIdx returns the attribute bits of the field at 1-based idx.
func (r *Result) FieldAttrsIdx(idx int) (Attribute, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	return r.fields[pos].Attrs, nil
}

// FieldAttr returns the named field's attribute bits between min and max
// inclusive. See Isolate.
func (r *Result) FieldAttr(name string, min, max Attribute) (Attribute, error) {
	attrs, err := r.FieldAttrs(name)
	if err != nil {
		return 0, err
	}
	return Isolate(attrs, min, max), nil
}

// FieldAttrIdx is FieldAttr by 1-based index.
func (r *Result) FieldAttrIdx(idx int, min, max Attribute) (Attribute, error) {
	attrs, err := r.FieldAttrsIdx(idx)
	if err != nil {
		return 0, err
	}
	return Isolate(attrs, min, max), nil
}

// FieldLength returns the byte length of the named field in the current row.
func (r *Result) FieldLength(name string) (int, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return 0, err
	}
	return r.lengthAt(pos)
}

// FieldLengthIdx returns the byte length of the field at 1-based idx in the
// current row.
func (r *Result) FieldLengthIdx(idx int) (int, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return 0, err
	}
	return r.lengthAt(pos)
}

func (r *Result) lengthAt(pos int) (int, error) {
	row, err := r.current()
	if err != nil {
		return 0, err
	}
	return row.Length(pos), nil
}

// FieldIsNull reports whether the named field is NULL in the current row.
func (r *Result) FieldIsNull(name string) (bool, error) {
	r.begin()
	pos, err := r.pos(name)
	if err != nil {
		return false, err
	}
	row, err := r.current()
	if err != nil {
		return false, err
	}
	return row.IsNull(pos), nil
}

// FieldIsNullIdx is FieldIsNull by 1-based index.
func (r *Result) FieldIsNullIdx(idx int) (bool, error) {
	r.begin()
	pos, err := r.posIdx(idx)
	if err != nil {
		return false, err
	}
	row, err := r.current()
	if err != nil {
		return false, err
	}
	return row.IsNull(pos), nil
}

// pos resolves a field name to its 0-based position.
func (r *Result) pos(name string) (int, error) {
	if r.freed {
		return 0, newError(KindBadPointer, "result is freed")
	}
	pos, ok := r.index[foldName(name)]
	if !ok {
		return 0, r.fail(newError(KindBadName, "no field named %q", name))
	}
	return pos, nil
}

// posIdx converts a 1-based field index to a 0-based position.
func (r *Result) posIdx(idx int) (int, error) {
	if r.freed {
		return 0, newError(KindBadPointer, "result is freed")
	}
	if idx < 1 || idx > len(r.fields) {
		return 0, r.fail(newError(KindBadIndex, "field index %d out of range [1,%d]", idx, len(r.fields)))
	}
	return idx - 1, nil
}

// current returns the row under the cursor.
func (r *Result) current() (*Row, error) {
	if r.freed {
		return nil, newError(KindBadPointer, "result is freed")
	}
	if r.cursor == 0 || !r.isRowFetched(r.cursor) {
		return nil, r.fail(newError(KindBadObject, "no current row"))
	}
	return r.rows[r.cursor], nil
}

// begin clears the owning connection's error state. Every public operation
// that can fail calls it first.
func (r *Result) begin() {
	if r.conn != nil {
		r.conn.resetError()
	}
}

// fail records err on the owning connection when there is one.
func (r *Result) fail(err *Error) *Error {
	if r.conn != nil {
		return r.conn.fail(err)
	}
	return err
}

// Disjoin detaches the Result from its connection. Rows already cached stay
// readable; fetching any other row fails. The driver's query handle is
// released.
func (r *Result) Disjoin() error {
	r.begin()
	if r.freed {
		return newError(KindBadPointer, "result is freed")
	}
	if r.conn == nil {
		return nil
	}
	return r.disjoin()
}

func (r *Result) disjoin() error {
	c := r.conn
	var err error
	if r.handle != nil {
		err = r.handle.Free()
		r.handle = nil
	}
	c.unregister(r)
	r.conn = nil
	if err != nil {
		return c.fail(driverError(err, "free result"))
	}
	return nil
}

// Free releases the Result. Bindings go first, then cached rows and their
// buffers, then metadata, then the driver handle. Freeing twice is an error.
func (r *Result) Free() error {
	r.begin()
	if r.freed {
		return newError(KindBadPointer, "result is already freed")
	}
	r.release()
	r.freed = true
	if r.conn == nil {
		return nil
	}
	return r.disjoin()
}

func (r *Result) release() {
	r.bindings = nil
	for _, row := range r.rows {
		if row != nil {
			row.release()
		}
	}
	r.rows = nil
	r.fields = nil
	r.index = nil
	r.cursor = 0
}
