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

import "fmt"

// StaticHandle is a QueryHandle over rows already held in memory. Drivers
// use it for synthesized results (directory listings, metadata queries) and
// for engines whose client library buffers the whole result set. A zero
// Value in a row marks NULL.
type StaticHandle struct {
	fields   []Field
	rows     [][]Value
	affected uint64
	pos      uint64
	freed    bool
}

var _ QueryHandle = (*StaticHandle)(nil)

// NewStaticHandle creates a handle over rows. Every row must have one value
// per field.
func NewStaticHandle(fields []Field, rows [][]Value, affected uint64) *StaticHandle {
	return &StaticHandle{fields: fields, rows: rows, affected: affected}
}

// NewNameList builds a one-column string result, the shape of database and
// table listings.
func NewNameList(column string, names []string) *StaticHandle {
	rows := make([][]Value, len(names))
	for i, n := range names {
		rows[i] = []Value{StringValue(n)}
	}
	return NewStaticHandle([]Field{{Name: column, Type: TypeString}}, rows, 0)
}

func (h *StaticHandle) Fields() []Field      { return h.fields }
func (h *StaticHandle) NumRows() uint64      { return uint64(len(h.rows)) }
func (h *StaticHandle) RowsAffected() uint64 { return h.affected }

func (h *StaticHandle) GotoRow(idx uint64) error {
	if h.freed {
		return fmt.Errorf("result set is freed")
	}
	if idx >= uint64(len(h.rows)) {
		return fmt.Errorf("row %d out of range", idx)
	}
	h.pos = idx
	return nil
}

func (h *StaticHandle) FetchRow(idx uint64, rb *RowBuilder) error {
	if h.freed {
		return fmt.Errorf("result set is freed")
	}
	if idx >= uint64(len(h.rows)) {
		return fmt.Errorf("row %d out of range", idx)
	}
	row := h.rows[idx]
	if len(row) != rb.NumFields() {
		return fmt.Errorf("row %d has %d values for %d fields", idx, len(row), rb.NumFields())
	}
	for i, v := range row {
		if v.typ == TypeUnknown {
			if err := rb.SetNull(i); err != nil {
				return err
			}
			continue
		}
		if err := rb.Set(i, v.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *StaticHandle) Free() error {
	h.freed = true
	h.rows = nil
	return nil
}
