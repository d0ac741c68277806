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

import "go.uber.org/zap"

// Seek makes row (1-based) current, fetching it from the driver the first
// time. A failed fetch leaves the cursor and state unchanged.
func (r *Result) Seek(row uint64) error {
	r.begin()
	if r.freed {
		return newError(KindBadPointer, "result is freed")
	}
	if r.state == StateNothingReturned {
		return r.fail(newError(KindBadIndex, "result has no rows"))
	}
	if row < 1 || row > r.numRows {
		return r.fail(newError(KindBadIndex, "row %d out of range [1,%d]", row, r.numRows))
	}

	if r.isRowFetched(row) {
		r.cursor = row
		r.activateBindings()
		return nil
	}

	if r.conn == nil || r.handle == nil {
		return newError(KindBadPointer, "row %d is not cached and the result is disjoined", row)
	}
	if !r.conn.caps.RandomAccess && row < r.high {
		return r.fail(newError(KindUnsupported, "driver %s cannot fetch row %d after row %d", r.conn.driver.Info().Name, row, r.high))
	}
	if err := r.handle.GotoRow(row - 1); err != nil {
		return r.fail(driverError(err, "seek"))
	}
	rb := newRowBuilder(r.fields)
	if err := r.handle.FetchRow(row-1, rb); err != nil {
		return r.fail(driverError(err, "fetch row"))
	}
	r.rows[row] = rb.build()
	r.state = StateGettingRows
	r.cursor = row
	r.high = max(r.high, row)
	r.conn.logger.Debug("row fetched", zap.Uint64("row", row), zap.Int("fields", len(r.fields)))
	r.activateBindings()
	return nil
}

// First seeks to row 1.
func (r *Result) First() error {
	return r.Seek(1)
}

// Last seeks to the final row.
func (r *Result) Last() error {
	return r.Seek(r.numRows)
}

// Next seeks to the row after the cursor. Before the first fetch that is
// row 1.
func (r *Result) Next() error {
	r.begin()
	if !r.HasNext() {
		if r.freed {
			return newError(KindBadPointer, "result is freed")
		}
		return r.fail(newError(KindBadIndex, "no row after %d", r.cursor))
	}
	return r.Seek(r.cursor + 1)
}

// Prev seeks to the row before the cursor.
func (r *Result) Prev() error {
	r.begin()
	if !r.HasPrev() {
		if r.freed {
			return newError(KindBadPointer, "result is freed")
		}
		return r.fail(newError(KindBadIndex, "no row before %d", r.cursor))
	}
	return r.Seek(r.cursor - 1)
}

// HasNext reports whether a row follows the cursor. It never contacts the
// driver.
func (r *Result) HasNext() bool {
	return !r.freed && r.state != StateNothingReturned && r.cursor < r.numRows
}

// HasPrev reports whether a row precedes the cursor. It never contacts the
// driver.
func (r *Result) HasPrev() bool {
	return !r.freed && r.state != StateNothingReturned && r.cursor > 1
}

// CurrentRow returns the 1-based cursor, 0 before the first fetch.
func (r *Result) CurrentRow() uint64 {
	return r.cursor
}
