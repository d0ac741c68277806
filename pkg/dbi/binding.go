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
	"strings"
	"time"

	"go.uber.org/multierr"
)

// binding is a registered destination refreshed whenever the cursor moves.
type binding struct {
	key  string
	pos  int
	code formatCode
	dst  any
}

// activateBindings writes every bound field of the current row.
func (r *Result) activateBindings() {
	row := r.rows[r.cursor]
	for _, b := range r.bindings {
		assign(row, b.pos, b.code, b.dst)
	}
}

// BindFields binds several fields at once using the format mini-language of
// GetFields. It returns the number of bindings registered.
func (r *Result) BindFields(format string, dest ...any) (int, error) {
	r.begin()
	if r.freed {
		return FieldError, newError(KindBadPointer, "result is freed")
	}
	specs, err := parseFormat(format)
	if err != nil {
		return FieldError, r.fail(err.(*Error))
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
		if err := r.bind(s.name, s.code, dst); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		n++
	}
	return n, errs
}

// bind registers dst for the named field, replacing any earlier binding of
// that field. A nil dst removes the binding. When a row is current the
// destination is written immediately.
func (r *Result) bind(name string, code formatCode, dst any) error {
	if r.freed {
		return newError(KindBadPointer, "result is freed")
	}
	pos, err := r.pos(name)
	if err != nil {
		return err
	}
	key := foldName(name)
	if isNilDest(dst) {
		r.unbind(key)
		return nil
	}
	if err := r.checkCode(pos, code); err != nil {
		return err
	}
	if err := checkDest(code, dst); err != nil {
		return r.fail(err.(*Error))
	}

	b := &binding{key: key, pos: pos, code: code, dst: dst}
	replaced := false
	for i, old := range r.bindings {
		if old.key == key {
			r.bindings[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		r.bindings = append(r.bindings, b)
	}
	if r.isRowFetched(r.cursor) {
		assign(r.rows[r.cursor], pos, code, dst)
	}
	return nil
}

func (r *Result) unbind(key string) {
	for i, b := range r.bindings {
		if b.key == key {
			r.bindings = append(r.bindings[:i], r.bindings[i+1:]...)
			return
		}
	}
}

// Bind binds dst to the named field using a single format code such as "l"
// or "%uL". A nil dst removes the binding.
func (r *Result) Bind(name, code string, dst any) error {
	r.begin()
	fc, ok := formatCodes[strings.TrimPrefix(code, "%")]
	if !ok {
		return r.fail(newError(KindBadType, "unknown format code %q", code))
	}
	return r.bind(name, fc, dst)
}

// NumBindings returns the number of registered bindings.
func (r *Result) NumBindings() int {
	return len(r.bindings)
}

// BindChar binds a 1-byte integer field. A nil dst removes the binding.
func (r *Result) BindChar(name string, dst *int8) error {
	r.begin()
	return r.bind(name, codeChar, dst)
}

// BindUChar binds a 1-byte unsigned integer field.
func (r *Result) BindUChar(name string, dst *uint8) error {
	r.begin()
	return r.bind(name, codeUChar, dst)
}

// BindShort binds an integer field at most 2 bytes wide.
func (r *Result) BindShort(name string, dst *int16) error {
	r.begin()
	return r.bind(name, codeShort, dst)
}

// BindUShort binds an unsigned integer field at most 2 bytes wide.
func (r *Result) BindUShort(name string, dst *uint16) error {
	r.begin()
	return r.bind(name, codeUShort, dst)
}

// BindInt binds an integer field at most 4 bytes wide.
func (r *Result) BindInt(name string, dst *int32) error {
	r.begin()
	return r.bind(name, codeInt, dst)
}

// BindUInt binds an unsigned integer field at most 4 bytes wide.
func (r *Result) BindUInt(name string, dst *uint32) error {
	r.begin()
	return r.bind(name, codeUInt, dst)
}

// BindLongLong binds an integer field of any width.
func (r *Result) BindLongLong(name string, dst *int64) error {
	r.begin()
	return r.bind(name, codeLongLong, dst)
}

// BindULongLong binds an unsigned integer field of any width.
func (r *Result) BindULongLong(name string, dst *uint64) error {
	r.begin()
	return r.bind(name, codeULongLong, dst)
}

// BindFloat binds a 4-byte decimal field.
func (r *Result) BindFloat(name string, dst *float32) error {
	r.begin()
	return r.bind(name, codeFloat, dst)
}

// BindDouble binds a decimal field of either width.
func (r *Result) BindDouble(name string, dst *float64) error {
	r.begin()
	return r.bind(name, codeDouble, dst)
}

// BindString binds a string, enum or set field.
func (r *Result) BindString(name string, dst *string) error {
	r.begin()
	return r.bind(name, codeString, dst)
}

// BindBinary binds a binary field. The bound slice aliases row memory and is
// valid until Free.
func (r *Result) BindBinary(name string, dst *[]byte) error {
	r.begin()
	return r.bind(name, codeBinary, dst)
}

// BindBinaryCopy binds a binary field, writing a fresh copy on every move.
func (r *Result) BindBinaryCopy(name string, dst *[]byte) error {
	r.begin()
	return r.bind(name, codeBinaryCopy, dst)
}

// BindDatetime binds a datetime field.
func (r *Result) BindDatetime(name string, dst *time.Time) error {
	r.begin()
	return r.bind(name, codeDatetime, dst)
}
