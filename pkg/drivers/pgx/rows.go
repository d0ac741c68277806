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
package pgx

import (
	"encoding/hex"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlbridge"
)

// FieldForOID maps a PostgreSQL type OID. Types without a dedicated mapping
// are returned as strings in their text form.
func FieldForOID(oid uint32) dbi.Field {
	switch oid {
	case pgtype.BoolOID:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1}
	case pgtype.Int2OID:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize2}
	case pgtype.Int4OID:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4}
	case pgtype.OIDOID, pgtype.XIDOID, pgtype.CIDOID:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4 | dbi.AttrUnsigned}
	case pgtype.Int8OID:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}
	case pgtype.Float4OID:
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}
	case pgtype.Float8OID:
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}
	case pgtype.BPCharOID:
		return dbi.Field{Type: dbi.TypeString, Attrs: dbi.AttrFixedSize}
	case pgtype.ByteaOID:
		return dbi.Field{Type: dbi.TypeBinary}
	case pgtype.DateOID:
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}
	case pgtype.TimeOID:
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}
	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}
	default:
		return dbi.Field{Type: dbi.TypeString}
	}
}

// decode converts one text-format column value. nil raw is NULL.
func decode(f dbi.Field, oid uint32, raw []byte) (dbi.Value, error) {
	if raw == nil {
		return dbi.Value{}, nil
	}
	if oid == pgtype.ByteaOID {
		b, err := decodeBytea(raw)
		if err != nil {
			return dbi.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		return dbi.BytesValue(dbi.TypeBinary, b), nil
	}
	return sqlbridge.ToValue(f, raw)
}

// decodeBytea decodes the hex output format (\x...). Other input is
// returned unchanged.
func decodeBytea(raw []byte) ([]byte, error) {
	if len(raw) < 2 || raw[0] != '\\' || raw[1] != 'x' {
		return append([]byte(nil), raw...), nil
	}
	out := make([]byte, hex.DecodedLen(len(raw)-2))
	if _, err := hex.Decode(out, raw[2:]); err != nil {
		return nil, err
	}
	return out, nil
}

// queryHandle serves buffered text rows.
type queryHandle struct {
	fields   []dbi.Field
	oids     []uint32
	rows     [][][]byte
	affected uint64
	pos      uint64
	freed    bool
}

var _ dbi.QueryHandle = (*queryHandle)(nil)

func (h *queryHandle) Fields() []dbi.Field  { return h.fields }
func (h *queryHandle) NumRows() uint64      { return uint64(len(h.rows)) }
func (h *queryHandle) RowsAffected() uint64 { return h.affected }

func (h *queryHandle) GotoRow(idx uint64) error {
	if h.freed {
		return fmt.Errorf("result set is freed")
	}
	if idx >= uint64(len(h.rows)) {
		return fmt.Errorf("row %d out of range", idx)
	}
	h.pos = idx
	return nil
}

func (h *queryHandle) FetchRow(idx uint64, rb *dbi.RowBuilder) error {
	if err := h.GotoRow(idx); err != nil {
		return err
	}
	for i, raw := range h.rows[idx] {
		v, err := decode(h.fields[i], h.oids[i], raw)
		if err != nil {
			return err
		}
		if raw == nil {
			err = rb.SetNull(i)
		} else {
			err = rb.Set(i, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *queryHandle) Free() error {
	h.freed = true
	h.rows = nil
	return nil
}
