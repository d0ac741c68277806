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
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubDriver serves canned tables keyed by statement text and counts every
// driver round trip.
type stubDriver struct {
	name    string
	caps    *Capabilities
	tables  map[string]*stubTable
	connErr error

	connects int
	closes   int
	handles  []*countingHandle
	lastCode int
}

type stubTable struct {
	fields []Field
	rows   [][]Value
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		name:   "stub",
		caps:   NewCapabilities().WithSequences(false).WithFeature(FeatureQuoteString, true),
		tables: map[string]*stubTable{"SELECT * FROM users": usersTable()},
	}
}

func usersTable() *stubTable {
	return &stubTable{
		fields: []Field{
			{Name: "id", Type: TypeInteger, Attrs: AttrIntSize4},
			{Name: "Name", Type: TypeString},
			{Name: "score", Type: TypeDecimal, Attrs: AttrDecSize8},
			{Name: "level", Type: TypeInteger, Attrs: AttrIntSize2},
			{Name: "flags", Type: TypeInteger, Attrs: AttrIntSize1 | AttrUnsigned},
			{Name: "created", Type: TypeDatetime, Attrs: AttrDate | AttrTime},
			{Name: "avatar", Type: TypeBinary},
			{Name: "ratio", Type: TypeDecimal, Attrs: AttrDecSize4},
		},
		rows: [][]Value{
			{IntegerValue(42), StringValue("abc"), DecimalValue(9.5), IntegerValue(-3), UnsignedValue(200), DatetimeValue(1078144245), BytesValue(TypeBinary, []byte{0, 1, 2}), DecimalValue(0.25)},
			{IntegerValue(7), {}, DecimalValue(1.25), IntegerValue(12), UnsignedValue(1), {}, {}, DecimalValue(2)},
			{IntegerValue(99), StringValue("zed"), DecimalValue(-2), IntegerValue(0), UnsignedValue(0), DatetimeValue(0), BytesValue(TypeBinary, []byte("x")), {}},
		},
	}
}

func (d *stubDriver) Info() DriverInfo {
	return DriverInfo{Name: d.name, Description: "in-memory test driver", Version: "0.0.1"}
}

func (d *stubDriver) Capabilities() *Capabilities { return d.caps }

func (d *stubDriver) Connect(ctx context.Context, opts *Options) (ConnHandle, error) {
	if d.connErr != nil {
		return nil, d.connErr
	}
	d.connects++
	return &stubConn{drv: d, opts: opts}, nil
}

type stubConn struct {
	drv  *stubDriver
	opts *Options
}

func (c *stubConn) Close() error {
	c.drv.closes++
	return nil
}

func (c *stubConn) Query(ctx context.Context, sql string) (QueryHandle, error) {
	if strings.HasPrefix(sql, "BROKEN") {
		c.drv.lastCode = 1064
		return nil, &DriverFailure{Code: 1064, State: "42000", Err: errors.New("syntax error near BROKEN")}
	}
	if t, ok := c.drv.tables[sql]; ok {
		h := &countingHandle{StaticHandle: NewStaticHandle(t.fields, t.rows, 0)}
		c.drv.handles = append(c.drv.handles, h)
		return h, nil
	}
	return NewStaticHandle(nil, nil, 3), nil
}

func (c *stubConn) QueryBytes(ctx context.Context, sql []byte) (QueryHandle, error) {
	return c.Query(ctx, string(sql))
}

func (c *stubConn) SelectDB(ctx context.Context, db string) (string, error) {
	if db == "missing" {
		return "", errors.New("unknown database")
	}
	return db, nil
}

func (c *stubConn) ListDatabases(ctx context.Context, pattern string) (QueryHandle, error) {
	return NewNameList("database", []string{"alpha", "beta"}), nil
}

func (c *stubConn) ListTables(ctx context.Context, db, pattern string) (QueryHandle, error) {
	return NewNameList("table", []string{db + "_users"}), nil
}

func (c *stubConn) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (c *stubConn) LastInsertSequence(ctx context.Context, name string) (uint64, error) {
	return 17, nil
}

func (c *stubConn) NextSequence(ctx context.Context, name string) (uint64, error) {
	return 0, errors.New("no sequences")
}

func (c *stubConn) Ping(ctx context.Context) error { return nil }

func (c *stubConn) LastError() (int, string) {
	return c.drv.lastCode, "last engine error"
}

func (c *stubConn) EngineVersion(ctx context.Context) (string, error) {
	return "stub 1.0", nil
}

// countingHandle counts GotoRow and FetchRow calls and can be told to fail.
type countingHandle struct {
	*StaticHandle
	gotos     int
	fetches   int
	failFetch bool
	frees     int
	freeErr   error
}

func (h *countingHandle) GotoRow(idx uint64) error {
	h.gotos++
	return h.StaticHandle.GotoRow(idx)
}

func (h *countingHandle) FetchRow(idx uint64, rb *RowBuilder) error {
	if h.failFetch {
		return &DriverFailure{Code: 2013, State: "HY000", Err: errors.New("lost connection")}
	}
	h.fetches++
	return h.StaticHandle.FetchRow(idx, rb)
}

func (h *countingHandle) Free() error {
	h.frees++
	if err := h.StaticHandle.Free(); err != nil {
		return err
	}
	return h.freeErr
}

func newTestConn(t *testing.T, opts ...InstanceOption) (*Conn, *stubDriver) {
	t.Helper()
	drv := newStubDriver()
	opts = append([]InstanceOption{WithLogger(zaptest.NewLogger(t)), WithDriver(drv)}, opts...)
	inst := NewInstance(opts...)
	conn, err := inst.NewConn("stub")
	require.NoError(t, err)
	require.NoError(t, conn.Connect(context.Background()))
	t.Cleanup(func() { _ = inst.Shutdown() })
	return conn, drv
}

func queryUsers(t *testing.T, conn *Conn) (*Result, *countingHandle) {
	t.Helper()
	res, err := conn.Query(context.Background(), "SELECT * FROM users")
	require.NoError(t, err)
	drv := conn.Driver().(*stubDriver)
	return res, drv.handles[len(drv.handles)-1]
}
