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
package sqlite3_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlite3"
)

func openConn(t *testing.T, dir, name string) *dbi.Conn {
	t.Helper()
	inst := dbi.NewInstance(dbi.WithLogger(zaptest.NewLogger(t)), dbi.WithDriver(sqlite3.New()))
	t.Cleanup(func() { require.NoError(t, inst.Shutdown()) })

	conn, err := inst.NewConn(sqlite3.Name)
	require.NoError(t, err)
	require.NoError(t, conn.SetOption(sqlite3.OptionDBDir, dir))
	require.NoError(t, conn.SetOption(dbi.OptionDBName, name))
	require.NoError(t, conn.Connect(context.Background()))
	return conn
}

func exec(t *testing.T, conn *dbi.Conn, stmt string) *dbi.Result {
	t.Helper()
	res, err := conn.Query(context.Background(), stmt)
	require.NoError(t, err, stmt)
	return res
}

func TestSQLite_QueryAndFetch(t *testing.T) {
	conn := openConn(t, t.TempDir(), "app.db")

	exec(t, conn, `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT,
		age SMALLINT,
		score REAL,
		avatar BLOB,
		born DATE,
		seen DATETIME
	)`)
	res := exec(t, conn, `INSERT INTO users (name, age, score, avatar, born, seen)
		VALUES ('abc', 31, 9.5, x'000102', '2004-03-01', '2004-03-01 12:30:45')`)
	assert.Equal(t, uint64(1), res.RowsAffected())
	assert.Equal(t, dbi.StateNothingReturned, res.State())
	exec(t, conn, `INSERT INTO users (name) VALUES (NULL)`)

	last, err := conn.SequenceLast(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), last)

	res = exec(t, conn, "SELECT * FROM users ORDER BY id")
	assert.Equal(t, uint64(2), res.NumRows())
	assert.Equal(t, 7, res.NumFields())

	typ, err := res.FieldType("score")
	require.NoError(t, err)
	assert.Equal(t, dbi.TypeDecimal, typ)

	require.NoError(t, res.First())
	id, err := res.GetLongLong("id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	name, err := res.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "abc", name)

	age, err := res.GetShort("age")
	require.NoError(t, err)
	assert.Equal(t, int16(31), age)

	score, err := res.GetDouble("score")
	require.NoError(t, err)
	assert.Equal(t, 9.5, score)

	avatar, err := res.GetBinary("avatar")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, avatar)

	born, err := res.GetDatetime("born")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2004, 3, 1, 0, 0, 0, 0, time.UTC), born)

	seen, err := res.GetDatetime("seen")
	require.NoError(t, err)
	assert.Equal(t, int64(1078144245), seen.Unix())

	var gotName string
	var gotAge int16
	n, err := res.GetFields("name.%s age.%h", &gotName, &gotAge)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "abc", gotName)
	assert.Equal(t, int16(31), gotAge)

	require.NoError(t, res.Next())
	null, err := res.FieldIsNull("name")
	require.NoError(t, err)
	assert.True(t, null)
	require.NoError(t, res.Free())
}

func TestSQLite_TimeColumns(t *testing.T) {
	conn := openConn(t, t.TempDir(), sqlite3.MemoryDB)

	exec(t, conn, `CREATE TABLE shifts (id INTEGER, starts TIME, at DATETIME)`)
	exec(t, conn, `INSERT INTO shifts VALUES
		(1, '12:30:45', '2004-03-01 12:30:45'),
		(2, '00:30:00+02', '2004-03-01 00:30:00+02'),
		(3, '23:30:00-02', NULL)`)

	res := exec(t, conn, "SELECT id, starts, at FROM shifts ORDER BY id")
	attrs, err := res.FieldAttr("starts", dbi.AttrDate, dbi.AttrTime)
	require.NoError(t, err)
	assert.Equal(t, dbi.AttrTime, attrs)

	want := []struct {
		starts int64
		at     int64
		null   bool
	}{
		{starts: 45045, at: 1078144245},
		{starts: 81000, at: 1078093800},
		{starts: 5400, null: true},
	}
	for i, w := range want {
		require.NoError(t, res.Next())
		starts, err := res.GetDatetime("starts")
		require.NoError(t, err)
		assert.Equal(t, w.starts, starts.Unix(), "row %d", i+1)
		assert.GreaterOrEqual(t, starts.Unix(), int64(0))

		null, err := res.FieldIsNull("at")
		require.NoError(t, err)
		assert.Equal(t, w.null, null)
		if !w.null {
			at, err := res.GetDatetime("at")
			require.NoError(t, err)
			assert.Equal(t, w.at, at.Unix(), "row %d", i+1)
		}
	}
}

func TestSQLite_Expressions(t *testing.T) {
	conn := openConn(t, t.TempDir(), sqlite3.MemoryDB)

	res := exec(t, conn, "SELECT 1 + 1 AS two, 'x' AS letter, 2.5 AS half")
	require.NoError(t, res.First())

	two, err := res.GetLongLong("two")
	require.NoError(t, err)
	assert.Equal(t, int64(2), two)

	letter, err := res.GetString("LETTER")
	require.NoError(t, err)
	assert.Equal(t, "x", letter)

	half, err := res.GetDouble("half")
	require.NoError(t, err)
	assert.Equal(t, 2.5, half)
}

func TestSQLite_Errors(t *testing.T) {
	conn := openConn(t, t.TempDir(), "app.db")

	var fired int
	conn.SetErrorHandler(func(c *dbi.Conn, arg any) { fired++ }, nil)

	_, err := conn.Query(context.Background(), "SELEKT 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbi.ErrDriver)
	assert.Equal(t, 1, conn.ErrorCode())
	assert.Equal(t, 1, fired)

	_, err = conn.SequenceNext(context.Background(), "ids")
	assert.ErrorIs(t, err, dbi.ErrUnsupported)
}

func TestSQLite_ConversionErrorRecorded(t *testing.T) {
	ctx := context.Background()
	opts := dbi.NewOptions()
	opts.Set(sqlite3.OptionDBDir, t.TempDir())
	opts.Set(dbi.OptionDBName, sqlite3.MemoryDB)

	h, err := sqlite3.New().Connect(ctx, opts)
	require.NoError(t, err)
	defer h.Close()

	for _, stmt := range []string{"CREATE TABLE t (n INTEGER)", "INSERT INTO t VALUES ('abc')"} {
		_, err := h.Query(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	_, msg := h.LastError()
	assert.Empty(t, msg)

	_, err = h.Query(ctx, "SELECT n FROM t")
	require.Error(t, err)
	_, msg = h.LastError()
	assert.Contains(t, msg, "row 1")

	conn := openConn(t, t.TempDir(), "app.db")
	exec(t, conn, "CREATE TABLE t (n INTEGER)")
	exec(t, conn, "INSERT INTO t VALUES ('abc')")
	_, err = conn.Query(ctx, "SELECT n FROM t")
	assert.ErrorIs(t, err, dbi.ErrDriver)
	require.NotNil(t, conn.LastError())
	assert.Contains(t, conn.LastError().Message, "row 1")
}

func TestSQLite_ListAndSelect(t *testing.T) {
	dir := t.TempDir()
	conn := openConn(t, dir, "one.db")
	exec(t, conn, "CREATE TABLE alpha (id INTEGER)")
	exec(t, conn, "CREATE TABLE beta (id INTEGER)")

	require.NoError(t, conn.SelectDB(context.Background(), "two.db"))
	assert.Equal(t, "two.db", conn.CurrentDB())
	exec(t, conn, "CREATE TABLE gamma (id INTEGER)")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a database"), 0o600))

	dbs, err := conn.ListDatabases(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), dbs.NumRows())
	var names []string
	for dbs.HasNext() {
		require.NoError(t, dbs.Next())
		n, err := dbs.GetString("database")
		require.NoError(t, err)
		names = append(names, n)
	}
	assert.Equal(t, []string{"one.db", "two.db"}, names)

	tables, err := conn.ListTables(context.Background(), "one.db", "b%")
	require.NoError(t, err)
	require.Equal(t, uint64(1), tables.NumRows())
	require.NoError(t, tables.First())
	table, err := tables.GetStringIdx(1)
	require.NoError(t, err)
	assert.Equal(t, "beta", table)

	tables, err = conn.ListTables(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tables.NumRows())

	v, err := conn.EngineVersion(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, v)
	assert.True(t, conn.Ping(context.Background()))

	q, err := conn.QuoteString("it's")
	require.NoError(t, err)
	assert.Equal(t, "'it''s'", q)
}

func TestFieldForDecl(t *testing.T) {
	tests := []struct {
		decl string
		want dbi.Field
	}{
		{"INTEGER", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}},
		{"bigint", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}},
		{"TINYINT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1}},
		{"SMALLINT UNSIGNED", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize2 | dbi.AttrUnsigned}},
		{"MEDIUMINT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize3}},
		{"VARCHAR(20)", dbi.Field{Type: dbi.TypeString}},
		{"TEXT", dbi.Field{Type: dbi.TypeString}},
		{"BLOB", dbi.Field{Type: dbi.TypeBinary}},
		{"REAL", dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}},
		{"DOUBLE PRECISION", dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}},
		{"FLOAT", dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}},
		{"DECIMAL(10,2)", dbi.Field{Type: dbi.TypeString}},
		{"DATE", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}},
		{"TIME", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}},
		{"TIMESTAMP", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}},
		{"", dbi.Field{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sqlite3.FieldForDecl(tt.decl), tt.decl)
	}
}

func TestDSN(t *testing.T) {
	opts := dbi.NewOptions()
	dsn, err := sqlite3.Dialect{}.DSN(opts)
	require.NoError(t, err)
	assert.Contains(t, dsn, sqlite3.MemoryDB)

	opts.Set(sqlite3.OptionDBDir, "/data")
	opts.Set(dbi.OptionDBName, "app.db")
	dsn, err = sqlite3.Dialect{}.DSN(opts)
	require.NoError(t, err)
	assert.Contains(t, dsn, filepath.Join("/data", "app.db"))

	opts.Set(dbi.OptionDBName, filepath.Join("..", "escape.db"))
	_, err = sqlite3.Dialect{}.DSN(opts)
	assert.Error(t, err)
}
