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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	specs, err := parseFormat("  id.%l\tname.%s t.col.%uL bad.%z ")
	require.NoError(t, err)
	require.Len(t, specs, 4)
	assert.Equal(t, fieldSpec{name: "id", code: codeInt, raw: "id.%l"}, specs[0])
	assert.Equal(t, codeString, specs[1].code)
	assert.Equal(t, "t.col", specs[2].name)
	assert.Equal(t, codeULongLong, specs[2].code)
	assert.Equal(t, codeInvalid, specs[3].code)

	for _, format := range []string{"id", "id.l", ".%l", "id.%l name"} {
		_, err := parseFormat(format)
		assert.ErrorIs(t, err, ErrBadName, format)
	}
}

func TestGetFields(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.First())

	var id int32
	var name string
	n, err := res.GetFields("id.%l name.%s", &id, &name)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(42), id)
	assert.Equal(t, "abc", name)
}

func TestGetFields_UnknownCodeSkipped(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.First())

	var id int32
	var name string
	n, err := res.GetFields("id.%l level.%z name.%s", &id, &name)
	assert.ErrorIs(t, err, ErrBadType)
	assert.Equal(t, 2, n)
	assert.Equal(t, int32(42), id)
	assert.Equal(t, "abc", name)
}

func TestGetFields_Malformed(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.First())

	var id int32
	n, err := res.GetFields("id%l", &id)
	assert.Equal(t, FieldError, n)
	assert.ErrorIs(t, err, ErrBadName)
	assert.Equal(t, KindBadName, conn.LastError().Kind)
}

func TestGetFields_PartialFailures(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.First())

	var wrong string
	var missing int64
	var score float64
	var flags uint8
	n, err := res.GetFields("id.%s missing.%L score.%d flags.%uc", &wrong, &missing, &score, &flags)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadType)
	assert.ErrorIs(t, err, ErrBadName)
	assert.Equal(t, 2, n)
	assert.Equal(t, 9.5, score)
	assert.Equal(t, uint8(200), flags)

	var short int32
	n, err = res.GetFields("id.%l name.%s", &short)
	assert.ErrorIs(t, err, ErrBadIndex)
	assert.Equal(t, 1, n)

	var mismatched int64
	n, err = res.GetFields("id.%l", &mismatched)
	assert.ErrorIs(t, err, ErrBadPointer)
	assert.Equal(t, 0, n)
}

func TestBindFields_FollowCursor(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)

	var id int64
	var name string
	var created time.Time
	n, err := res.BindFields("id.%L name.%S created.%m", &id, &name, &created)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, res.NumBindings())

	require.NoError(t, res.First())
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "abc", name)
	assert.Equal(t, int64(1078144245), created.Unix())

	require.NoError(t, res.Next())
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "", name)
	assert.True(t, created.IsZero())

	// Moving onto a cached row refreshes the bindings too.
	require.NoError(t, res.First())
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "abc", name)
}

func TestBind_ReplaceAndRemove(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.First())

	var a, b int64
	require.NoError(t, res.BindLongLong("id", &a))
	assert.Equal(t, int64(42), a, "binding a current row writes immediately")

	require.NoError(t, res.BindLongLong("ID", &b))
	assert.Equal(t, 1, res.NumBindings())

	require.NoError(t, res.Next())
	assert.Equal(t, int64(42), a)
	assert.Equal(t, int64(7), b)

	require.NoError(t, res.BindLongLong("id", nil))
	assert.Equal(t, 0, res.NumBindings())
	require.NoError(t, res.Next())
	assert.Equal(t, int64(7), b)

	var small int16
	assert.ErrorIs(t, res.BindShort("id", &small), ErrBadType)
	assert.ErrorIs(t, res.BindString("nope", new(string)), ErrBadName)
	assert.Equal(t, 0, res.NumBindings())
}

func TestBind_Binary(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)

	var view, owned []byte
	require.NoError(t, res.BindBinary("avatar", &view))
	require.NoError(t, res.First())
	assert.Equal(t, []byte{0, 1, 2}, view)

	// Rebinding the same field replaces the aliasing binding.
	require.NoError(t, res.BindBinaryCopy("avatar", &owned))
	assert.Equal(t, 1, res.NumBindings())
	assert.Equal(t, []byte{0, 1, 2}, owned)

	owned[0] = 7
	assert.Equal(t, byte(0), view[0])
	got, err := res.GetBinary("avatar")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, got)

	require.NoError(t, res.Last())
	assert.Equal(t, []byte("x"), owned)
	assert.Equal(t, []byte{0, 1, 2}, view, "a replaced binding no longer follows the cursor")
}

func TestBind_ByCode(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)

	var id int64
	var name string
	require.NoError(t, res.Bind("id", "%L", &id))
	require.NoError(t, res.Bind("name", "s", &name))
	require.NoError(t, res.First())
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "abc", name)

	assert.ErrorIs(t, res.Bind("id", "%q", &id), ErrBadType)
	assert.ErrorIs(t, res.Bind("id", "h", new(int16)), ErrBadType)
	assert.ErrorIs(t, res.Bind("id", "i", &name), ErrBadPointer)
	assert.Equal(t, 2, res.NumBindings())

	require.NoError(t, res.Bind("id", "L", nil))
	assert.Equal(t, 1, res.NumBindings())
	require.NoError(t, res.Last())
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "zed", name)
}

func TestBind_FreedResult(t *testing.T) {
	conn, _ := newTestConn(t)
	res, _ := queryUsers(t, conn)
	require.NoError(t, res.Free())

	var id int32
	assert.ErrorIs(t, res.BindInt("id", &id), ErrBadPointer)
	n, err := res.BindFields("id.%l", &id)
	assert.Equal(t, FieldError, n)
	assert.ErrorIs(t, err, ErrBadPointer)
}
