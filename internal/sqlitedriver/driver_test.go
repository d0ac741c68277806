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
package sqlitedriver_test

import (
	"database/sql"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/dbi/internal/sqlitedriver"
)

func TestDriverRegistered(t *testing.T) {
	assert.True(t, slices.Contains(sql.Drivers(), sqlitedriver.DriverName), "sqlite3 driver should be registered")
}

func TestDSN_OpensFile(t *testing.T) {
	dsn, err := sqlitedriver.DSN(filepath.Join(t.TempDir(), "app.db"), "")
	require.NoError(t, err)
	assert.Contains(t, dsn, "?")

	db, err := sql.Open(sqlitedriver.DriverName, dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO test (name) VALUES (?)", "hello")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow("SELECT name FROM test WHERE id = 1").Scan(&name))
	assert.Equal(t, "hello", name)
}

func TestDSN_Key(t *testing.T) {
	dsn, err := sqlitedriver.DSN("x.db", "s3cret")
	if !sqlitedriver.EncryptionSupported {
		assert.Error(t, err)
		return
	}
	require.NoError(t, err)
	assert.Contains(t, dsn, "_pragma_key=s3cret")
}

func TestErrorCode(t *testing.T) {
	db, err := sql.Open(sqlitedriver.DriverName, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("SELEKT 1")
	require.Error(t, err)
	code, ok := sqlitedriver.ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code, "SQLITE_ERROR")

	_, ok = sqlitedriver.ErrorCode(assert.AnError)
	assert.False(t, ok)
}
