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
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlite3"
)

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProfile_MySQL(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("SHOP_PASSWORD", "s3cret")

	path := writeProfile(t, tmpDir, "shop.yaml", `apiVersion: dbi/v1
kind: Connection
name: shop
description: Shop database
driver: mysql
connection:
  host: db.internal
  port: 3307
  username: app
  password: ${SHOP_PASSWORD}
  database: shop
  timeout_seconds: 10
options:
  mysql_tls: "true"
  mysql_compression: true
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", p.Name)
	assert.Equal(t, "Shop database", p.Description)
	assert.Equal(t, "mysql", p.Driver)

	assert.Equal(t, "db.internal", p.Options.StringOr(dbi.OptionHost, ""))
	assert.Equal(t, "s3cret", p.Options.StringOr(dbi.OptionPassword, ""))
	assert.Equal(t, "shop", p.Options.StringOr(dbi.OptionDBName, ""))
	assert.True(t, p.Options.IsNumeric(dbi.OptionPort))
	assert.Equal(t, 3307, p.Options.IntOr(dbi.OptionPort, 0))
	assert.Equal(t, 10, p.Options.IntOr(dbi.OptionTimeout, 0))
	assert.Equal(t, "true", p.Options.StringOr("mysql_tls", ""))
	assert.Equal(t, "1", p.Options.StringOr("mysql_compression", ""))
}

func TestLoadProfile_ResolvesPaths(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeProfile(t, tmpDir, "local.yaml", `apiVersion: dbi/v1
kind: Connection
name: local
driver: sqlite3
connection:
  database: app.db
options:
  sqlite3_dbdir: ./data
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "data"), p.Options.StringOr(sqlite3.OptionDBDir, ""))
}

func TestLoadProfile_Validation(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectedErr string
	}{
		{
			name:        "missing apiVersion",
			yaml:        "kind: Connection\nname: x\ndriver: mysql\n",
			expectedErr: "apiVersion is required",
		},
		{
			name:        "wrong apiVersion",
			yaml:        "apiVersion: dbi/v2\nkind: Connection\nname: x\ndriver: mysql\n",
			expectedErr: "unsupported apiVersion",
		},
		{
			name:        "wrong kind",
			yaml:        "apiVersion: dbi/v1\nkind: Backend\nname: x\ndriver: mysql\n",
			expectedErr: "kind must be 'Connection'",
		},
		{
			name:        "missing name",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\ndriver: mysql\n",
			expectedErr: "name is required",
		},
		{
			name:        "missing driver",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\n",
			expectedErr: "driver is required",
		},
		{
			name:        "bad port",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\ndriver: mysql\nconnection:\n  port: 70000\n",
			expectedErr: "connection.port out of range",
		},
		{
			name:        "fractional option",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\ndriver: mysql\noptions:\n  ratio: 1.5\n",
			expectedErr: "fractional values",
		},
		{
			name:        "misspelled connection key",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\ndriver: mysql\nconnection:\n  hostname: db\n",
			expectedErr: "hostname",
		},
		{
			name:        "unknown top-level key",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\ndriver: mysql\nlabels: {}\n",
			expectedErr: "schema violations",
		},
		{
			name:        "nested option value",
			yaml:        "apiVersion: dbi/v1\nkind: Connection\nname: x\ndriver: mysql\noptions:\n  mysql_tls:\n    mode: strict\n",
			expectedErr: "mysql_tls",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.yaml), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestFindProfile(t *testing.T) {
	tmpDir := t.TempDir()
	writeProfile(t, tmpDir, "mem.yml", "apiVersion: dbi/v1\nkind: Connection\nname: mem\ndriver: sqlite3\n")

	p, err := FindProfile(tmpDir, "mem")
	require.NoError(t, err)
	assert.Equal(t, "mem", p.Name)

	_, err = FindProfile(tmpDir, "missing")
	assert.Error(t, err)
}

func TestProfile_Open(t *testing.T) {
	inst := dbi.NewInstance(dbi.WithLogger(zaptest.NewLogger(t)), dbi.WithDriver(sqlite3.New()))
	tmpDir := t.TempDir()

	p, err := ParseProfile([]byte(`apiVersion: dbi/v1
kind: Connection
name: local
driver: sqlite3
connection:
  database: app.db
  timeout_seconds: 5
options:
  sqlite3_dbdir: `+tmpDir+`
`), tmpDir)
	require.NoError(t, err)

	c, err := p.Open(inst)
	require.NoError(t, err)
	defer c.Close()

	v, ok := c.Option(dbi.OptionDBName)
	assert.True(t, ok)
	assert.Equal(t, "app.db", v)
	n, ok := c.OptionNumeric(dbi.OptionTimeout)
	assert.True(t, ok)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{dbi.OptionDBName, dbi.OptionTimeout, sqlite3.OptionDBDir}, c.OptionKeys())
}

func TestProfile_ApplyWrongDriver(t *testing.T) {
	inst := dbi.NewInstance(dbi.WithDriver(sqlite3.New()))
	c, err := inst.NewConn("sqlite3")
	require.NoError(t, err)
	defer c.Close()

	p := &Profile{Name: "shop", Driver: "mysql", Options: dbi.NewOptions()}
	assert.Error(t, p.Apply(c))
}

func TestDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("DBI_DATA_DIR", tmpDir)
	assert.Equal(t, tmpDir, DataDir())
	assert.Equal(t, filepath.Join(tmpDir, "profiles"), ProfilesDir())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DBI_DATA_DIR", "~/custom")
	assert.Equal(t, filepath.Join(home, "custom"), DataDir())
}
