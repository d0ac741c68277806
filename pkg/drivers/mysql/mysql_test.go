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
package mysql

import (
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

func TestDSN(t *testing.T) {
	opts := dbi.NewOptions()
	opts.Set(dbi.OptionHost, "db.example.com")
	opts.SetNumeric(dbi.OptionPort, 3307)
	opts.Set(dbi.OptionUsername, "app")
	opts.Set(dbi.OptionPassword, "p@ss:word")
	opts.Set(dbi.OptionDBName, "shop")
	opts.Set(dbi.OptionEncoding, "UTF-8")
	opts.Set(dbi.OptionTimeout, "5")

	dsn, err := Dialect{}.DSN(opts)
	require.NoError(t, err)

	cfg, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", cfg.User)
	assert.Equal(t, "p@ss:word", cfg.Passwd)
	assert.Equal(t, "tcp", cfg.Net)
	assert.Equal(t, "db.example.com:3307", cfg.Addr)
	assert.Equal(t, "shop", cfg.DBName)
	assert.Equal(t, "5s", cfg.Timeout.String())
	assert.False(t, cfg.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDSN_UnixSocket(t *testing.T) {
	opts := dbi.NewOptions()
	opts.Set(OptionUnixSocket, "/var/run/mysqld/mysqld.sock")

	dsn, err := Dialect{}.DSN(opts)
	require.NoError(t, err)
	cfg, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "unix", cfg.Net)
	assert.Equal(t, "/var/run/mysqld/mysqld.sock", cfg.Addr)
}

func TestDSN_BadPort(t *testing.T) {
	opts := dbi.NewOptions()
	opts.SetNumeric(dbi.OptionPort, 70000)
	_, err := Dialect{}.DSN(opts)
	assert.Error(t, err)
}

func TestFieldForType(t *testing.T) {
	tests := []struct {
		name string
		want dbi.Field
	}{
		{"TINYINT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1}},
		{"UNSIGNED INT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4 | dbi.AttrUnsigned}},
		{"BIGINT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}},
		{"MEDIUMINT", dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize3}},
		{"FLOAT", dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}},
		{"DOUBLE", dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}},
		{"DECIMAL", dbi.Field{Type: dbi.TypeString}},
		{"VARCHAR", dbi.Field{Type: dbi.TypeString}},
		{"ENUM", dbi.Field{Type: dbi.TypeEnum}},
		{"SET", dbi.Field{Type: dbi.TypeSet}},
		{"BLOB", dbi.Field{Type: dbi.TypeBinary}},
		{"DATE", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}},
		{"TIME", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}},
		{"DATETIME", dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FieldForType(tt.name), tt.name)
	}
}

func TestQuoteString(t *testing.T) {
	got := Dialect{}.QuoteString("it's a \"test\"\n\\ \x00\x1a")
	assert.Equal(t, `'it\'s a \"test\"\n\\ \0\Z'`, got)
	assert.Equal(t, "`we``ird`", QuoteIdentifier("we`ird"))
}

func TestErrorCode(t *testing.T) {
	me := &gomysql.MySQLError{Number: 1146, SQLState: [5]byte{'4', '2', 'S', '0', '2'}, Message: "Table 'x' doesn't exist"}
	code, state, ok := Dialect{}.ErrorCode(fmt.Errorf("query: %w", me))
	require.True(t, ok)
	assert.Equal(t, 1146, code)
	assert.Equal(t, "42S02", state)

	_, _, ok = Dialect{}.ErrorCode(errors.New("plain"))
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	d := New()
	assert.Equal(t, Name, d.Info().Name)
	assert.True(t, d.Capabilities().HasFeature(dbi.FeatureSelectDB))
	limit, ok := d.Capabilities().GetLimit(dbi.LimitMaxFieldNameLength)
	assert.True(t, ok)
	assert.Equal(t, int64(64), limit)
}
