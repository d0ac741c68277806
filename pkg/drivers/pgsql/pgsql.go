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
// Package pgsql is the dbi driver for PostgreSQL over github.com/lib/pq.
//
// Options:
//
//	host, port, username, password, dbname, timeout
//	sslmode        disable, require, verify-ca or verify-full
//	pgsql_schema   session search_path
//	pgsql_dsn      complete connection string overriding the above
//
// PostgreSQL cannot switch databases inside a session, so SelectDB
// reconnects.
package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/teradata-labs/dbi/internal/pgxdriver"
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlbridge"
)

// Name is the registry name of the driver.
const Name = "pgsql"

// Dialect describes PostgreSQL to the database/sql bridge.
type Dialect struct{}

var (
	_ sqlbridge.Dialect        = Dialect{}
	_ sqlbridge.DatabaseLister = Dialect{}
	_ sqlbridge.TableLister    = Dialect{}
	_ sqlbridge.Sequencer      = Dialect{}
)

// New returns the pgsql driver.
func New() *sqlbridge.Driver {
	return sqlbridge.New(Dialect{})
}

func (Dialect) Info() dbi.DriverInfo {
	return dbi.DriverInfo{
		Name:        Name,
		Description: "PostgreSQL servers through lib/pq",
		Maintainer:  "Teradata",
		URL:         "https://github.com/lib/pq",
		Version:     "1.0.0",
	}
}

func (Dialect) Capabilities() *dbi.Capabilities {
	return Capabilities()
}

// Capabilities is shared with the native pgx driver.
func Capabilities() *dbi.Capabilities {
	return dbi.NewCapabilities().
		WithTransactions(true).
		WithSequences(true).
		WithFeature(dbi.FeatureQuoteString, true).
		WithFeature(dbi.FeatureListDatabases, true).
		WithFeature(dbi.FeatureSelectDB, true).
		WithFeature(dbi.FeatureSafeUnload, true).
		WithLimit(dbi.LimitMaxFieldNameLength, 63)
}

func (Dialect) SQLDriver() string { return "postgres" }

func (Dialect) DSN(opts *dbi.Options) (string, error) {
	return pgxdriver.BuildDSN(opts)
}

func (Dialect) ColumnField(ct *sql.ColumnType, sample any) dbi.Field {
	f := FieldForType(ct.DatabaseTypeName())
	f.Name = ct.Name()
	return f
}

// FieldForType maps a PostgreSQL type name as reported by lib/pq.
func FieldForType(name string) dbi.Field {
	switch strings.ToUpper(name) {
	case "BOOL":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1}
	case "INT2":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize2}
	case "INT4":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4}
	case "OID":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4 | dbi.AttrUnsigned}
	case "INT8":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}
	case "FLOAT4":
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}
	case "FLOAT8":
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}
	case "BPCHAR":
		return dbi.Field{Type: dbi.TypeString, Attrs: dbi.AttrFixedSize}
	case "BYTEA":
		return dbi.Field{Type: dbi.TypeBinary}
	case "DATE":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}
	case "TIME", "TIMETZ":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}
	case "TIMESTAMP", "TIMESTAMPTZ":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}
	default:
		// NUMERIC keeps its exact text.
		return dbi.Field{Type: dbi.TypeString}
	}
}

func (Dialect) QuoteString(s string) string {
	return strings.TrimSpace(pq.QuoteLiteral(s))
}

// ErrorCode reports the SQLSTATE. PostgreSQL has no numeric error codes, so
// code is always 0.
func (Dialect) ErrorCode(err error) (int, string, bool) {
	var pe *pq.Error
	if errors.As(err, &pe) {
		return 0, string(pe.Code), true
	}
	return 0, "", false
}

func (Dialect) VersionQuery() string {
	return "SHOW server_version"
}

func (Dialect) ListDatabases(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	return s.QueryStrings(ctx, ListDatabasesQuery(pattern), likeArgs(pattern)...)
}

func (Dialect) ListTables(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	return s.QueryStrings(ctx, ListTablesQuery(pattern), likeArgs(pattern)...)
}

// ListDatabasesQuery returns the catalog query for database names. A
// non-empty pattern is bound as $1.
func ListDatabasesQuery(pattern string) string {
	q := "SELECT datname FROM pg_database WHERE NOT datistemplate"
	if pattern != "" {
		q += " AND datname LIKE $1"
	}
	return q + " ORDER BY datname"
}

// ListTablesQuery returns the catalog query for user table names. A
// non-empty pattern is bound as $1.
func ListTablesQuery(pattern string) string {
	q := "SELECT tablename FROM pg_tables WHERE schemaname NOT IN ('pg_catalog', 'information_schema')"
	if pattern != "" {
		q += " AND tablename LIKE $1"
	}
	return q + " ORDER BY tablename"
}

func likeArgs(pattern string) []any {
	if pattern == "" {
		return nil
	}
	return []any{pattern}
}

// LastInsertSequence returns currval of the named sequence, or lastval()
// when name is empty.
func (Dialect) LastInsertSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	if name == "" {
		return s.QueryUint(ctx, "SELECT lastval()")
	}
	return s.QueryUint(ctx, "SELECT currval($1)", name)
}

func (Dialect) NextSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	return s.QueryUint(ctx, "SELECT nextval($1)", name)
}
