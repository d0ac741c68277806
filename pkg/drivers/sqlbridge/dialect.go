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
// Package sqlbridge implements the dbi driver contract on top of any
// database/sql driver. Each engine supplies a Dialect describing how to build
// its DSN, map its column types, quote strings and decode its errors; the
// bridge does everything else.
//
// A session pins one *sql.Conn for its whole life so session state (current
// database, last insert id, temporary tables) behaves as with a native
// client. Row sets are read to the end when a statement runs and served from
// memory, which gives every bridged driver random row access.
package sqlbridge

import (
	"context"
	"database/sql"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

// Dialect adapts the bridge to one engine.
type Dialect interface {
	// Info describes the driver built from this dialect.
	Info() dbi.DriverInfo

	// Capabilities reports what the driver supports.
	Capabilities() *dbi.Capabilities

	// SQLDriver is the database/sql driver name passed to sql.Open.
	SQLDriver() string

	// DSN builds the open string from connection options.
	DSN(opts *dbi.Options) (string, error)

	// ColumnField maps a result column to dbi metadata. sample is the first
	// non-NULL value of the column, or nil when every value is NULL; engines
	// with dynamic typing use it when the column has no declared type.
	ColumnField(ct *sql.ColumnType, sample any) dbi.Field

	// QuoteString returns s as a string literal, quotes included.
	QuoteString(s string) string

	// ErrorCode extracts the engine's native code and SQLSTATE from err.
	ErrorCode(err error) (code int, state string, ok bool)

	// VersionQuery returns a statement yielding the server version as a
	// single string value.
	VersionQuery() string
}

// DatabaseLister is implemented by dialects that can enumerate databases.
type DatabaseLister interface {
	ListDatabases(ctx context.Context, s *Session, pattern string) ([]string, error)
}

// TableLister is implemented by dialects that can enumerate tables. The
// session is already connected to db.
type TableLister interface {
	ListTables(ctx context.Context, s *Session, pattern string) ([]string, error)
}

// DatabaseSelector is implemented by dialects that switch databases inside a
// session. Dialects without it switch by reconnecting.
type DatabaseSelector interface {
	SelectDB(ctx context.Context, s *Session, db string) (string, error)
}

// Sequencer is implemented by dialects with sequence support.
type Sequencer interface {
	LastInsertSequence(ctx context.Context, s *Session, name string) (uint64, error)
	NextSequence(ctx context.Context, s *Session, name string) (uint64, error)
}
