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

import "context"

// Driver is a backend-specific implementation of the client contract, usually
// wrapping a native client library for one database engine.
//
// This interface is intentionally small: everything engine-specific lives
// behind the handles returned by Connect and ConnHandle.Query.
type Driver interface {
	// Info returns descriptive metadata. Info().Name is the registry key.
	Info() DriverInfo

	// Capabilities returns what the driver supports (random row access, etc).
	Capabilities() *Capabilities

	// Connect opens a session using the connection options.
	Connect(ctx context.Context, opts *Options) (ConnHandle, error)
}

// DriverInfo describes a driver.
type DriverInfo struct {
	Name        string
	Description string
	Maintainer  string
	URL         string
	Version     string
	Date        string
}

// ConnHandle is an open driver session. Every call blocks until the engine
// responds. A ConnHandle is used by a single Conn and never concurrently.
type ConnHandle interface {
	// Close disconnects the session.
	Close() error

	// Query runs sql and returns a handle to its result set. Statements that
	// produce no row set return a handle with no fields.
	Query(ctx context.Context, sql string) (QueryHandle, error)

	// QueryBytes is Query for statements that may contain NUL bytes.
	QueryBytes(ctx context.Context, sql []byte) (QueryHandle, error)

	// SelectDB switches the session's current database and returns the name
	// now in effect.
	SelectDB(ctx context.Context, db string) (string, error)

	// ListDatabases returns a one-column result of database names matching the
	// optional LIKE pattern.
	ListDatabases(ctx context.Context, pattern string) (QueryHandle, error)

	// ListTables returns a one-column result of table names in db matching the
	// optional LIKE pattern.
	ListTables(ctx context.Context, db, pattern string) (QueryHandle, error)

	// QuoteString returns s escaped and surrounded by the engine's string quotes.
	QuoteString(s string) string

	// LastInsertSequence returns the last value produced by the named sequence
	// (or the session's last auto-increment value when name is empty).
	LastInsertSequence(ctx context.Context, name string) (uint64, error)

	// NextSequence advances the named sequence and returns its value.
	NextSequence(ctx context.Context, name string) (uint64, error)

	// Ping checks that the session is alive.
	Ping(ctx context.Context) error

	// LastError returns the engine's most recent native error code and message.
	LastError() (int, string)

	// EngineVersion returns the server version string.
	EngineVersion(ctx context.Context) (string, error)
}

// QueryHandle is the driver side of a Result. Row indices passed to GotoRow
// and FetchRow are 0-based.
//
// Drivers without random access treat GotoRow as a no-op and reject FetchRow
// for any row before their current cursor.
type QueryHandle interface {
	// Fields describes the columns. It is called once, when the Result is created.
	Fields() []Field

	// NumRows returns the number of rows matched by the statement.
	NumRows() uint64

	// RowsAffected returns the number of rows changed by the statement.
	RowsAffected() uint64

	// GotoRow positions the driver cursor on row idx.
	GotoRow(idx uint64) error

	// FetchRow materializes row idx into rb.
	FetchRow(idx uint64, rb *RowBuilder) error

	// Free releases the driver resources of the result set.
	Free() error
}
