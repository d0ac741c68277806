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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/internal/log"
	"github.com/teradata-labs/dbi/internal/pgxdriver"
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/pgsql"
)

type session struct {
	driver  *Driver
	conn    *pgx.Conn
	opts    *dbi.Options
	dbname  string
	lastErr int
	lastMsg string
}

var _ dbi.ConnHandle = (*session)(nil)

func (s *session) Close() error {
	return s.conn.Close(context.Background())
}

func (s *session) Query(ctx context.Context, stmt string) (dbi.QueryHandle, error) {
	rows, err := s.conn.Query(ctx, stmt)
	if err != nil {
		return nil, s.fail(err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	fields := make([]dbi.Field, len(fds))
	oids := make([]uint32, len(fds))
	for i, fd := range fds {
		fields[i] = FieldForOID(fd.DataTypeOID)
		fields[i].Name = fd.Name
		oids[i] = fd.DataTypeOID
	}

	var raw [][][]byte
	for rows.Next() {
		// RawValues is only valid until the next call to Next.
		vals := rows.RawValues()
		row := make([][]byte, len(vals))
		for i, v := range vals {
			if v != nil {
				row[i] = bytes.Clone(v)
			}
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err)
	}
	s.clearError()

	affected := uint64(0)
	if len(fields) == 0 {
		affected = uint64(rows.CommandTag().RowsAffected())
	}
	return &queryHandle{fields: fields, oids: oids, rows: raw, affected: affected}, nil
}

func (s *session) QueryBytes(ctx context.Context, stmt []byte) (dbi.QueryHandle, error) {
	if bytes.IndexByte(stmt, 0) >= 0 {
		return nil, &dbi.Error{Kind: dbi.KindBadObject, Message: "postgres statements cannot contain NUL bytes"}
	}
	return s.Query(ctx, string(stmt))
}

// SelectDB reconnects; PostgreSQL sessions are bound to one database.
func (s *session) SelectDB(ctx context.Context, db string) (string, error) {
	opts := s.opts.Clone()
	opts.Set(dbi.OptionDBName, db)
	next, err := pgxdriver.Connect(ctx, opts, s.driver.tracer)
	if err != nil {
		return "", s.fail(err)
	}
	if err := s.conn.Close(ctx); err != nil {
		log.Warn("closing previous session failed", zap.String("driver", Name), zap.Error(err))
	}
	s.conn, s.opts, s.dbname = next, opts, db
	return db, nil
}

func (s *session) ListDatabases(ctx context.Context, pattern string) (dbi.QueryHandle, error) {
	names, err := queryStrings(ctx, s.conn, pgsql.ListDatabasesQuery(pattern), likeArgs(pattern)...)
	if err != nil {
		return nil, s.fail(err)
	}
	return dbi.NewNameList("database", names), nil
}

// ListTables opens a second session when db is not the current database.
func (s *session) ListTables(ctx context.Context, db, pattern string) (dbi.QueryHandle, error) {
	conn := s.conn
	if db != "" && db != s.dbname {
		opts := s.opts.Clone()
		opts.Set(dbi.OptionDBName, db)
		other, err := pgxdriver.Connect(ctx, opts, s.driver.tracer)
		if err != nil {
			return nil, s.fail(err)
		}
		defer other.Close(context.Background())
		conn = other
	}
	names, err := queryStrings(ctx, conn, pgsql.ListTablesQuery(pattern), likeArgs(pattern)...)
	if err != nil {
		return nil, s.fail(err)
	}
	return dbi.NewNameList("table", names), nil
}

func (s *session) QuoteString(str string) string {
	escaped, err := s.conn.PgConn().EscapeString(str)
	if err != nil {
		escaped = strings.ReplaceAll(str, "'", "''")
	}
	return "'" + escaped + "'"
}

func (s *session) LastInsertSequence(ctx context.Context, name string) (uint64, error) {
	if name == "" {
		return s.queryUint(ctx, "SELECT lastval()")
	}
	return s.queryUint(ctx, "SELECT currval($1)", name)
}

func (s *session) NextSequence(ctx context.Context, name string) (uint64, error) {
	return s.queryUint(ctx, "SELECT nextval($1)", name)
}

func (s *session) Ping(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *session) LastError() (int, string) {
	return s.lastErr, s.lastMsg
}

func (s *session) EngineVersion(ctx context.Context) (string, error) {
	if v := s.conn.PgConn().ParameterStatus("server_version"); v != "" {
		return v, nil
	}
	var v string
	if err := s.conn.QueryRow(ctx, "SHOW server_version").Scan(&v); err != nil {
		return "", s.fail(err)
	}
	return v, nil
}

func (s *session) queryUint(ctx context.Context, stmt string, args ...any) (uint64, error) {
	var n int64
	if err := s.conn.QueryRow(ctx, stmt, args...).Scan(&n); err != nil {
		return 0, s.fail(err)
	}
	if n < 0 {
		return 0, fmt.Errorf("sequence value %d is negative", n)
	}
	return uint64(n), nil
}

func (s *session) fail(err error) error {
	s.lastErr = 0
	s.lastMsg = err.Error()
	return wrapError(err)
}

func (s *session) clearError() {
	s.lastErr, s.lastMsg = 0, ""
}

func queryStrings(ctx context.Context, conn *pgx.Conn, stmt string, args ...any) ([]string, error) {
	rows, err := conn.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func likeArgs(pattern string) []any {
	if pattern == "" {
		return nil
	}
	return []any{pattern}
}

// wrapError attaches the SQLSTATE of server errors.
func wrapError(err error) error {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return &dbi.DriverFailure{State: pe.Code, Err: err}
	}
	return err
}
