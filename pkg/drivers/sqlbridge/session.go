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
package sqlbridge

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/internal/log"
	"github.com/teradata-labs/dbi/pkg/dbi"
)

// Session is one pinned database/sql connection. It implements
// dbi.ConnHandle and is handed to dialect hooks.
type Session struct {
	dialect Dialect
	opts    *dbi.Options
	db      *sql.DB
	conn    *sql.Conn
	dbname  string

	lastInsertID int64
	hasInsertID  bool

	lastCode int
	lastMsg  string
}

var _ dbi.ConnHandle = (*Session)(nil)

// Options returns the options the session was opened with.
func (s *Session) Options() *dbi.Options { return s.opts }

// Database returns the database the session is connected to.
func (s *Session) Database() string { return s.dbname }

// Conn returns the pinned connection.
func (s *Session) Conn() *sql.Conn { return s.conn }

func (s *Session) Close() error {
	return multierr.Combine(s.conn.Close(), s.db.Close())
}

func (s *Session) Query(ctx context.Context, stmt string) (dbi.QueryHandle, error) {
	if ReturnsRows(stmt) {
		h, err := s.query(ctx, stmt)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	res, err := s.conn.ExecContext(ctx, stmt)
	if err != nil {
		return nil, s.fail(err)
	}
	s.clearError()
	var affected uint64
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		affected = uint64(n)
	}
	if id, err := res.LastInsertId(); err == nil {
		s.lastInsertID = id
		s.hasInsertID = true
	}
	return dbi.NewStaticHandle(nil, nil, affected), nil
}

func (s *Session) QueryBytes(ctx context.Context, stmt []byte) (dbi.QueryHandle, error) {
	return s.Query(ctx, string(stmt))
}

// query runs a row-returning statement and buffers every row.
func (s *Session) query(ctx context.Context, stmt string, args ...any) (*dbi.StaticHandle, error) {
	rows, err := s.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, s.fail(err)
	}
	defer rows.Close()

	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, s.fail(err)
	}

	var raw [][]any
	for rows.Next() {
		vals := make([]any, len(cts))
		ptrs := make([]any, len(cts))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, s.fail(err)
		}
		raw = append(raw, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err)
	}

	fields := make([]dbi.Field, len(cts))
	for j, ct := range cts {
		var sample any
		for _, row := range raw {
			if row[j] != nil {
				sample = row[j]
				break
			}
		}
		fields[j] = s.dialect.ColumnField(ct, sample)
		if fields[j].Name == "" {
			fields[j].Name = ct.Name()
		}
	}

	values := make([][]dbi.Value, len(raw))
	for i, row := range raw {
		values[i] = make([]dbi.Value, len(row))
		for j, v := range row {
			val, err := ToValue(fields[j], v)
			if err != nil {
				return nil, s.fail(fmt.Errorf("row %d: %w", i+1, err))
			}
			values[i][j] = val
		}
	}
	s.clearError()
	return dbi.NewStaticHandle(fields, values, 0), nil
}

func (s *Session) SelectDB(ctx context.Context, db string) (string, error) {
	if sel, ok := s.dialect.(DatabaseSelector); ok {
		current, err := sel.SelectDB(ctx, s, db)
		if err != nil {
			return "", err
		}
		s.dbname = current
		return current, nil
	}

	opts := s.opts.Clone()
	opts.Set(dbi.OptionDBName, db)
	next, err := open(ctx, s.dialect, opts)
	if err != nil {
		return "", s.fail(err)
	}
	if err := s.Close(); err != nil {
		log.Warn("closing previous session failed", zap.String("driver", s.dialect.Info().Name), zap.Error(err))
	}
	s.opts, s.db, s.conn, s.dbname = next.opts, next.db, next.conn, next.dbname
	s.hasInsertID = false
	return s.dbname, nil
}

func (s *Session) ListDatabases(ctx context.Context, pattern string) (dbi.QueryHandle, error) {
	lister, ok := s.dialect.(DatabaseLister)
	if !ok {
		return nil, unsupported(s.dialect, "listing databases")
	}
	names, err := lister.ListDatabases(ctx, s, pattern)
	if err != nil {
		return nil, err
	}
	return dbi.NewNameList("database", names), nil
}

// ListTables lists tables of db. When db is not the session's database a
// second connection is opened for the duration of the call.
func (s *Session) ListTables(ctx context.Context, db, pattern string) (dbi.QueryHandle, error) {
	lister, ok := s.dialect.(TableLister)
	if !ok {
		return nil, unsupported(s.dialect, "listing tables")
	}
	target := s
	if db != "" && db != s.dbname {
		opts := s.opts.Clone()
		opts.Set(dbi.OptionDBName, db)
		other, err := open(ctx, s.dialect, opts)
		if err != nil {
			return nil, s.fail(err)
		}
		target = other
	}
	names, err := lister.ListTables(ctx, target, pattern)
	if target != s {
		if err != nil {
			err = s.fail(err)
		}
		if cerr := target.Close(); cerr != nil {
			err = multierr.Append(err, s.fail(cerr))
		}
	}
	if err != nil {
		return nil, err
	}
	return dbi.NewNameList("table", names), nil
}

func (s *Session) QuoteString(str string) string {
	return s.dialect.QuoteString(str)
}

func (s *Session) LastInsertSequence(ctx context.Context, name string) (uint64, error) {
	if seq, ok := s.dialect.(Sequencer); ok {
		return seq.LastInsertSequence(ctx, s, name)
	}
	if name == "" && s.hasInsertID {
		return uint64(s.lastInsertID), nil
	}
	return 0, unsupported(s.dialect, "sequences")
}

func (s *Session) NextSequence(ctx context.Context, name string) (uint64, error) {
	if seq, ok := s.dialect.(Sequencer); ok {
		return seq.NextSequence(ctx, s, name)
	}
	return 0, unsupported(s.dialect, "sequences")
}

func (s *Session) Ping(ctx context.Context) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Session) LastError() (int, string) {
	return s.lastCode, s.lastMsg
}

func (s *Session) EngineVersion(ctx context.Context) (string, error) {
	vals, err := s.QueryStrings(ctx, s.dialect.VersionQuery())
	if err != nil {
		return "", err
	}
	if len(vals) == 0 {
		return "", fmt.Errorf("%s: empty version", s.dialect.Info().Name)
	}
	return vals[0], nil
}

// QueryStrings runs a statement and returns its first column as text.
// NULL values are skipped.
func (s *Session) QueryStrings(ctx context.Context, stmt string, args ...any) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, s.fail(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, s.fail(err)
		}
		if v.Valid {
			out = append(out, v.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err)
	}
	return out, nil
}

// QueryUint runs a statement returning one unsigned integer.
func (s *Session) QueryUint(ctx context.Context, stmt string, args ...any) (uint64, error) {
	var v sql.NullInt64
	if err := s.conn.QueryRowContext(ctx, stmt, args...).Scan(&v); err != nil {
		return 0, s.fail(err)
	}
	if !v.Valid || v.Int64 < 0 {
		return 0, nil
	}
	return uint64(v.Int64), nil
}

// Exec runs a statement that returns no rows.
func (s *Session) Exec(ctx context.Context, stmt string, args ...any) error {
	if _, err := s.conn.ExecContext(ctx, stmt, args...); err != nil {
		return s.fail(err)
	}
	return nil
}

// fail records err as the session's last error and attaches engine codes.
func (s *Session) fail(err error) error {
	s.lastMsg = err.Error()
	s.lastCode = 0
	if code, _, ok := s.dialect.ErrorCode(err); ok {
		s.lastCode = code
	}
	return wrapError(s.dialect, err)
}

func (s *Session) clearError() {
	s.lastCode = 0
	s.lastMsg = ""
}
