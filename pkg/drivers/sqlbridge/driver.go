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
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/internal/log"
	"github.com/teradata-labs/dbi/pkg/dbi"
)

// Driver is a dbi.Driver backed by a database/sql driver.
type Driver struct {
	dialect Dialect
}

var _ dbi.Driver = (*Driver)(nil)

// New creates a bridged driver for dialect.
func New(dialect Dialect) *Driver {
	return &Driver{dialect: dialect}
}

// Dialect returns the dialect the driver was built from.
func (d *Driver) Dialect() Dialect { return d.dialect }

func (d *Driver) Info() dbi.DriverInfo { return d.dialect.Info() }

func (d *Driver) Capabilities() *dbi.Capabilities { return d.dialect.Capabilities() }

// Connect opens a database/sql pool restricted to one connection and pins
// that connection for the session.
func (d *Driver) Connect(ctx context.Context, opts *dbi.Options) (dbi.ConnHandle, error) {
	s, err := open(ctx, d.dialect, opts)
	if err != nil {
		return nil, wrapError(d.dialect, err)
	}
	return s, nil
}

// wrapError attaches the engine's native code and SQLSTATE to err.
func wrapError(dialect Dialect, err error) error {
	if code, state, ok := dialect.ErrorCode(err); ok {
		return &dbi.DriverFailure{Code: code, State: state, Err: err}
	}
	return err
}

func unsupported(dialect Dialect, op string) error {
	return &dbi.Error{Kind: dbi.KindUnsupported, Message: fmt.Sprintf("%s: %s is not supported", dialect.Info().Name, op)}
}

func open(ctx context.Context, dialect Dialect, opts *dbi.Options) (*Session, error) {
	dsn, err := dialect.DSN(opts)
	if err != nil {
		return nil, err
	}
	if secs := opts.IntOr(dbi.OptionTimeout, 0); secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	db, err := sql.Open(dialect.SQLDriver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.SQLDriver(), err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, multierr.Append(err, db.Close())
	}
	if err := conn.PingContext(ctx); err != nil {
		return nil, multierr.Combine(err, conn.Close(), db.Close())
	}

	log.Debug("sql session opened",
		zap.String("driver", dialect.Info().Name),
		zap.String("dbname", opts.StringOr(dbi.OptionDBName, "")))
	return &Session{
		dialect: dialect,
		opts:    opts,
		db:      db,
		conn:    conn,
		dbname:  opts.StringOr(dbi.OptionDBName, ""),
	}, nil
}
