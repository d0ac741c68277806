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
// Package pgx is the native dbi driver for PostgreSQL over
// github.com/jackc/pgx/v5. It accepts the same options as the pgsql driver.
//
// Rows are read in text form when a statement runs and decoded into dbi
// values only when the row is fetched.
package pgx

import (
	"context"

	"github.com/teradata-labs/dbi/internal/pgxdriver"
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/pgsql"
	"github.com/teradata-labs/dbi/pkg/observability"
)

// Name is the registry name of the driver.
const Name = "pgx"

// Driver implements dbi.Driver.
type Driver struct {
	tracer observability.Tracer
}

var _ dbi.Driver = (*Driver)(nil)

// Option configures a Driver.
type Option func(*Driver)

// WithTracer traces connection setup.
func WithTracer(tracer observability.Tracer) Option {
	return func(d *Driver) { d.tracer = tracer }
}

// New returns the pgx driver.
func New(opts ...Option) *Driver {
	d := &Driver{tracer: observability.NewNoOpTracer()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Info() dbi.DriverInfo {
	return dbi.DriverInfo{
		Name:        Name,
		Description: "PostgreSQL servers through the native pgx protocol",
		Maintainer:  "Teradata",
		URL:         "https://github.com/jackc/pgx",
		Version:     "1.0.0",
	}
}

func (d *Driver) Capabilities() *dbi.Capabilities {
	return pgsql.Capabilities().WithFeature(dbi.FeatureNativeDatetime, true)
}

func (d *Driver) Connect(ctx context.Context, opts *dbi.Options) (dbi.ConnHandle, error) {
	conn, err := pgxdriver.Connect(ctx, opts, d.tracer)
	if err != nil {
		return nil, wrapError(err)
	}
	return &session{
		driver: d,
		conn:   conn,
		opts:   opts,
		dbname: conn.Config().Database,
	}, nil
}
