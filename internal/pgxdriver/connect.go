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
package pgxdriver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/observability"
)

// Connect opens one pgx session for opts. The session uses the simple
// protocol so every row arrives as text.
func Connect(ctx context.Context, opts *dbi.Options, tracer observability.Tracer) (*pgx.Conn, error) {
	if tracer == nil {
		tracer = observability.NewNoOpTracer()
	}

	ctx, span := tracer.StartSpan(ctx, "pgxdriver.connect")
	defer tracer.EndSpan(span)

	cfg, err := ParseConfig(opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	// Verify connectivity
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	span.SetAttribute("pgx.host", cfg.Host)
	span.SetAttribute("pgx.database", cfg.Database)
	return conn, nil
}

// ParseConfig turns opts into a pgx connection config.
func ParseConfig(opts *dbi.Options) (*pgx.ConnConfig, error) {
	dsn, err := BuildDSN(opts)
	if err != nil {
		return nil, err
	}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	if enc := opts.StringOr(dbi.OptionEncoding, ""); enc != "" {
		cfg.RuntimeParams["client_encoding"] = enc
	}
	return cfg, nil
}
