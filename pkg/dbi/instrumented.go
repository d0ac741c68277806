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

import (
	"context"
	"time"

	"github.com/teradata-labs/dbi/pkg/observability"
)

// instrumentedConn wraps a driver session with tracing spans and metrics.
// Every Conn holds its session through one.
type instrumentedConn struct {
	handle ConnHandle
	tracer observability.Tracer
	driver string
}

var _ ConnHandle = (*instrumentedConn)(nil)

// maxStatementPreview bounds the statement text stored on a span.
const maxStatementPreview = 500

func (ic *instrumentedConn) Close() error {
	return ic.handle.Close()
}

func (ic *instrumentedConn) Query(ctx context.Context, sql string) (QueryHandle, error) {
	return ic.query(ctx, sql, func(ctx context.Context) (QueryHandle, error) {
		return ic.handle.Query(ctx, sql)
	})
}

func (ic *instrumentedConn) QueryBytes(ctx context.Context, sql []byte) (QueryHandle, error) {
	return ic.query(ctx, string(sql), func(ctx context.Context) (QueryHandle, error) {
		return ic.handle.QueryBytes(ctx, sql)
	})
}

func (ic *instrumentedConn) query(ctx context.Context, sql string, run func(context.Context) (QueryHandle, error)) (QueryHandle, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanQuery)
	defer ic.tracer.EndSpan(span)

	span.SetAttribute(observability.AttrDriver, ic.driver)
	span.SetAttribute(observability.AttrStatementLen, len(sql))
	preview := sql
	if len(preview) > maxStatementPreview {
		preview = preview[:maxStatementPreview] + "..."
	}
	span.SetAttribute(observability.AttrStatement, preview)

	start := time.Now()
	qh, err := run(ctx)
	duration := time.Since(start)

	if err != nil {
		ic.recordFailure(span, err, "query")
		return nil, err
	}
	span.Status = observability.Status{Code: observability.StatusOK}
	if qh != nil {
		span.SetAttribute(observability.AttrRowCount, qh.NumRows())
		span.SetAttribute(observability.AttrFieldCount, len(qh.Fields()))
		span.SetAttribute(observability.AttrRowsAffected, qh.RowsAffected())
	}

	ic.tracer.RecordMetric(observability.MetricQueries, 1, map[string]string{
		observability.AttrDriver: ic.driver,
		"status":                 "success",
	})
	ic.tracer.RecordMetric(observability.MetricQueryDuration, float64(duration.Milliseconds()), map[string]string{
		observability.AttrDriver: ic.driver,
	})
	return qh, nil
}

func (ic *instrumentedConn) SelectDB(ctx context.Context, db string) (string, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanSelectDB,
		observability.WithAttribute(observability.AttrDriver, ic.driver),
		observability.WithAttribute(observability.AttrDatabase, db))
	defer ic.tracer.EndSpan(span)

	current, err := ic.handle.SelectDB(ctx, db)
	if err != nil {
		ic.recordFailure(span, err, "select_db")
		return "", err
	}
	span.Status = observability.Status{Code: observability.StatusOK}
	return current, nil
}

func (ic *instrumentedConn) ListDatabases(ctx context.Context, pattern string) (QueryHandle, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanListDatabases,
		observability.WithAttribute(observability.AttrDriver, ic.driver),
		observability.WithAttribute(observability.AttrPattern, pattern))
	defer ic.tracer.EndSpan(span)

	qh, err := ic.handle.ListDatabases(ctx, pattern)
	if err != nil {
		ic.recordFailure(span, err, "list_databases")
		return nil, err
	}
	span.Status = observability.Status{Code: observability.StatusOK}
	return qh, nil
}

func (ic *instrumentedConn) ListTables(ctx context.Context, db, pattern string) (QueryHandle, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanListTables,
		observability.WithAttribute(observability.AttrDriver, ic.driver),
		observability.WithAttribute(observability.AttrDatabase, db),
		observability.WithAttribute(observability.AttrPattern, pattern))
	defer ic.tracer.EndSpan(span)

	qh, err := ic.handle.ListTables(ctx, db, pattern)
	if err != nil {
		ic.recordFailure(span, err, "list_tables")
		return nil, err
	}
	span.Status = observability.Status{Code: observability.StatusOK}
	return qh, nil
}

func (ic *instrumentedConn) QuoteString(s string) string {
	return ic.handle.QuoteString(s)
}

func (ic *instrumentedConn) LastInsertSequence(ctx context.Context, name string) (uint64, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanSequence,
		observability.WithAttribute(observability.AttrDriver, ic.driver))
	defer ic.tracer.EndSpan(span)

	v, err := ic.handle.LastInsertSequence(ctx, name)
	if err != nil {
		ic.recordFailure(span, err, "sequence_last")
	}
	return v, err
}

func (ic *instrumentedConn) NextSequence(ctx context.Context, name string) (uint64, error) {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanSequence,
		observability.WithAttribute(observability.AttrDriver, ic.driver))
	defer ic.tracer.EndSpan(span)

	v, err := ic.handle.NextSequence(ctx, name)
	if err != nil {
		ic.recordFailure(span, err, "sequence_next")
	}
	return v, err
}

func (ic *instrumentedConn) Ping(ctx context.Context) error {
	ctx, span := ic.tracer.StartSpan(ctx, observability.SpanPing,
		observability.WithAttribute(observability.AttrDriver, ic.driver))
	defer ic.tracer.EndSpan(span)

	if err := ic.handle.Ping(ctx); err != nil {
		ic.recordFailure(span, err, "ping")
		return err
	}
	span.Status = observability.Status{Code: observability.StatusOK}
	return nil
}

func (ic *instrumentedConn) LastError() (int, string) {
	return ic.handle.LastError()
}

func (ic *instrumentedConn) EngineVersion(ctx context.Context) (string, error) {
	return ic.handle.EngineVersion(ctx)
}

func (ic *instrumentedConn) recordFailure(span *observability.Span, err error, op string) {
	span.RecordError(err)
	if de := driverError(err, op); de.Code != 0 {
		span.SetAttribute(observability.AttrErrorCode, de.Code)
	}
	ic.tracer.RecordMetric(observability.MetricErrors, 1, map[string]string{
		observability.AttrDriver: ic.driver,
		"operation":              op,
	})
}
