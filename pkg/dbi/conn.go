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
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/pkg/observability"
)

// ErrorHandler is invoked synchronously after every failure recorded on a
// connection, with the argument registered alongside it.
type ErrorHandler func(c *Conn, arg any)

// Conn is one database session. A Conn is owned by a single goroutine; it
// and the Results it owns must not be used concurrently.
type Conn struct {
	inst    *Instance
	driver  Driver
	caps    *Capabilities
	options *Options
	handle  ConnHandle
	dbname  string
	closed  bool

	results []*Result

	lastErr *Error
	handler ErrorHandler
	arg     any

	logger *zap.Logger
	tracer observability.Tracer
}

// Driver returns the driver the connection was created with.
func (c *Conn) Driver() Driver { return c.driver }

// DriverInfo returns the metadata of the connection's driver.
func (c *Conn) DriverInfo() DriverInfo { return c.driver.Info() }

// Capabilities returns the driver capabilities.
func (c *Conn) Capabilities() *Capabilities { return c.caps }

// Connected reports whether Connect succeeded and Close has not been called.
func (c *Conn) Connected() bool { return c.handle != nil && !c.closed }

// SetOption stores a string option used by the next Connect.
func (c *Conn) SetOption(key, value string) error {
	c.resetError()
	if c.closed {
		return c.fail(newError(KindBadPointer, "connection is closed"))
	}
	c.options.Set(key, value)
	return nil
}

// SetOptionNumeric stores a numeric option used by the next Connect.
func (c *Conn) SetOptionNumeric(key string, value int) error {
	c.resetError()
	if c.closed {
		return c.fail(newError(KindBadPointer, "connection is closed"))
	}
	c.options.SetNumeric(key, value)
	return nil
}

// Option returns a string option. Numeric options are formatted.
func (c *Conn) Option(key string) (string, bool) {
	return c.options.String(key)
}

// OptionNumeric returns a numeric option. String options holding an integer
// are parsed.
func (c *Conn) OptionNumeric(key string) (int, bool) {
	return c.options.Int(key)
}

// OptionKeys returns the option keys in first-set order.
func (c *Conn) OptionKeys() []string {
	return c.options.Keys()
}

// ClearOption removes one option.
func (c *Conn) ClearOption(key string) {
	c.options.Clear(key)
}

// ClearOptions removes every option.
func (c *Conn) ClearOptions() {
	c.options.Reset()
}

// Options returns a copy of the connection options.
func (c *Conn) Options() *Options {
	return c.options.Clone()
}

// Connect opens the session described by the connection options.
func (c *Conn) Connect(ctx context.Context) error {
	c.resetError()
	if c.closed {
		return c.fail(newError(KindBadPointer, "connection is closed"))
	}
	if c.handle != nil {
		return c.fail(newError(KindBadObject, "connection is already open"))
	}

	name := c.driver.Info().Name
	ctx, span := c.tracer.StartSpan(ctx, observability.SpanConnect,
		observability.WithAttribute(observability.AttrDriver, name))
	defer c.tracer.EndSpan(span)

	h, err := c.driver.Connect(ctx, c.options.Clone())
	if err != nil {
		span.RecordError(err)
		return c.fail(driverError(err, "connect"))
	}
	if h == nil {
		return c.fail(newError(KindNoConn, "driver %s returned no session", name))
	}
	span.Status = observability.Status{Code: observability.StatusOK}

	c.handle = &instrumentedConn{handle: h, tracer: c.tracer, driver: name}
	c.dbname = c.options.StringOr(OptionDBName, "")
	c.logger.Debug("connected",
		zap.String("database", c.dbname),
		zap.String("host", c.options.StringOr(OptionHost, "")))
	return nil
}

// Close frees every Result the connection still owns, then closes the
// session. Errors from individual frees and from the driver are combined.
// Close on an already closed connection is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}

	var errs error
	for _, r := range slices.Clone(c.results) {
		// An error handler may free or disjoin results while this loop runs.
		if r.freed || r.conn != c {
			continue
		}
		errs = multierr.Append(errs, r.Free())
	}
	c.results = nil

	if c.handle != nil {
		if err := c.handle.Close(); err != nil {
			errs = multierr.Append(errs, driverError(err, "close"))
		}
		c.handle = nil
	}
	c.closed = true
	if c.inst != nil {
		c.inst.release(c)
	}
	c.logger.Debug("connection closed", zap.Error(errs))
	return errs
}

// Query sends a statement and returns its Result.
func (c *Conn) Query(ctx context.Context, statement string) (*Result, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.checkQuerySize(len(statement)); err != nil {
		return nil, c.fail(err)
	}
	qh, err := c.handle.Query(ctx, statement)
	if err != nil {
		return nil, c.fail(driverError(err, "query"))
	}
	return c.adopt(qh)
}

// QueryBytes sends a statement that may contain arbitrary bytes.
func (c *Conn) QueryBytes(ctx context.Context, statement []byte) (*Result, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return nil, c.fail(err)
	}
	if err := c.checkQuerySize(len(statement)); err != nil {
		return nil, c.fail(err)
	}
	qh, err := c.handle.QueryBytes(ctx, statement)
	if err != nil {
		return nil, c.fail(driverError(err, "query"))
	}
	return c.adopt(qh)
}

// Queryf formats a statement with fmt.Sprintf and sends it. Arguments are not
// quoted; use QuoteString for values.
func (c *Conn) Queryf(ctx context.Context, format string, args ...any) (*Result, error) {
	return c.Query(ctx, fmt.Sprintf(format, args...))
}

// SelectDB switches the session to another database.
func (c *Conn) SelectDB(ctx context.Context, db string) error {
	c.resetError()
	if err := c.ready(); err != nil {
		return c.fail(err)
	}
	current, err := c.handle.SelectDB(ctx, db)
	if err != nil {
		return c.fail(driverError(err, "select database"))
	}
	c.dbname = current
	return nil
}

// CurrentDB returns the database the session is using, if known.
func (c *Conn) CurrentDB() string {
	return c.dbname
}

// ListDatabases returns a one-column Result of database names matching the
// optional SQL LIKE pattern.
func (c *Conn) ListDatabases(ctx context.Context, pattern string) (*Result, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return nil, c.fail(err)
	}
	qh, err := c.handle.ListDatabases(ctx, pattern)
	if err != nil {
		return nil, c.fail(driverError(err, "list databases"))
	}
	return c.adopt(qh)
}

// ListTables returns a one-column Result of table names in db matching the
// optional SQL LIKE pattern.
func (c *Conn) ListTables(ctx context.Context, db, pattern string) (*Result, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return nil, c.fail(err)
	}
	if db == "" {
		db = c.dbname
	}
	qh, err := c.handle.ListTables(ctx, db, pattern)
	if err != nil {
		return nil, c.fail(driverError(err, "list tables"))
	}
	return c.adopt(qh)
}

// QuoteString returns s as an SQL string literal in the engine's dialect,
// surrounding quotes included.
func (c *Conn) QuoteString(s string) (string, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return "", c.fail(err)
	}
	return c.handle.QuoteString(s), nil
}

// QuoteStringCopy is QuoteString. Go strings are immutable, so the quoted
// value is always a fresh string.
func (c *Conn) QuoteStringCopy(s string) (string, error) {
	return c.QuoteString(s)
}

// EscapeString returns s escaped for inclusion between quotes, without the
// surrounding quotes.
func (c *Conn) EscapeString(s string) (string, error) {
	q, err := c.QuoteString(s)
	if err != nil {
		return "", err
	}
	start := strings.IndexAny(q, `'"`)
	end := strings.LastIndexAny(q, `'"`)
	if start < 0 || end <= start {
		return q, nil
	}
	return q[start+1 : end], nil
}

// SequenceLast returns the value most recently generated by the named
// sequence, or the last auto-increment value when name is empty.
func (c *Conn) SequenceLast(ctx context.Context, name string) (uint64, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return 0, c.fail(err)
	}
	v, err := c.handle.LastInsertSequence(ctx, name)
	if err != nil {
		return 0, c.fail(driverError(err, "last sequence value"))
	}
	return v, nil
}

// SequenceNext advances the named sequence and returns the new value.
func (c *Conn) SequenceNext(ctx context.Context, name string) (uint64, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return 0, c.fail(err)
	}
	if !c.caps.SupportsSequences {
		return 0, c.fail(newError(KindUnsupported, "driver %s has no sequences", c.driver.Info().Name))
	}
	v, err := c.handle.NextSequence(ctx, name)
	if err != nil {
		return 0, c.fail(driverError(err, "next sequence value"))
	}
	return v, nil
}

// Ping reports whether the session is alive. A failed ping records the
// driver error on the connection.
func (c *Conn) Ping(ctx context.Context) bool {
	c.resetError()
	if err := c.ready(); err != nil {
		c.fail(err)
		return false
	}
	if err := c.handle.Ping(ctx); err != nil {
		c.fail(driverError(err, "ping"))
		return false
	}
	return true
}

// EngineVersion returns the server version string reported by the engine.
func (c *Conn) EngineVersion(ctx context.Context) (string, error) {
	c.resetError()
	if err := c.ready(); err != nil {
		return "", c.fail(err)
	}
	v, err := c.handle.EngineVersion(ctx)
	if err != nil {
		return "", c.fail(driverError(err, "engine version"))
	}
	return v, nil
}

// NumResults returns the number of Results the connection owns.
func (c *Conn) NumResults() int {
	return len(c.results)
}

// Results returns the Results the connection owns, oldest first.
func (c *Conn) Results() []*Result {
	return slices.Clone(c.results)
}

// LastError returns the most recent failure, or nil when the last operation
// succeeded.
func (c *Conn) LastError() *Error {
	return c.lastErr
}

// ErrorCode returns the native code of the most recent failure, 0 if none.
func (c *Conn) ErrorCode() int {
	if c.lastErr == nil {
		return 0
	}
	return c.lastErr.Code
}

// SetErrorHandler registers fn to be called after each recorded failure. A
// nil fn removes the handler.
func (c *Conn) SetErrorHandler(fn ErrorHandler, arg any) {
	c.handler = fn
	c.arg = arg
}

func (c *Conn) ready() *Error {
	if c.closed {
		return newError(KindBadPointer, "connection is closed")
	}
	if c.handle == nil {
		return newError(KindNoConn, "not connected")
	}
	return nil
}

func (c *Conn) checkQuerySize(n int) *Error {
	if limit, ok := c.caps.GetLimit(LimitMaxQuerySize); ok && limit > 0 && int64(n) > limit {
		return newError(KindBadObject, "statement is %d bytes, driver %s accepts at most %d", n, c.driver.Info().Name, limit)
	}
	return nil
}

func (c *Conn) resetError() {
	c.lastErr = nil
}

// fail records err as the connection's error state, fills in the engine's
// own code and message for driver failures, and fires the handler.
func (c *Conn) fail(err *Error) *Error {
	if err.Kind == KindDriver && err.Code == 0 && c.handle != nil {
		if code, msg := c.handle.LastError(); code != 0 {
			err.Code = code
			if err.Message == "" {
				err.Message = msg
			}
		}
	}
	c.lastErr = err
	c.logger.Debug("dbi failure",
		zap.Stringer("kind", err.Kind),
		zap.Int("code", err.Code),
		zap.String("message", err.Message))
	if c.handler != nil {
		c.handler(c, c.arg)
	}
	return err
}

// adopt wraps a fresh driver query handle into a Result owned by c.
func (c *Conn) adopt(qh QueryHandle) (*Result, error) {
	if qh == nil {
		return nil, c.fail(newError(KindDriver, "driver returned no result"))
	}
	r, err := newResult(c, qh)
	if err != nil {
		if ferr := qh.Free(); ferr != nil {
			c.logger.Debug("freeing rejected query handle", zap.Error(ferr))
		}
		return nil, c.fail(err)
	}
	c.results = append(c.results, r)
	return r, nil
}

func (c *Conn) unregister(r *Result) {
	if i := slices.Index(c.results, r); i >= 0 {
		c.results = slices.Delete(c.results, i, i+1)
	}
}
