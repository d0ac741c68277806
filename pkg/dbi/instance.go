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
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/internal/log"
	"github.com/teradata-labs/dbi/pkg/observability"
)

// Instance owns a driver registry and every connection opened through it.
// It replaces process-global driver and connection lists: create one at
// program start and Shutdown it on exit.
type Instance struct {
	registry *Registry
	logger   *zap.Logger
	tracer   observability.Tracer

	mu    sync.Mutex
	conns map[*Conn]struct{}
}

// InstanceOption configures an Instance.
type InstanceOption func(*Instance)

// WithLogger sets the logger handed to every connection.
func WithLogger(logger *zap.Logger) InstanceOption {
	return func(i *Instance) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithTracer sets the tracer used to instrument driver calls.
func WithTracer(tracer observability.Tracer) InstanceOption {
	return func(i *Instance) {
		if tracer != nil {
			i.tracer = tracer
		}
	}
}

// WithDriver registers a driver at construction time.
func WithDriver(d Driver) InstanceOption {
	return func(i *Instance) {
		if err := i.registry.Register(d); err != nil {
			i.logger.Warn("driver registration failed", zap.Error(err))
		}
	}
}

// NewInstance creates an Instance with an empty registry.
func NewInstance(opts ...InstanceOption) *Instance {
	inst := &Instance{
		registry: NewRegistry(),
		logger:   log.Logger(),
		tracer:   observability.NewNoOpTracer(),
		conns:    make(map[*Conn]struct{}),
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Register adds a driver to the instance.
func (i *Instance) Register(d Driver) error {
	if err := i.registry.Register(d); err != nil {
		return err
	}
	i.logger.Debug("driver registered", zap.String("driver", d.Info().Name))
	return nil
}

// Unregister removes a driver. Open connections keep using it.
func (i *Instance) Unregister(name string) {
	i.registry.Unregister(name)
}

// Drivers returns the metadata of every registered driver, sorted by name.
func (i *Instance) Drivers() []DriverInfo {
	return i.registry.Infos()
}

// Driver returns a registered driver by name.
func (i *Instance) Driver(name string) (Driver, bool) {
	return i.registry.Get(name)
}

// Logger returns the instance logger.
func (i *Instance) Logger() *zap.Logger {
	return i.logger
}

// NewConn creates an unconnected Conn bound to the named driver.
func (i *Instance) NewConn(driverName string) (*Conn, error) {
	d, err := i.registry.Lookup(driverName)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		inst:    i,
		driver:  d,
		caps:    d.Capabilities(),
		options: NewOptions(),
		logger:  i.logger.With(zap.String("driver", driverName)),
		tracer:  i.tracer,
	}

	i.mu.Lock()
	i.conns[c] = struct{}{}
	i.mu.Unlock()
	return c, nil
}

// NumConns returns the number of connections not yet closed.
func (i *Instance) NumConns() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.conns)
}

// Shutdown closes every connection still open and returns the combined errors.
func (i *Instance) Shutdown() error {
	i.mu.Lock()
	conns := make([]*Conn, 0, len(i.conns))
	for c := range i.conns {
		conns = append(conns, c)
	}
	i.mu.Unlock()

	var errs error
	for _, c := range conns {
		errs = multierr.Append(errs, c.Close())
	}
	i.logger.Debug("instance shut down", zap.Int("connections", len(conns)))
	return errs
}

func (i *Instance) release(c *Conn) {
	i.mu.Lock()
	delete(i.conns, c)
	i.mu.Unlock()
}
