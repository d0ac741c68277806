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
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/teradata-labs/dbi/internal/log"
	dbiconfig "github.com/teradata-labs/dbi/pkg/config"
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/all"
	"github.com/teradata-labs/dbi/pkg/observability"
)

// session is an instance with one open connection.
type session struct {
	inst   *dbi.Instance
	conn   *dbi.Conn
	logger *zap.Logger
}

// newInstance builds an instance with every built-in driver registered.
func newInstance(logger *zap.Logger) (*dbi.Instance, error) {
	tracer := observability.NewNoOpTracer()
	inst := dbi.NewInstance(dbi.WithLogger(logger), dbi.WithTracer(tracer))
	if err := all.Register(inst, tracer); err != nil {
		return nil, err
	}
	return inst, nil
}

// openSession builds the logger, resolves the connection settings and
// connects.
func openSession(ctx context.Context, cfg *Config) (*session, error) {
	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	log.SetLogger(logger)

	inst, err := newInstance(logger)
	if err != nil {
		return nil, err
	}

	conn, err := newConn(inst, cfg)
	if err != nil {
		return nil, err
	}
	conn.SetErrorHandler(func(c *dbi.Conn, _ any) {
		if e := c.LastError(); e != nil {
			logger.Debug("driver reported error", zap.Int("code", e.Code), zap.String("message", e.Message))
		}
	}, nil)

	if err := conn.Connect(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("connect: %w", err), inst.Shutdown())
	}
	logger.Info("connected",
		zap.String("driver", conn.DriverInfo().Name),
		zap.String("database", conn.CurrentDB()))
	return &session{inst: inst, conn: conn, logger: logger}, nil
}

// newConn creates an unconnected Conn from the profile, if any, with direct
// connection settings layered on top.
func newConn(inst *dbi.Instance, cfg *Config) (*dbi.Conn, error) {
	cc := cfg.Connection

	var conn *dbi.Conn
	if cfg.Profile != "" {
		profile, err := loadProfile(cfg.Profile)
		if err != nil {
			return nil, err
		}
		if cc.Driver != "" && cc.Driver != profile.Driver {
			return nil, fmt.Errorf("driver %s conflicts with profile %s (driver %s)", cc.Driver, profile.Name, profile.Driver)
		}
		if conn, err = profile.Open(inst); err != nil {
			return nil, err
		}
	} else {
		if cc.Driver == "" {
			return nil, fmt.Errorf("no driver given: use --driver or --profile")
		}
		if _, ok := inst.Driver(cc.Driver); !ok {
			return nil, unknownDriverError(inst, cc.Driver)
		}
		var err error
		if conn, err = inst.NewConn(cc.Driver); err != nil {
			return nil, err
		}
	}

	var errs error
	setString := func(key, value string) {
		if value != "" {
			errs = multierr.Append(errs, conn.SetOption(key, value))
		}
	}
	setNumeric := func(key string, value int) {
		if value > 0 {
			errs = multierr.Append(errs, conn.SetOptionNumeric(key, value))
		}
	}
	setString(dbi.OptionHost, cc.Host)
	setNumeric(dbi.OptionPort, cc.Port)
	setString(dbi.OptionUsername, cc.Username)
	setString(dbi.OptionPassword, cc.Password)
	setString(dbi.OptionDBName, cc.DBName)
	setString(dbi.OptionEncoding, cc.Encoding)
	setNumeric(dbi.OptionTimeout, cc.TimeoutSeconds)
	for key, value := range cc.Options {
		errs = multierr.Append(errs, conn.SetOption(key, value))
	}
	if errs != nil {
		return nil, multierr.Append(errs, conn.Close())
	}
	return conn, nil
}

// unknownDriverError names the registered drivers closest to name.
func unknownDriverError(inst *dbi.Instance, name string) error {
	var names []string
	for _, info := range inst.Drivers() {
		names = append(names, info.Name)
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return fmt.Errorf("unknown driver %q (available: %s)", name, strings.Join(names, ", "))
	}
	suggestions := make([]string, len(matches))
	for i, m := range matches {
		suggestions[i] = m.Str
	}
	return fmt.Errorf("unknown driver %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
}

// loadProfile treats ref as a file when it looks like a path and as a
// profile name otherwise.
func loadProfile(ref string) (*dbiconfig.Profile, error) {
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.ContainsRune(ref, filepath.Separator) {
		return dbiconfig.LoadProfile(ref)
	}
	return dbiconfig.FindProfile(dbiconfig.ProfilesDir(), ref)
}

// Close frees every result, disconnects and flushes the logger.
func (s *session) Close() error {
	err := s.inst.Shutdown()
	_ = log.Sync()
	return err
}
