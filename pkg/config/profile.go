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
// Package config loads connection profiles: YAML documents naming a driver
// and the options to open a connection with.
//
//	apiVersion: dbi/v1
//	kind: Connection
//	name: shop
//	driver: mysql
//	connection:
//	  host: db.internal
//	  username: app
//	  password: ${SHOP_PASSWORD}
//	  database: shop
//	options:
//	  mysql_tls: "true"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

// APIVersion is the only profile schema version understood.
const APIVersion = "dbi/v1"

// KindConnection is the kind of a connection profile.
const KindConnection = "Connection"

// Option keys whose values are file system paths resolved against the
// profile's directory.
var pathOptions = []string{"sqlite3_dbdir"}

// ProfileYAML represents the YAML structure of a connection profile
type ProfileYAML struct {
	APIVersion  string          `yaml:"apiVersion"`
	Kind        string          `yaml:"kind"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Driver      string          `yaml:"driver"`
	Connection  *ConnectionYAML `yaml:"connection"`
	Options     map[string]any  `yaml:"options"`
}

// ConnectionYAML holds the well-known connection options.
type ConnectionYAML struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	Encoding       string `yaml:"encoding"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Profile is a validated connection profile.
type Profile struct {
	Name        string
	Description string
	Driver      string
	Options     *dbi.Options
}

// LoadProfile loads a connection profile from a YAML file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return ParseProfile(data, filepath.Dir(path))
}

// FindProfile loads <name>.yaml or <name>.yml from dir.
func FindProfile(dir, name string) (*Profile, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadProfile(path)
		}
	}
	return nil, fmt.Errorf("profile %q not found in %s", name, dir)
}

// ParseProfile parses profile YAML. Relative paths are resolved against
// baseDir.
func ParseProfile(data []byte, baseDir string) (*Profile, error) {
	// Expand environment variables
	dataStr := expandEnvVars(string(data))

	var yamlConfig ProfileYAML
	if err := yaml.Unmarshal([]byte(dataStr), &yamlConfig); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	if err := validateProfileYAML(&yamlConfig); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := validateProfileSchema([]byte(dataStr)); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	opts, err := yamlToOptions(&yamlConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	resolveProfilePaths(opts, baseDir)

	return &Profile{
		Name:        yamlConfig.Name,
		Description: yamlConfig.Description,
		Driver:      yamlConfig.Driver,
		Options:     opts,
	}, nil
}

// validateProfileYAML validates the YAML structure
func validateProfileYAML(y *ProfileYAML) error {
	if y.APIVersion == "" {
		return fmt.Errorf("apiVersion is required")
	}
	if y.APIVersion != APIVersion {
		return fmt.Errorf("unsupported apiVersion: %s (expected: %s)", y.APIVersion, APIVersion)
	}
	if y.Kind != KindConnection {
		return fmt.Errorf("kind must be '%s', got: %s", KindConnection, y.Kind)
	}
	if y.Name == "" {
		return fmt.Errorf("name is required")
	}
	if y.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	if c := y.Connection; c != nil {
		if c.Port < 0 || c.Port > 65535 {
			return fmt.Errorf("connection.port out of range: %d", c.Port)
		}
		if c.TimeoutSeconds < 0 {
			return fmt.Errorf("connection.timeout_seconds must not be negative")
		}
	}
	return nil
}

// yamlToOptions converts the profile to driver options. Integer values in
// the options map become numeric options; everything else is a string.
func yamlToOptions(y *ProfileYAML) (*dbi.Options, error) {
	opts := dbi.NewOptions()
	if c := y.Connection; c != nil {
		setString(opts, dbi.OptionHost, c.Host)
		setString(opts, dbi.OptionUsername, c.Username)
		setString(opts, dbi.OptionPassword, c.Password)
		setString(opts, dbi.OptionDBName, c.Database)
		setString(opts, dbi.OptionEncoding, c.Encoding)
		if c.Port > 0 {
			opts.SetNumeric(dbi.OptionPort, c.Port)
		}
		if c.TimeoutSeconds > 0 {
			opts.SetNumeric(dbi.OptionTimeout, c.TimeoutSeconds)
		}
	}

	keys := make([]string, 0, len(y.Options))
	for k := range y.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := y.Options[k].(type) {
		case int:
			opts.SetNumeric(k, v)
		case string:
			opts.Set(k, v)
		case bool:
			if v {
				opts.Set(k, "1")
			} else {
				opts.Set(k, "0")
			}
		case float64:
			return nil, fmt.Errorf("options.%s: fractional values are not supported", k)
		default:
			return nil, fmt.Errorf("options.%s: unsupported value %v", k, v)
		}
	}
	return opts, nil
}

func setString(opts *dbi.Options, key, value string) {
	if value != "" {
		opts.Set(key, value)
	}
}

// resolveProfilePaths makes path options absolute
func resolveProfilePaths(opts *dbi.Options, baseDir string) {
	for _, key := range pathOptions {
		if p, ok := opts.String(key); ok && p != "" {
			opts.Set(key, resolveRelativePath(baseDir, p))
		}
	}
}

// resolveRelativePath resolves a relative path to absolute
func resolveRelativePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return expandPath(path)
	}
	return filepath.Join(baseDir, path)
}

// expandEnvVars expands environment variables in YAML content
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}

// Apply copies the profile's options onto c, keeping their string or
// numeric form. It fails when c belongs to another driver.
func (p *Profile) Apply(c *dbi.Conn) error {
	if name := c.DriverInfo().Name; name != p.Driver {
		return fmt.Errorf("profile %s is for driver %s, connection uses %s", p.Name, p.Driver, name)
	}
	for _, key := range p.Options.Keys() {
		if p.Options.IsNumeric(key) {
			n, _ := p.Options.Int(key)
			if err := c.SetOptionNumeric(key, n); err != nil {
				return err
			}
			continue
		}
		v, _ := p.Options.String(key)
		if err := c.SetOption(key, v); err != nil {
			return err
		}
	}
	return nil
}

// Open creates a connection on inst for the profile's driver with the
// profile's options applied. The connection is not yet connected.
func (p *Profile) Open(inst *dbi.Instance) (*dbi.Conn, error) {
	c, err := inst.NewConn(p.Driver)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(c); err != nil {
		return nil, multierr.Append(err, c.Close())
	}
	return c, nil
}
