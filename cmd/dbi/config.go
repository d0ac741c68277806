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
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	dbiconfig "github.com/teradata-labs/dbi/pkg/config"
)

const (
	// ServiceName for keyring storage
	ServiceName = "dbi"
	// DefaultConfigFileName is the name of the config file
	DefaultConfigFileName = "dbi"
)

// Config holds all configuration for the dbi CLI.
// Priority: CLI flags > config file > env vars > defaults
type Config struct {
	// DataDir is computed from DBI_DATA_DIR or ~/.dbi and is not loaded
	// from the config file.
	DataDir string `mapstructure:"-"`

	// Profile names a connection profile in $DBI_DATA_DIR/profiles, or is a
	// path to a profile file.
	Profile string `mapstructure:"profile"`

	Connection ConnectionConfig `mapstructure:"connection"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ConnectionConfig holds connection settings given directly instead of
// through a profile. Non-empty values override the profile's.
type ConnectionConfig struct {
	Driver         string            `mapstructure:"driver"`
	Host           string            `mapstructure:"host"`
	Port           int               `mapstructure:"port"`
	Username       string            `mapstructure:"username"`
	Password       string            `mapstructure:"password"` // From CLI/env/keyring only
	DBName         string            `mapstructure:"dbname"`
	Encoding       string            `mapstructure:"encoding"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	Options        map[string]string `mapstructure:"options"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// LoadConfig loads configuration from multiple sources with proper priority:
// 1. Command line flags (highest priority)
// 2. Config file
// 3. Environment variables
// 4. Defaults (lowest priority)
func LoadConfig(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(dbiconfig.DataDir())
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/dbi/")
		viper.SetConfigName(DefaultConfigFileName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetEnvPrefix("DBI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.DataDir = dbiconfig.DataDir()

	// Non-fatal: keyring might not be available - user can provide the
	// password via CLI/env
	_ = loadSecretsFromKeyring(&config)

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("connection.driver", "")
	viper.SetDefault("connection.host", "")
	viper.SetDefault("connection.port", 0)
	viper.SetDefault("connection.username", "")
	viper.SetDefault("connection.password", "")
	viper.SetDefault("connection.dbname", "")
	viper.SetDefault("connection.encoding", "")
	viper.SetDefault("connection.timeout_seconds", 0)

	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.file", "")
}

// addOptions parses key=value driver options.
func (c *ConnectionConfig) addOptions(pairs []string) error {
	if c.Options == nil {
		c.Options = make(map[string]string, len(pairs))
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("option %q must be key=value", pair)
		}
		c.Options[key] = value
	}
	return nil
}

// SecretKey is the keyring entry holding the password for a connection.
func SecretKey(driver, username, host string) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s://%s@%s", driver, username, host)
}

// loadSecretsFromKeyring fills in the connection password when it was not
// given on the command line, in the environment or in the config file.
func loadSecretsFromKeyring(config *Config) error {
	conn := &config.Connection
	if conn.Password != "" || conn.Driver == "" || conn.Username == "" {
		return nil
	}
	value, err := GetSecretFromKeyring(SecretKey(conn.Driver, conn.Username, conn.Host))
	if err != nil {
		return err
	}
	conn.Password = value
	return nil
}

// GetSecretFromKeyring retrieves a secret from the system keyring.
func GetSecretFromKeyring(key string) (string, error) {
	return keyring.Get(ServiceName, key)
}

// SaveSecretToKeyring saves a secret to the system keyring.
func SaveSecretToKeyring(key, value string) error {
	return keyring.Set(ServiceName, key, value)
}

// DeleteSecretFromKeyring removes a secret from the system keyring.
func DeleteSecretFromKeyring(key string) error {
	return keyring.Delete(ServiceName, key)
}
