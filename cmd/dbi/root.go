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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teradata-labs/dbi/internal/version"
)

var (
	cfgFile string
	config  *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dbi",
	Short: "dbi - database independent query tool",
	Long: `dbi runs statements against any database with a built-in driver
(mysql, pgsql, pgx, sqlite3) through one client interface.

Connections come from flags, DBI_* environment variables, the dbi.yaml
config file or a named connection profile.`,
	Version:       version.Get(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $DBI_DATA_DIR/dbi.yaml)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "connection profile name or path")

	// Connection flags
	rootCmd.PersistentFlags().StringP("driver", "d", "", "driver name (mysql, pgsql, pgx, sqlite3)")
	rootCmd.PersistentFlags().StringP("host", "H", "", "server host")
	rootCmd.PersistentFlags().IntP("port", "P", 0, "server port (0=driver default)")
	rootCmd.PersistentFlags().StringP("username", "u", "", "user name")
	rootCmd.PersistentFlags().String("password", "", "password (or use keyring/env)")
	rootCmd.PersistentFlags().StringP("dbname", "D", "", "database name")
	rootCmd.PersistentFlags().String("encoding", "", "client character encoding")
	rootCmd.PersistentFlags().Int("timeout", 0, "connect timeout in seconds")
	rootCmd.PersistentFlags().StringArrayP("option", "o", nil, "driver option key=value (repeatable)")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "Log output file (default: stderr)")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))

	_ = viper.BindPFlag("connection.driver", rootCmd.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("connection.host", rootCmd.PersistentFlags().Lookup("host"))
	_ = viper.BindPFlag("connection.port", rootCmd.PersistentFlags().Lookup("port"))
	_ = viper.BindPFlag("connection.username", rootCmd.PersistentFlags().Lookup("username"))
	_ = viper.BindPFlag("connection.password", rootCmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("connection.dbname", rootCmd.PersistentFlags().Lookup("dbname"))
	_ = viper.BindPFlag("connection.encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	_ = viper.BindPFlag("connection.timeout_seconds", rootCmd.PersistentFlags().Lookup("timeout"))

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	config, err = LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts, err := rootCmd.PersistentFlags().GetStringArray("option"); err == nil && len(opts) > 0 {
		if err := config.Connection.addOptions(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
