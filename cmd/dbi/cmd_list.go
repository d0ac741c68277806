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
	"github.com/spf13/cobra"
)

var listPattern string

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), config)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.conn.ListDatabases(cmd.Context(), listPattern)
		if err != nil {
			return err
		}
		defer res.Free()
		return printResult(cmd.OutOrStdout(), res, FormatTable)
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables [database]",
	Short: "List tables of a database (default: the connected one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), config)
		if err != nil {
			return err
		}
		defer s.Close()

		db := ""
		if len(args) == 1 {
			db = args[0]
		}
		res, err := s.conn.ListTables(cmd.Context(), db, listPattern)
		if err != nil {
			return err
		}
		defer res.Free()
		return printResult(cmd.OutOrStdout(), res, FormatTable)
	},
}

func init() {
	for _, c := range []*cobra.Command{databasesCmd, tablesCmd} {
		c.Flags().StringVar(&listPattern, "like", "", "SQL LIKE pattern to filter names")
		rootCmd.AddCommand(c)
	}
}
