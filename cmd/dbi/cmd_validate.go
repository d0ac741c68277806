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
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	dbiconfig "github.com/teradata-labs/dbi/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate connection profiles",
	Long: `Validate connection profile files. Directories are searched
recursively for .yaml and .yml files. Without arguments the profiles
directory ($DBI_DATA_DIR/profiles) is validated.

Examples:
  dbi validate shop.yaml
  dbi validate ~/.dbi/profiles`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{dbiconfig.ProfilesDir()}
		}
		var paths []string
		for _, arg := range args {
			found, err := profileFiles(arg)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}

		failed := 0
		for _, path := range paths {
			p, err := dbiconfig.LoadProfile(path)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok    %s (%s, driver %s)\n", path, p.Name, p.Driver)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d profile(s) invalid", failed, len(paths))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// profileFiles returns path itself, or the YAML files below it when path is
// a directory.
func profileFiles(path string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if p == path || strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return files, nil
}
