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
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns the dbi data directory.
//
// Priority:
// 1. DBI_DATA_DIR environment variable (if set and non-empty)
// 2. ~/.dbi (default)
//
// The returned path is always absolute unless the home directory cannot be
// determined. Tilde (~) in DBI_DATA_DIR is expanded to the user's home directory.
func DataDir() string {
	if dataDir := os.Getenv("DBI_DATA_DIR"); dataDir != "" {
		return expandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".dbi"
	}
	return filepath.Join(homeDir, ".dbi")
}

// ProfilesDir returns the directory searched for named connection profiles.
func ProfilesDir() string {
	return filepath.Join(DataDir(), "profiles")
}

// expandPath expands ~ and resolves to absolute path
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
