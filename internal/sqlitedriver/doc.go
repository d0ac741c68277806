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
// Package sqlitedriver registers a SQLite database/sql driver under the name
// "sqlite3" and hides the differences between the two builds. With CGO it
// uses go-sqlcipher, which supports SQLCipher encryption keys. Without CGO it
// falls back to the pure-Go modernc.org/sqlite driver, which has no
// encryption.
//
// DSN builds an open string understood by whichever driver is active, and
// ErrorCode extracts the SQLite result code from a driver error.
package sqlitedriver

import "strings"

// DriverName is the database/sql name both builds register.
const DriverName = "sqlite3"

// DefaultBusyTimeoutMs is applied to every DSN built here.
const DefaultBusyTimeoutMs = 5000

func joinParams(path string, params []string) string {
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}
