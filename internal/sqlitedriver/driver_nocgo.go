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
//go:build !cgo

package sqlitedriver

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

func init() {
	sql.Register(DriverName, &sqlite.Driver{})
}

// EncryptionSupported indicates whether the active SQLite driver supports
// SQLCipher encryption (PRAGMA key). False when built without CGO.
const EncryptionSupported = false

// DSN returns the open string for the database file at path. Encryption keys
// are rejected because this build cannot honor them.
func DSN(path, key string) (string, error) {
	if key != "" {
		return "", errors.New("sqlite encryption requires a cgo build")
	}
	params := []string{fmt.Sprintf("_pragma=busy_timeout(%d)", DefaultBusyTimeoutMs)}
	return joinParams(path, params), nil
}

// ErrorCode returns the primary SQLite result code carried by err.
func ErrorCode(err error) (int, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		// Extended codes keep the primary code in the low byte.
		return se.Code() & 0xff, true
	}
	return 0, false
}
