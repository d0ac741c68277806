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
//go:build cgo

package sqlitedriver

import (
	"errors"
	"fmt"
	"net/url"

	sqlite3 "github.com/mutecomm/go-sqlcipher/v4" // registers "sqlite3" driver with encryption
)

// EncryptionSupported indicates whether the active SQLite driver supports
// SQLCipher encryption (PRAGMA key). True when built with CGO.
const EncryptionSupported = true

// DSN returns the open string for the database file at path. A non-empty key
// opens the file with SQLCipher.
func DSN(path, key string) (string, error) {
	params := []string{fmt.Sprintf("_busy_timeout=%d", DefaultBusyTimeoutMs)}
	if key != "" {
		params = append(params, "_pragma_key="+url.QueryEscape(key))
	}
	return joinParams(path, params), nil
}

// ErrorCode returns the primary SQLite result code carried by err.
func ErrorCode(err error) (int, bool) {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return int(se.Code), true
	}
	var sp *sqlite3.Error
	if errors.As(err, &sp) && sp != nil {
		return int(sp.Code), true
	}
	return 0, false
}
