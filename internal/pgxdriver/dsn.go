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
package pgxdriver

import (
	"fmt"
	"strings"

	"github.com/teradata-labs/dbi/pkg/dbi"
)

// DefaultPort is used when the port option is unset.
const DefaultPort = 5432

// PostgreSQL option keys shared by both drivers.
const (
	// OptionDSN is a complete connection string; it overrides every other
	// connection option.
	OptionDSN = "pgsql_dsn"
	// OptionSSLMode is passed through as sslmode.
	OptionSSLMode = "sslmode"
	// OptionSchema sets the session search_path.
	OptionSchema = "pgsql_schema"
)

// BuildDSN builds a keyword/value connection string from opts. Unset
// options are left to the client library's defaults.
func BuildDSN(opts *dbi.Options) (string, error) {
	if dsn := opts.StringOr(OptionDSN, ""); dsn != "" {
		return dsn, nil
	}

	port := opts.IntOr(dbi.OptionPort, DefaultPort)
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("postgres: invalid port %d", port)
	}

	parts := []string{
		"host=" + dsnQuoteValue(opts.StringOr(dbi.OptionHost, "localhost")),
		fmt.Sprintf("port=%d", port),
	}
	add := func(key, val string) {
		if val != "" {
			parts = append(parts, key+"="+dsnQuoteValue(val))
		}
	}
	add("dbname", opts.StringOr(dbi.OptionDBName, ""))
	add("user", opts.StringOr(dbi.OptionUsername, ""))
	add("password", opts.StringOr(dbi.OptionPassword, ""))
	add("sslmode", opts.StringOr(OptionSSLMode, ""))
	add("search_path", opts.StringOr(OptionSchema, ""))
	if secs := opts.IntOr(dbi.OptionTimeout, 0); secs > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", secs))
	}
	return strings.Join(parts, " "), nil
}

func dsnQuoteValue(val string) string {
	// Escape backslashes and single quotes within the value.
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(val)
	return "'" + escaped + "'"
}
