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
// Package sqlite3 is the dbi driver for SQLite database files.
//
// Options:
//
//	dbname          file name inside sqlite3_dbdir, or ":memory:"
//	sqlite3_dbdir   directory holding the database files (default ".")
//	sqlite3_key     SQLCipher key; requires a cgo build
//	timeout         connect timeout in seconds
//
// Listing databases scans sqlite3_dbdir for files carrying the SQLite header.
package sqlite3

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teradata-labs/dbi/internal/sqlitedriver"
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlbridge"
)

// Name is the registry name of the driver.
const Name = "sqlite3"

// Driver-specific option keys.
const (
	OptionDBDir = "sqlite3_dbdir"
	OptionKey   = "sqlite3_key"
)

// MemoryDB is the dbname selecting a private in-memory database.
const MemoryDB = ":memory:"

var sqliteHeader = []byte("SQLite format 3\x00")

// Dialect describes SQLite to the database/sql bridge.
type Dialect struct{}

var (
	_ sqlbridge.Dialect        = Dialect{}
	_ sqlbridge.DatabaseLister = Dialect{}
	_ sqlbridge.TableLister    = Dialect{}
	_ sqlbridge.Sequencer      = Dialect{}
)

// New returns the sqlite3 driver.
func New() *sqlbridge.Driver {
	return sqlbridge.New(Dialect{})
}

func (Dialect) Info() dbi.DriverInfo {
	return dbi.DriverInfo{
		Name:        Name,
		Description: "SQLite 3 database files",
		Maintainer:  "Teradata",
		URL:         "https://www.sqlite.org",
		Version:     "1.0.0",
	}
}

func (Dialect) Capabilities() *dbi.Capabilities {
	return dbi.NewCapabilities().
		WithTransactions(true).
		WithSequences(false).
		WithFeature(dbi.FeatureQuoteString, true).
		WithFeature(dbi.FeatureListDatabases, true).
		WithFeature(dbi.FeatureSelectDB, true).
		WithFeature(dbi.FeatureEncryption, sqlitedriver.EncryptionSupported).
		WithFeature(dbi.FeatureSafeUnload, true)
}

func (Dialect) SQLDriver() string { return sqlitedriver.DriverName }

// DSN resolves dbname against sqlite3_dbdir. A missing dbname opens an
// in-memory database.
func (Dialect) DSN(opts *dbi.Options) (string, error) {
	name := opts.StringOr(dbi.OptionDBName, MemoryDB)
	if name == MemoryDB {
		return sqlitedriver.DSN(MemoryDB, opts.StringOr(OptionKey, ""))
	}
	if strings.ContainsRune(name, os.PathSeparator) && !filepath.IsAbs(name) {
		return "", fmt.Errorf("sqlite3: dbname %q must be a plain file name", name)
	}
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(opts.StringOr(OptionDBDir, "."), name)
	}
	return sqlitedriver.DSN(path, opts.StringOr(OptionKey, ""))
}

// ColumnField maps SQLite declared types by affinity. Columns without a
// declared type take their type from the first non-NULL value.
func (Dialect) ColumnField(ct *sql.ColumnType, sample any) dbi.Field {
	f := FieldForDecl(ct.DatabaseTypeName())
	if f.Type == dbi.TypeUnknown {
		f = fieldForSample(sample)
	}
	f.Name = ct.Name()
	return f
}

// FieldForDecl maps a declared column type. An empty declaration returns a
// field of TypeUnknown.
func FieldForDecl(decl string) dbi.Field {
	d := strings.ToUpper(strings.TrimSpace(decl))
	if i := strings.IndexByte(d, '('); i >= 0 {
		d = strings.TrimSpace(d[:i])
	}
	unsigned := dbi.Attribute(0)
	if strings.Contains(d, "UNSIGNED") {
		unsigned = dbi.AttrUnsigned
		d = strings.TrimSpace(strings.ReplaceAll(d, "UNSIGNED", ""))
	}

	switch d {
	case "":
		return dbi.Field{}
	case "TINYINT", "BOOL", "BOOLEAN":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1 | unsigned}
	case "SMALLINT", "INT2":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize2 | unsigned}
	case "MEDIUMINT":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize3 | unsigned}
	case "FLOAT":
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}
	case "DATE":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}
	case "TIME":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}
	case "DATETIME", "TIMESTAMP":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}
	case "DECIMAL", "NUMERIC":
		return dbi.Field{Type: dbi.TypeString}
	}

	switch {
	case strings.Contains(d, "INT"):
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8 | unsigned}
	case strings.Contains(d, "CHAR"), strings.Contains(d, "CLOB"), strings.Contains(d, "TEXT"):
		return dbi.Field{Type: dbi.TypeString}
	case strings.Contains(d, "BLOB"):
		return dbi.Field{Type: dbi.TypeBinary}
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}
	}
	return dbi.Field{Type: dbi.TypeString}
}

func fieldForSample(sample any) dbi.Field {
	switch sample.(type) {
	case int64, int32, int, bool:
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8}
	case float64, float32:
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}
	case []byte:
		return dbi.Field{Type: dbi.TypeBinary}
	default:
		return dbi.Field{Type: dbi.TypeString}
	}
}

func (Dialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (Dialect) ErrorCode(err error) (int, string, bool) {
	code, ok := sqlitedriver.ErrorCode(err)
	return code, "", ok
}

func (Dialect) VersionQuery() string {
	return "SELECT sqlite_version()"
}

// ListDatabases returns the SQLite files in sqlite3_dbdir matching pattern.
func (Dialect) ListDatabases(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	return ScanDir(s.Options().StringOr(OptionDBDir, "."), pattern)
}

// ScanDir lists the regular files in dir that start with the SQLite header
// and whose names match the LIKE pattern.
func ScanDir(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sqlite3: scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !sqlbridge.MatchLike(pattern, e.Name()) {
			continue
		}
		if isDatabaseFile(filepath.Join(dir, e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDatabaseFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, sqliteHeader)
}

func (Dialect) ListTables(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	names, err := s.QueryStrings(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite\\_%' ESCAPE '\\' ORDER BY name")
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if sqlbridge.MatchLike(pattern, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// LastInsertSequence returns the rowid of the most recent insert. SQLite has
// no named sequences, so name is ignored.
func (Dialect) LastInsertSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	return s.QueryUint(ctx, "SELECT last_insert_rowid()")
}

func (d Dialect) NextSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	return 0, &dbi.Error{Kind: dbi.KindUnsupported, Message: "sqlite3 has no sequences"}
}
