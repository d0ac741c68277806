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
// Package mysql is the dbi driver for MySQL and MariaDB servers, built on
// github.com/go-sql-driver/mysql.
//
// Options:
//
//	host, port, username, password, dbname, encoding, timeout
//	mysql_unix_socket   connect through a unix socket instead of TCP
//	mysql_tls           "true", "skip-verify", "preferred" or a registered TLS config
//	mysql_compression   "1" to request protocol compression
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlbridge"
)

// Name is the registry name of the driver.
const Name = "mysql"

// DefaultPort is used when the port option is unset.
const DefaultPort = 3306

// Driver-specific option keys.
const (
	OptionUnixSocket  = "mysql_unix_socket"
	OptionTLS         = "mysql_tls"
	OptionCompression = "mysql_compression"
)

// Dialect describes MySQL to the database/sql bridge.
type Dialect struct{}

var (
	_ sqlbridge.Dialect          = Dialect{}
	_ sqlbridge.DatabaseLister   = Dialect{}
	_ sqlbridge.TableLister      = Dialect{}
	_ sqlbridge.DatabaseSelector = Dialect{}
	_ sqlbridge.Sequencer        = Dialect{}
)

// New returns the mysql driver.
func New() *sqlbridge.Driver {
	return sqlbridge.New(Dialect{})
}

func (Dialect) Info() dbi.DriverInfo {
	return dbi.DriverInfo{
		Name:        Name,
		Description: "MySQL and MariaDB servers",
		Maintainer:  "Teradata",
		URL:         "https://github.com/go-sql-driver/mysql",
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
		WithFeature(dbi.FeatureSafeUnload, true).
		WithLimit(dbi.LimitMaxFieldNameLength, 64)
}

func (Dialect) SQLDriver() string { return "mysql" }

// DSN builds a go-sql-driver DSN. Text protocol values are left unparsed so
// datetimes go through dbi.ParseDatetime.
func (Dialect) DSN(opts *dbi.Options) (string, error) {
	cfg := gomysql.NewConfig()
	cfg.User = opts.StringOr(dbi.OptionUsername, "")
	cfg.Passwd = opts.StringOr(dbi.OptionPassword, "")
	cfg.DBName = opts.StringOr(dbi.OptionDBName, "")
	cfg.ParseTime = false

	if sock := opts.StringOr(OptionUnixSocket, ""); sock != "" {
		cfg.Net = "unix"
		cfg.Addr = sock
	} else {
		port := opts.IntOr(dbi.OptionPort, DefaultPort)
		if port <= 0 || port > 65535 {
			return "", fmt.Errorf("mysql: invalid port %d", port)
		}
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(opts.StringOr(dbi.OptionHost, "localhost"), strconv.Itoa(port))
	}

	if secs := opts.IntOr(dbi.OptionTimeout, 0); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if tls := opts.StringOr(OptionTLS, ""); tls != "" {
		cfg.TLSConfig = tls
	}
	params := map[string]string{}
	if enc := opts.StringOr(dbi.OptionEncoding, ""); enc != "" && !strings.EqualFold(enc, "auto") {
		params["charset"] = mysqlCharset(enc)
	}
	if opts.StringOr(OptionCompression, "") == "1" {
		params["compress"] = "true"
	}
	if len(params) > 0 {
		cfg.Params = params
	}
	return cfg.FormatDSN(), nil
}

// mysqlCharset maps IANA encoding names to MySQL charset names.
func mysqlCharset(enc string) string {
	switch strings.ToUpper(enc) {
	case "UTF-8", "UTF8":
		return "utf8mb4"
	case "ISO-8859-1", "LATIN1":
		return "latin1"
	case "US-ASCII", "ASCII":
		return "ascii"
	default:
		return enc
	}
}

func (Dialect) ColumnField(ct *sql.ColumnType, sample any) dbi.Field {
	f := FieldForType(ct.DatabaseTypeName())
	f.Name = ct.Name()
	return f
}

// FieldForType maps a go-sql-driver database type name.
func FieldForType(name string) dbi.Field {
	n := strings.ToUpper(name)
	var unsigned dbi.Attribute
	if rest, ok := strings.CutPrefix(n, "UNSIGNED "); ok {
		unsigned = dbi.AttrUnsigned
		n = rest
	}
	switch n {
	case "TINYINT":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize1 | unsigned}
	case "SMALLINT", "YEAR":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize2 | unsigned}
	case "MEDIUMINT":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize3 | unsigned}
	case "INT":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize4 | unsigned}
	case "BIGINT":
		return dbi.Field{Type: dbi.TypeInteger, Attrs: dbi.AttrIntSize8 | unsigned}
	case "FLOAT":
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize4}
	case "DOUBLE":
		return dbi.Field{Type: dbi.TypeDecimal, Attrs: dbi.AttrDecSize8}
	case "DATE":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate}
	case "TIME":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrTime}
	case "DATETIME", "TIMESTAMP":
		return dbi.Field{Type: dbi.TypeDatetime, Attrs: dbi.AttrDate | dbi.AttrTime}
	case "ENUM":
		return dbi.Field{Type: dbi.TypeEnum}
	case "SET":
		return dbi.Field{Type: dbi.TypeSet}
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BINARY", "VARBINARY", "BIT", "GEOMETRY":
		return dbi.Field{Type: dbi.TypeBinary}
	default:
		// DECIMAL keeps its exact text; CHAR, VARCHAR, TEXT and JSON are strings.
		return dbi.Field{Type: dbi.TypeString}
	}
}

// QuoteString escapes with backslashes the way mysql_real_escape_string does.
func (Dialect) QuoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case 0x1a:
			b.WriteString(`\Z`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func (Dialect) ErrorCode(err error) (int, string, bool) {
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		return int(me.Number), string(me.SQLState[:]), true
	}
	return 0, "", false
}

func (Dialect) VersionQuery() string {
	return "SELECT VERSION()"
}

func (d Dialect) ListDatabases(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	stmt := "SHOW DATABASES"
	if pattern != "" {
		stmt += " LIKE " + d.QuoteString(pattern)
	}
	return s.QueryStrings(ctx, stmt)
}

func (d Dialect) ListTables(ctx context.Context, s *sqlbridge.Session, pattern string) ([]string, error) {
	stmt := "SHOW TABLES"
	if pattern != "" {
		stmt += " LIKE " + d.QuoteString(pattern)
	}
	return s.QueryStrings(ctx, stmt)
}

func (Dialect) SelectDB(ctx context.Context, s *sqlbridge.Session, db string) (string, error) {
	if err := s.Exec(ctx, "USE "+QuoteIdentifier(db)); err != nil {
		return "", err
	}
	return db, nil
}

// QuoteIdentifier quotes a database or table name with backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// LastInsertSequence returns LAST_INSERT_ID(). MySQL has no named sequences;
// name is ignored.
func (Dialect) LastInsertSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	return s.QueryUint(ctx, "SELECT LAST_INSERT_ID()")
}

func (Dialect) NextSequence(ctx context.Context, s *sqlbridge.Session, name string) (uint64, error) {
	return 0, &dbi.Error{Kind: dbi.KindUnsupported, Message: "mysql has no sequences"}
}
