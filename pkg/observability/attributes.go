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
package observability

// Span names.
const (
	SpanConnect       = "dbi.connect"
	SpanQuery         = "dbi.query"
	SpanSelectDB      = "dbi.select_db"
	SpanListDatabases = "dbi.list_databases"
	SpanListTables    = "dbi.list_tables"
	SpanPing          = "dbi.ping"
	SpanSequence      = "dbi.sequence"
)

// Span attribute keys.
const (
	AttrDriver       = "db.driver"
	AttrDatabase     = "db.name"
	AttrStatement    = "db.statement"
	AttrStatementLen = "db.statement.length"
	AttrPattern      = "db.pattern"
	AttrRowCount     = "db.row_count"
	AttrFieldCount   = "db.field_count"
	AttrRowsAffected = "db.rows_affected"
	AttrErrorMessage = "error.message"
	AttrErrorCode    = "error.code"
)

// Metric names.
const (
	MetricQueries       = "dbi.queries.total"
	MetricErrors        = "dbi.errors.total"
	MetricQueryDuration = "dbi.query.duration"
)
