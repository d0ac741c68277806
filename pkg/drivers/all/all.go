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
// Package all registers every built-in driver with an instance.
package all

import (
	"github.com/teradata-labs/dbi/pkg/dbi"
	"github.com/teradata-labs/dbi/pkg/drivers/mysql"
	"github.com/teradata-labs/dbi/pkg/drivers/pgsql"
	"github.com/teradata-labs/dbi/pkg/drivers/pgx"
	"github.com/teradata-labs/dbi/pkg/drivers/sqlite3"
	"github.com/teradata-labs/dbi/pkg/observability"
)

// Drivers returns a fresh instance of each built-in driver. The tracer is
// handed to drivers that trace their own connection setup.
func Drivers(tracer observability.Tracer) []dbi.Driver {
	return []dbi.Driver{
		mysql.New(),
		pgsql.New(),
		pgx.New(pgx.WithTracer(tracer)),
		sqlite3.New(),
	}
}

// Register adds every built-in driver to inst.
func Register(inst *dbi.Instance, tracer observability.Tracer) error {
	for _, d := range Drivers(tracer) {
		if err := inst.Register(d); err != nil {
			return err
		}
	}
	return nil
}
