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

// Package dbi is a database-independent client layer.
//
// Calling code opens a Conn against a named driver, issues SQL and reads typed
// columns from the returned Result without engine-specific code. Drivers
// translate engine-native result sets into the common value model defined here
// (FieldType, Attribute, Value, Row) and are plugged in through the Driver,
// ConnHandle and QueryHandle interfaces.
//
// Rows are fetched lazily: a Result starts with an empty row table sized to the
// matched row count and each row is materialized from the driver the first time
// the cursor is moved onto it. Cached rows are served without driver calls.
//
// Ownership is strict: an Instance owns its Conns, a Conn owns every Result it
// produced, and a Result owns its Rows and their byte buffers. Closing a Conn
// frees every Result still registered to it.
//
// Example:
//
//	inst := dbi.NewInstance(dbi.WithLogger(logger))
//	if err := all.Register(inst, tracer); err != nil {
//		return err
//	}
//
//	conn, err := inst.NewConn("sqlite3")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//	conn.SetOption("sqlite3_dbdir", dir)
//	conn.SetOption("dbname", "app.db")
//	if err := conn.Connect(ctx); err != nil {
//		return err
//	}
//
//	res, err := conn.Query(ctx, "SELECT id, name FROM users")
//	if err != nil {
//		return err
//	}
//	defer res.Free()
//
//	var id int64
//	var name string
//	res.BindFields("id.%L name.%S", &id, &name)
//	for res.HasNext() {
//		if err := res.Next(); err != nil {
//			return err
//		}
//		fmt.Println(id, name)
//	}
package dbi
