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
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// profileSchema catches misspelled keys and mistyped values that the
// struct decoder silently ignores.
const profileSchema = `{
  "type": "object",
  "required": ["apiVersion", "kind", "name", "driver"],
  "additionalProperties": false,
  "properties": {
    "apiVersion": {"type": "string"},
    "kind": {"type": "string"},
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "driver": {"type": "string", "minLength": 1},
    "connection": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "host": {"type": "string"},
        "port": {"type": "integer", "minimum": 0, "maximum": 65535},
        "username": {"type": "string"},
        "password": {"type": "string"},
        "database": {"type": "string"},
        "encoding": {"type": "string"},
        "timeout_seconds": {"type": "integer", "minimum": 0}
      }
    },
    "options": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number", "boolean"]}
    }
  }
}`

var profileSchemaLoader = gojsonschema.NewStringLoader(profileSchema)

// validateProfileSchema checks the raw document against profileSchema.
func validateProfileSchema(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse profile YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(profileSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, e := range result.Errors() {
		msgs[i] = e.String()
	}
	return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
}
