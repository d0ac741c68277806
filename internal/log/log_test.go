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
package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debug("opened", zap.String("driver", "sqlite3"))
	Warn("close failed")

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "opened", entries[0].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)

	SetLogger(nil)
	assert.NotNil(t, Logger())
	assert.NoError(t, Sync())
}
