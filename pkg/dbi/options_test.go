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
package dbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	o := NewOptions()
	o.Set(OptionHost, "localhost")
	o.SetNumeric(OptionPort, 5432)
	o.Set(OptionHost, "db")
	o.Set("sslmode", "")

	assert.Equal(t, []string{OptionHost, OptionPort, "sslmode"}, o.Keys())
	assert.True(t, o.IsNumeric(OptionPort))
	assert.False(t, o.IsNumeric(OptionHost))
	assert.Equal(t, "db", o.StringOr(OptionHost, "x"))
	assert.Equal(t, "disable", o.StringOr("sslmode", "disable"))
	assert.Equal(t, 5432, o.IntOr(OptionPort, 1))
	assert.Equal(t, 7, o.IntOr(OptionHost, 7))
	assert.Equal(t, 7, o.IntOr("unset", 7))

	c := o.Clone()
	c.Set(OptionHost, "other")
	c.Clear(OptionPort)
	assert.Equal(t, "db", o.StringOr(OptionHost, ""))
	assert.True(t, o.Has(OptionPort))
	assert.False(t, c.Has(OptionPort))
	assert.Equal(t, []string{OptionHost, "sslmode"}, c.Keys())

	o.Reset()
	assert.Empty(t, o.Keys())
	assert.False(t, o.Has(OptionHost))
}

func TestCapabilities(t *testing.T) {
	caps := NewCapabilities().
		WithRandomAccess(false).
		WithSequences(true).
		WithFeature(FeatureListDatabases, true).
		WithLimit(LimitMaxQuerySize, 1<<20)

	assert.False(t, caps.RandomAccess)
	assert.True(t, caps.MultipleResults)
	assert.True(t, caps.SupportsSequences)
	assert.True(t, caps.HasFeature(FeatureListDatabases))
	assert.False(t, caps.HasFeature(FeatureEncryption))

	limit, ok := caps.GetLimit(LimitMaxQuerySize)
	assert.True(t, ok)
	assert.Equal(t, int64(1<<20), limit)
	_, ok = caps.GetLimit(LimitMaxFieldNameLength)
	assert.False(t, ok)
}

func TestError(t *testing.T) {
	err := &Error{Kind: KindDriver, Code: 1064, State: "42000", Message: "syntax error"}
	assert.Equal(t, "dbi: driver error: syntax error [42000] (code 1064)", err.Error())
	assert.ErrorIs(t, err, ErrDriver)
	assert.NotErrorIs(t, err, ErrBadType)

	wrapped := driverError(&DriverFailure{Code: 7, State: "08006", Err: assert.AnError}, "ping")
	assert.Equal(t, 7, wrapped.Code)
	assert.Equal(t, "08006", wrapped.State)
	assert.ErrorIs(t, wrapped, assert.AnError)

	same := driverError(newError(KindBadIndex, "x"), "seek")
	assert.Equal(t, KindBadIndex, same.Kind)
	assert.Equal(t, "bad pointer", KindBadPointer.String())
}
