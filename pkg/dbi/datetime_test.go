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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		attrs Attribute
		want  int64
	}{
		{"datetime", "2004-03-01 12:30:45", AttrDate | AttrTime, 1078144245},
		{"datetime with T", "2004-03-01T12:30:45", AttrDate | AttrTime, 1078144245},
		{"datetime without attrs", "2004-03-01 12:30:45", 0, 1078144245},
		{"fraction dropped", "2004-03-01 12:30:45.123456", AttrDate | AttrTime, 1078144245},
		{"offset", "2004-03-01 14:30:45+02", AttrDate | AttrTime, 1078144245},
		{"offset with minutes", "2004-03-01 07:00:45-05:30", AttrDate | AttrTime, 1078144245},
		{"utc suffix", "2004-03-01T12:30:45Z", AttrDate | AttrTime, 1078144245},
		{"date only", "2004-03-01", AttrDate, 1078099200},
		{"datetime carrying only a date", "2004-03-01", AttrDate | AttrTime, 1078099200},
		{"time only", "12:30:45", AttrTime, 45045},
		{"time with fraction", "00:00:01.5", AttrTime, 1},
		{"time offset before midnight", "00:30:00+02", AttrTime, 81000},
		{"time offset past midnight", "23:30:00-02", AttrTime, 5400},
		{"datetime offset crossing midnight", "2004-03-01 00:30:00+02", AttrDate | AttrTime, 1078093800},
		{"zero date", "0000-00-00 00:00:00", AttrDate | AttrTime, 0},
		{"empty", "", AttrDate, 0},
		{"epoch", "1970-01-01 00:00:00", AttrDate | AttrTime, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatetime(tt.raw, tt.attrs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	east := time.FixedZone("east", 2*3600)
	assert.Equal(t, int64(81000), TimeOfDay(time.Date(2004, 3, 1, 0, 30, 0, 0, east)))
	assert.Equal(t, int64(45045), TimeOfDay(time.Date(2004, 3, 1, 12, 30, 45, 0, time.UTC)))
}

func TestParseDatetime_Invalid(t *testing.T) {
	for _, raw := range []string{"yesterday", "2004-13-01", "2004-03-01 25:00:00", "12:30"} {
		_, err := ParseDatetime(raw, AttrDate)
		assert.ErrorIs(t, err, ErrBadType, raw)
	}
	_, err := ParseDatetime("noon", AttrTime)
	assert.ErrorIs(t, err, ErrBadType)
}

func TestFormatDatetime(t *testing.T) {
	assert.Equal(t, "2004-03-01 12:30:45", FormatDatetime(1078144245, AttrDate|AttrTime))
	assert.Equal(t, "2004-03-01", FormatDatetime(1078144245, AttrDate))
	assert.Equal(t, "12:30:45", FormatDatetime(1078144245, AttrTime))
	assert.Equal(t, "1970-01-01 00:00:00", FormatDatetime(0, 0))
}
