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
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	datetimeLayout = dateLayout + " " + timeLayout

	secondsPerDay = 24 * 60 * 60
)

// Accepted time-of-day forms, most specific first. Fractions are parsed and
// dropped; offsets shift the value to UTC.
var timeLayouts = []string{
	"15:04:05.999999999Z07:00",
	"15:04:05.999999999-0700",
	"15:04:05.999999999-07",
	"15:04:05.999999999",
	"15:04:05Z07:00",
	"15:04:05-0700",
	"15:04:05-07",
	"15:04:05",
	"15:04",
}

// ParseDatetime converts engine text to seconds since the Unix epoch in UTC.
// attrs selects the expected shape: AttrDate alone parses "YYYY-MM-DD",
// AttrTime alone parses a time of day on 1970-01-01, wrapped into
// [0, 86400) when an offset crosses midnight, and both (or neither)
// parse a full datetime, separated by a space or 'T'. A full datetime that
// carries only a date is accepted. The MySQL zero date reads as 0.
func ParseDatetime(raw string, attrs Attribute) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return 0, nil
	}

	kind := Isolate(attrs, AttrDate, AttrTime)
	switch kind {
	case AttrDate:
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return 0, newError(KindBadType, "invalid date %q", raw)
		}
		return t.Unix(), nil
	case AttrTime:
		secs, ok := parseTimeOfDay(s)
		if !ok {
			return 0, newError(KindBadType, "invalid time %q", raw)
		}
		return wrapDay(secs), nil
	}

	date, rest, found := strings.Cut(s, " ")
	if !found {
		date, rest, found = strings.Cut(s, "T")
	}
	d, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return 0, newError(KindBadType, "invalid datetime %q", raw)
	}
	if !found {
		return d.Unix(), nil
	}
	secs, ok := parseTimeOfDay(strings.TrimSpace(rest))
	if !ok {
		return 0, newError(KindBadType, "invalid datetime %q", raw)
	}
	return d.Unix() + secs, nil
}

// parseTimeOfDay returns seconds since midnight UTC, applying any offset.
func parseTimeOfDay(s string) (int64, bool) {
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		_, offset := t.Zone()
		secs := int64(t.Hour()*3600+t.Minute()*60+t.Second()) - int64(offset)
		return secs, true
	}
	return 0, false
}

// TimeOfDay returns the seconds since midnight UTC of t, in [0, 86400).
func TimeOfDay(t time.Time) int64 {
	u := t.UTC()
	return int64(u.Hour()*3600 + u.Minute()*60 + u.Second())
}

func wrapDay(secs int64) int64 {
	secs %= secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return secs
}

// FormatDatetime renders epoch seconds in the shape selected by attrs.
func FormatDatetime(epoch int64, attrs Attribute) string {
	t := time.Unix(epoch, 0).UTC()
	switch Isolate(attrs, AttrDate, AttrTime) {
	case AttrDate:
		return t.Format(dateLayout)
	case AttrTime:
		return t.Format(timeLayout)
	default:
		return t.Format(datetimeLayout)
	}
}
