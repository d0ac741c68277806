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
	"slices"
	"strconv"
)

// Well-known option keys understood by the built-in drivers.
const (
	OptionHost     = "host"
	OptionPort     = "port"
	OptionUsername = "username"
	OptionPassword = "password"
	OptionDBName   = "dbname"
	OptionEncoding = "encoding"
	OptionTimeout  = "timeout"
)

type optionValue struct {
	str     string
	num     int
	numeric bool
}

// Options is an ordered key to string-or-number map configuring a connection.
// Keys are kept in first-set order.
type Options struct {
	keys   []string
	values map[string]optionValue
}

// NewOptions creates an empty option set.
func NewOptions() *Options {
	return &Options{values: make(map[string]optionValue)}
}

func (o *Options) put(key string, v optionValue) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Set stores a string option.
func (o *Options) Set(key, value string) {
	o.put(key, optionValue{str: value})
}

// SetNumeric stores a numeric option.
func (o *Options) SetNumeric(key string, value int) {
	o.put(key, optionValue{num: value, numeric: true})
}

// Has reports whether key is set.
func (o *Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// IsNumeric reports whether key holds a numeric option.
func (o *Options) IsNumeric(key string) bool {
	return o.values[key].numeric
}

// String returns the option as a string. Numeric options are formatted.
func (o *Options) String(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	if v.numeric {
		return strconv.Itoa(v.num), true
	}
	return v.str, true
}

// StringOr returns the option as a string, or def when unset or empty.
func (o *Options) StringOr(key, def string) string {
	if s, ok := o.String(key); ok && s != "" {
		return s
	}
	return def
}

// Int returns the option as a number. String options are parsed; a string that
// is not a number reports false.
func (o *Options) Int(key string) (int, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	if v.numeric {
		return v.num, true
	}
	n, err := strconv.Atoi(v.str)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IntOr returns the option as a number, or def when unset or not numeric.
func (o *Options) IntOr(key string, def int) int {
	if n, ok := o.Int(key); ok {
		return n
	}
	return def
}

// Keys returns the option keys in the order they were first set.
func (o *Options) Keys() []string {
	return slices.Clone(o.keys)
}

// Clear removes one option.
func (o *Options) Clear(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Reset removes every option.
func (o *Options) Reset() {
	o.keys = nil
	o.values = make(map[string]optionValue)
}

// Clone returns an independent copy.
func (o *Options) Clone() *Options {
	c := NewOptions()
	for _, k := range o.keys {
		c.put(k, o.values[k])
	}
	return c
}
