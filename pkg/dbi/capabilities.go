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

// Capabilities describes what a driver supports.
type Capabilities struct {
	// RandomAccess reports whether any row may be fetched in any order.
	// Cursor-only drivers fetch strictly forward.
	RandomAccess bool

	// MultipleResults reports whether several Results may be driven
	// concurrently against one session.
	MultipleResults bool

	// SupportsTransactions is informational; the client layer never issues
	// transaction statements itself.
	SupportsTransactions bool

	// SupportsSequences reports whether NextSequence is implemented.
	SupportsSequences bool

	// Features lists driver-specific feature flags
	Features map[string]bool

	// Limits contains driver-specific limits. Conn enforces
	// LimitMaxQuerySize before a statement reaches the driver; the others
	// are informational.
	Limits map[string]int64
}

// NewCapabilities creates a new Capabilities instance with default values.
func NewCapabilities() *Capabilities {
	return &Capabilities{
		RandomAccess:    true,
		MultipleResults: true,
		Features:        make(map[string]bool),
		Limits:          make(map[string]int64),
	}
}

// WithRandomAccess sets random row access support.
func (c *Capabilities) WithRandomAccess(supported bool) *Capabilities {
	c.RandomAccess = supported
	return c
}

// WithMultipleResults sets whether results can be interleaved on one session.
func (c *Capabilities) WithMultipleResults(supported bool) *Capabilities {
	c.MultipleResults = supported
	return c
}

// WithTransactions sets transaction support.
func (c *Capabilities) WithTransactions(supported bool) *Capabilities {
	c.SupportsTransactions = supported
	return c
}

// WithSequences sets sequence support.
func (c *Capabilities) WithSequences(supported bool) *Capabilities {
	c.SupportsSequences = supported
	return c
}

// WithFeature sets a driver-specific feature flag.
func (c *Capabilities) WithFeature(name string, enabled bool) *Capabilities {
	c.Features[name] = enabled
	return c
}

// WithLimit sets a driver-specific limit.
func (c *Capabilities) WithLimit(name string, value int64) *Capabilities {
	c.Limits[name] = value
	return c
}

// HasFeature checks if a feature is enabled.
func (c *Capabilities) HasFeature(name string) bool {
	enabled, ok := c.Features[name]
	return ok && enabled
}

// GetLimit retrieves a driver-specific limit.
func (c *Capabilities) GetLimit(name string) (int64, bool) {
	limit, ok := c.Limits[name]
	return limit, ok
}

// Common feature flags
const (
	FeatureQuoteString    = "quote_string"
	FeatureListDatabases  = "list_databases"
	FeatureSelectDB       = "select_db"
	FeatureEncryption     = "encryption"
	FeatureNativeDatetime = "native_datetime"
	FeatureSafeUnload     = "safe_unload"
)

// Common limits
const (
	// LimitMaxFieldNameLength is the longest identifier the engine keeps;
	// longer names are truncated by the server.
	LimitMaxFieldNameLength = "max_field_name_length"
	// LimitMaxQuerySize is the largest statement in bytes.
	LimitMaxQuerySize = "max_query_size"
)
