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
	"fmt"
	"sort"
	"sync"
)

// Registry manages the drivers known to an Instance.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewRegistry creates a new, empty driver registry.
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Driver),
	}
}

// Register adds a driver under Info().Name. A name can be registered once;
// Unregister it first to swap implementations.
func (r *Registry) Register(d Driver) error {
	if d == nil {
		return newError(KindBadPointer, "nil driver")
	}
	name := d.Info().Name
	if name == "" {
		return newError(KindBadName, "driver has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.drivers[name]; exists {
		return newError(KindBadName, "driver already registered: %s", name)
	}
	r.drivers[name] = d
	return nil
}

// Get retrieves a driver by name.
func (r *Registry) Get(name string) (Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[name]
	return d, ok
}

// Lookup is Get with an error for unknown names.
func (r *Registry) Lookup(name string) (Driver, error) {
	d, ok := r.Get(name)
	if !ok {
		return nil, newError(KindBadName, "driver not registered: %s", name)
	}
	return d, nil
}

// List returns all registered driver names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns the DriverInfo of every registered driver, sorted by name.
func (r *Registry) Infos() []DriverInfo {
	names := r.List()
	infos := make([]DriverInfo, 0, len(names))
	for _, name := range names {
		if d, ok := r.Get(name); ok {
			infos = append(infos, d.Info())
		}
	}
	return infos
}

// Unregister removes a driver from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drivers, name)
}

// String implements fmt.Stringer for log output.
func (r *Registry) String() string {
	return fmt.Sprintf("Registry%v", r.List())
}
