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
	"errors"
	"sync"
	"testing"
)

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(newStubDriver()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, ok := reg.Get("stub"); !ok {
		t.Error("Expected driver to be registered")
	}
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(nil); !errors.Is(err, ErrBadPointer) {
		t.Errorf("Expected ErrBadPointer, got %v", err)
	}

	unnamed := newStubDriver()
	unnamed.name = ""
	if err := reg.Register(unnamed); !errors.Is(err, ErrBadName) {
		t.Errorf("Expected ErrBadName, got %v", err)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	first := newStubDriver()
	if err := reg.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := reg.Register(newStubDriver()); !errors.Is(err, ErrBadName) {
		t.Errorf("Expected ErrBadName for duplicate, got %v", err)
	}
	if d, _ := reg.Get("stub"); d != first {
		t.Error("Expected the first driver to stay registered")
	}

	reg.Unregister("stub")
	if err := reg.Register(newStubDriver()); err != nil {
		t.Errorf("Expected register after unregister to succeed, got %v", err)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newStubDriver())

	if _, err := reg.Lookup("stub"); err != nil {
		t.Errorf("Expected stub driver, got %v", err)
	}
	if _, err := reg.Lookup("oracle"); !errors.Is(err, ErrBadName) {
		t.Errorf("Expected ErrBadName, got %v", err)
	}
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"pgsql", "mysql", "sqlite3"} {
		d := newStubDriver()
		d.name = name
		_ = reg.Register(d)
	}

	names := reg.List()
	want := []string{"mysql", "pgsql", "sqlite3"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d drivers, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
	if got := reg.String(); got != "Registry[mysql pgsql sqlite3]" {
		t.Errorf("String() = %s", got)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newStubDriver())
	reg.Unregister("stub")

	if _, ok := reg.Get("stub"); ok {
		t.Error("Expected driver to be removed")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = reg.Register(newStubDriver())
			_ = reg.List()
			_, _ = reg.Get("stub")
		}()
	}
	wg.Wait()

	if len(reg.List()) != 1 {
		t.Errorf("Expected 1 driver, got %d", len(reg.List()))
	}
}
