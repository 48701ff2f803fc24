// Copyright QSoC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeEntity struct {
	Value   string `yaml:"value"`
	Library string `yaml:"-"`
}

func (f *fakeEntity) GetLibrary() string     { return f.Library }
func (f *fakeEntity) SetLibrary(lib string)  { f.Library = lib }

func writeLibraryFile(t *testing.T, dir, name, ext, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name+ext), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStoreLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeLibraryFile(t, dir, "libA", ".soc_x", "foo:\n  value: hello\nbar:\n  value: world\n")

	store := NewStore[*fakeEntity](dir, ".soc_x")

	if err := store.Load(Any()); err != nil {
		t.Fatal(err)
	}

	foo, ok := store.Get("foo")
	if !ok || foo.Value != "hello" {
		t.Fatalf("Get(foo) = %+v, %v", foo, ok)
	}

	if lib, _ := store.LibraryOf("foo"); lib != "libA" {
		t.Errorf("LibraryOf(foo) = %q, want libA", lib)
	}

	// library field must not leak into serialized content
	store.Put("libA", "baz", &fakeEntity{Value: "new"})

	if err := store.Save(Exact("libA")); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "libA.soc_x"))
	if err != nil {
		t.Fatal(err)
	}

	if contains := string(data); contains == "" {
		t.Fatal("expected non-empty saved file")
	} else if strContains(contains, "library:") {
		t.Errorf("saved file should not contain the transient library field:\n%s", contains)
	}
}

func strContains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}

		return false
	})()
}

func TestStoreIndexConsistency(t *testing.T) {
	dir := t.TempDir()
	writeLibraryFile(t, dir, "multi_apb", ".soc_x", "sigA:\n  value: a\n")
	writeLibraryFile(t, dir, "multi_axi", ".soc_x", "sigB:\n  value: b\n")

	store := NewStore[*fakeEntity](dir, ".soc_x")
	if err := store.Load(Any()); err != nil {
		t.Fatal(err)
	}

	re, _ := FromPattern("multi_apb")
	if err := store.Remove(re); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Get("sigA"); ok {
		t.Error("sigA should have been evicted")
	}

	if _, ok := store.Get("sigB"); !ok {
		t.Error("sigB should still be present")
	}

	idx := store.Index()
	if _, ok := idx["multi_apb"]; ok {
		t.Error("index should not retain multi_apb after removal")
	}

	if names := idx["multi_axi"]; len(names) != 1 || names[0] != "sigB" {
		t.Errorf("index[multi_axi] = %v, want [sigB]", names)
	}

	if _, err := os.Stat(filepath.Join(dir, "multi_axi.soc_x")); err != nil {
		t.Error("multi_axi file should survive")
	}

	if _, err := os.Stat(filepath.Join(dir, "multi_apb.soc_x")); !os.IsNotExist(err) {
		t.Error("multi_apb file should have been deleted")
	}
}

func TestListLibrariesExactMatch(t *testing.T) {
	dir := t.TempDir()
	writeLibraryFile(t, dir, "apb_lib", ".soc_bus", "apb:\n  value: x\n")
	writeLibraryFile(t, dir, "axi_lib", ".soc_bus", "axi:\n  value: y\n")

	store := NewStore[*fakeEntity](dir, ".soc_bus")

	sel, err := FromPattern("apb_lib")
	if err != nil {
		t.Fatal(err)
	}

	names, err := store.ListLibraries(sel)
	if err != nil {
		t.Fatal(err)
	}

	if len(names) != 1 || names[0] != "apb_lib" {
		t.Errorf("ListLibraries = %v, want [apb_lib]", names)
	}
}
