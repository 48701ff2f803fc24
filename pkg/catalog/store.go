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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Entity is the contract a catalog entry must satisfy: it remembers which
// library file it was loaded from so it can be written back to the right
// place, but that field is never part of the entity's own serialized form
// (each concrete Definition tags it `yaml:"-"`).
type Entity interface {
	GetLibrary() string
	SetLibrary(string)
}

// Store is the generic library-file engine: a directory of "<name><ext>"
// YAML files, each a mapping from entity name to entity body. It implements
// list/load/save/remove once, as DESIGN NOTES §9 recommends, and maintains
// the reverse library index described in spec.md §3.
type Store[T Entity] struct {
	dir      string
	ext      string
	entities map[string]T
	index    map[string]map[string]struct{}
}

// NewStore creates a Store rooted at dir, whose library files carry the
// given extension (including the leading dot, e.g. ".soc_bus").
func NewStore[T Entity](dir, ext string) *Store[T] {
	return &Store[T]{
		dir:      dir,
		ext:      ext,
		entities: make(map[string]T),
		index:    make(map[string]map[string]struct{}),
	}
}

func (s *Store[T]) path(library string) string {
	return filepath.Join(s.dir, library+s.ext)
}

// Dir returns the directory this store's library files live in.
func (s *Store[T]) Dir() string { return s.dir }

// Ext returns the file extension (with leading dot) this store's library
// files carry.
func (s *Store[T]) Ext() string { return s.ext }

// Path returns the on-disk path for a given library basename.
func (s *Store[T]) Path(library string) string { return s.path(library) }

// RemoveLibraryFile deletes a library's on-disk file without touching
// in-memory state, used once an import/merge has already emptied or
// rewritten it directly.
func (s *Store[T]) RemoveLibraryFile(library string) error {
	err := os.Remove(s.path(library))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// ListLibraries returns the basenames (without extension) of on-disk
// library files selected by sel, sorted.
func (s *Store[T]) ListLibraries(sel Selector) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.ext) {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), s.ext)
		if sel.Match(base) {
			names = append(names, base)
		}
	}

	sort.Strings(names)

	return names, nil
}

// Load reads every library selected by sel from disk into memory. Entities
// gained this way record which library they came from.
func (s *Store[T]) Load(sel Selector) error {
	names, err := s.ListLibraries(sel)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		log.Warnf("no library matched selector in %s", s.dir)
		return nil
	}

	for _, library := range names {
		data, err := os.ReadFile(s.path(library))
		if err != nil {
			log.Errorf("Error: missing file: %s", s.path(library))
			return fmt.Errorf("missing file: %s", s.path(library))
		}

		var body map[string]T

		if err := yaml.Unmarshal(data, &body); err != nil {
			log.Errorf("Error parsing YAML file: %s: %v", s.path(library), err)
			return fmt.Errorf("error parsing YAML file: %s: %w", s.path(library), err)
		}

		s.ingest(library, body)
	}

	return nil
}

// ingest records body's entities as belonging to library, updating both the
// entity map and the reverse index.
func (s *Store[T]) ingest(library string, body map[string]T) {
	if _, ok := s.index[library]; !ok {
		s.index[library] = make(map[string]struct{})
	}

	for name, value := range body {
		value.SetLibrary(library)
		s.entities[name] = value
		s.index[library][name] = struct{}{}
	}
}

// Save fully rewrites the on-disk file for every library selected by sel
// from the in-memory data store — there is no partial/merge save.
func (s *Store[T]) Save(sel Selector) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}

	for library, names := range s.index {
		if !sel.Match(library) {
			continue
		}

		body := make(map[string]T, len(names))
		for name := range names {
			body[name] = s.entities[name]
		}

		data, err := yaml.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling library %s: %w", library, err)
		}

		if err := os.WriteFile(s.path(library), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", s.path(library), err)
		}
	}

	return nil
}

// Remove deletes the on-disk file and evicts the entities of every library
// selected by sel.
func (s *Store[T]) Remove(sel Selector) error {
	for library := range s.index {
		if !sel.Match(library) {
			continue
		}

		if err := os.Remove(s.path(library)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", s.path(library), err)
		}

		for name := range s.index[library] {
			delete(s.entities, name)
		}

		delete(s.index, library)
	}

	return nil
}

// Get returns the entity named name, if loaded.
func (s *Store[T]) Get(name string) (T, bool) {
	v, ok := s.entities[name]
	return v, ok
}

// Names returns every loaded entity name selected by sel, sorted.
func (s *Store[T]) Names(sel Selector) []string {
	names := make([]string, 0, len(s.entities))

	for name := range s.entities {
		if sel.Match(name) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// Put inserts or replaces the entity named name as a member of library.
func (s *Store[T]) Put(library, name string, value T) {
	if old, ok := s.entities[name]; ok {
		oldLib := old.GetLibrary()
		if oldLib != "" && oldLib != library {
			delete(s.index[oldLib], name)
		}
	}

	value.SetLibrary(library)
	s.entities[name] = value

	if _, ok := s.index[library]; !ok {
		s.index[library] = make(map[string]struct{})
	}

	s.index[library][name] = struct{}{}
}

// Delete evicts the entity named name from memory and from its library's
// index entry, returning whether the library has become empty as a result
// (callers use this to decide whether to delete the on-disk file).
func (s *Store[T]) Delete(name string) (libraryEmptied bool) {
	value, ok := s.entities[name]
	if !ok {
		return false
	}

	library := value.GetLibrary()
	delete(s.entities, name)

	if set, ok := s.index[library]; ok {
		delete(set, name)

		if len(set) == 0 {
			delete(s.index, library)
			return true
		}
	}

	return false
}

// LibraryOf returns which library an entity belongs to.
func (s *Store[T]) LibraryOf(name string) (string, bool) {
	v, ok := s.entities[name]
	if !ok {
		return "", false
	}

	return v.GetLibrary(), true
}

// Index returns a snapshot of the library -> entity-names reverse index.
func (s *Store[T]) Index() map[string][]string {
	out := make(map[string][]string, len(s.index))

	for library, names := range s.index {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}

		sort.Strings(list)
		out[library] = list
	}

	return out
}

// HasLibrary reports whether library has been loaded and still has entities.
func (s *Store[T]) HasLibrary(library string) bool {
	_, ok := s.index[library]
	return ok
}
