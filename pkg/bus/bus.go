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

// Package bus implements the bus catalog (spec.md §4.B): named bundles of
// signals loaded from and saved to "<library>.soc_bus" YAML files, with a
// semicolon-separated CSV importer that merges rather than replaces.
package bus

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/vowstar/qsocgo/pkg/catalog"
)

// SidePin holds the direction of one side (master or slave) of a dual-sided
// signal.
type SidePin struct {
	Direction string `yaml:"direction,omitempty"`
}

// Signal is one named wire in a bus definition. Either Direction alone is
// set (a single, mode-independent direction) or Master/Slave are set (a
// dual-sided signal whose direction depends which side of the interface it
// is viewed from).
type Signal struct {
	Direction        string   `yaml:"direction,omitempty"`
	Master           *SidePin `yaml:"master,omitempty"`
	Slave            *SidePin `yaml:"slave,omitempty"`
	Width            string   `yaml:"width,omitempty"`
	Kind             string   `yaml:"kind,omitempty"`
	Presence         string   `yaml:"presence,omitempty"`
	Initiative       string   `yaml:"initiative,omitempty"`
	Qualifier        string   `yaml:"qualifier,omitempty"`
	ProtocolType     string   `yaml:"protocol_type,omitempty"`
	PayloadName      string   `yaml:"payload_name,omitempty"`
	PayloadType      string   `yaml:"payload_type,omitempty"`
	PayloadExtension string   `yaml:"payload_extension,omitempty"`
	Description      string   `yaml:"description,omitempty"`
}

// Definition is a named bundle of signals: a bus as stored in a library
// file. Library is transient bookkeeping (which file the definition was
// loaded from) and is never serialized.
type Definition struct {
	Library string            `yaml:"-"`
	Port    map[string]Signal `yaml:"port"`
}

// SignalNames returns the bus's signal names, sorted.
func (d *Definition) SignalNames() []string {
	names := make([]string, 0, len(d.Port))
	for name := range d.Port {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// GetLibrary implements catalog.Entity.
func (d *Definition) GetLibrary() string { return d.Library }

// SetLibrary implements catalog.Entity.
func (d *Definition) SetLibrary(lib string) { d.Library = lib }

// Catalog is the bus catalog: a directory of ".soc_bus" library files.
type Catalog struct {
	store *catalog.Store[*Definition]
}

// NewCatalog opens a bus catalog rooted at dir (conventionally
// "<project>/bus").
func NewCatalog(dir string) *Catalog {
	return &Catalog{store: catalog.NewStore[*Definition](dir, ".soc_bus")}
}

// ListLibraries returns the on-disk library basenames selected by sel.
func (c *Catalog) ListLibraries(sel catalog.Selector) ([]string, error) {
	return c.store.ListLibraries(sel)
}

// Load reads every library selected by sel into memory.
func (c *Catalog) Load(sel catalog.Selector) error {
	return c.store.Load(sel)
}

// Save fully rewrites every library selected by sel from memory.
func (c *Catalog) Save(sel catalog.Selector) error {
	return c.store.Save(sel)
}

// Remove deletes the on-disk file and evicts every library selected by sel.
func (c *Catalog) Remove(sel catalog.Selector) error {
	return c.store.Remove(sel)
}

// Put inserts or replaces a bus definition directly in memory, as a member
// of library. Used by importers and by callers wiring up fixtures without a
// full load/save round trip.
func (c *Catalog) Put(library, name string, def *Definition) {
	c.store.Put(library, name, def)
}

// IsBusExist reports whether a bus named name is currently loaded.
func (c *Catalog) IsBusExist(name string) bool {
	_, ok := c.store.Get(name)
	return ok
}

// Get returns the bus named name, if loaded.
func (c *Catalog) Get(name string) (*Definition, bool) {
	return c.store.Get(name)
}

// ListBus returns the names of loaded buses matching re, sorted.
func (c *Catalog) ListBus(re *regexp.Regexp) []string {
	return c.store.Names(catalog.Pattern(re))
}

// ShowBus returns the full definitions of loaded buses matching re.
func (c *Catalog) ShowBus(re *regexp.Regexp) map[string]*Definition {
	out := make(map[string]*Definition)

	for _, name := range c.ListBus(re) {
		if def, ok := c.store.Get(name); ok {
			out[name] = def
		}
	}

	return out
}

// RemoveBus evicts every loaded bus matching re: libraries that still
// contain definitions afterward are resaved, libraries that lose their
// last definition have their file deleted (spec.md §4.B).
func (c *Catalog) RemoveBus(re *regexp.Regexp) error {
	names := c.ListBus(re)
	if len(names) == 0 {
		return nil
	}

	touched := make(map[string]struct{})

	for _, name := range names {
		library, ok := c.store.LibraryOf(name)
		if !ok {
			continue
		}

		touched[library] = struct{}{}

		if emptied := c.store.Delete(name); emptied {
			if err := c.store.RemoveLibraryFile(library); err != nil {
				return fmt.Errorf("removing library file %s: %w", library, err)
			}

			delete(touched, library)
		}
	}

	libraries := make([]string, 0, len(touched))
	for library := range touched {
		libraries = append(libraries, library)
	}

	sort.Strings(libraries)

	for _, library := range libraries {
		if err := c.store.Save(catalog.Exact(library)); err != nil {
			return err
		}
	}

	return nil
}
