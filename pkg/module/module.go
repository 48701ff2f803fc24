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

// Package module implements the module catalog (spec.md §4.C): structurally
// identical to the bus catalog (same load/save/list/remove/merge
// discipline), plus Verilog import via the front-end driver and computed
// bus-interface attachment via pkg/weaver.
package module

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/vowstar/qsocgo/pkg/catalog"
)

// Port is one port declaration on a module.
type Port struct {
	Direction string `yaml:"direction,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Width     string `yaml:"width,omitempty"`
}

// Param is one parameter declaration on a module.
type Param struct {
	Type    string `yaml:"type,omitempty"`
	Default string `yaml:"default,omitempty"`
}

// BusSignalMapping attaches one bus signal to one module port, optionally
// narrowed/inverted/tied-off — the same per-connection vocabulary the
// netlist elaborator understands on ordinary net connections.
type BusSignalMapping struct {
	Port   string `yaml:"port,omitempty"`
	Bits   string `yaml:"bits,omitempty"`
	Invert bool   `yaml:"invert,omitempty"`
	Tieoff string `yaml:"tieoff,omitempty"`
}

// BusInterface is one attached bus-interface stanza on a module, stored
// under `bus.<interfaceName>` (spec.md §4.C "Bus attachment").
type BusInterface struct {
	Bus     string                      `yaml:"bus"`
	Mode    string                      `yaml:"mode"`
	Mapping map[string]BusSignalMapping `yaml:"mapping"`
}

// Definition is a module record: ports, parameters, and any attached bus
// interfaces.
type Definition struct {
	Library string                  `yaml:"-"`
	Port    map[string]Port         `yaml:"port,omitempty"`
	Param   map[string]Param        `yaml:"param,omitempty"`
	Bus     map[string]BusInterface `yaml:"bus,omitempty"`
}

// GetLibrary implements catalog.Entity.
func (d *Definition) GetLibrary() string { return d.Library }

// SetLibrary implements catalog.Entity.
func (d *Definition) SetLibrary(lib string) { d.Library = lib }

// PortNames returns the module's port names, sorted.
func (d *Definition) PortNames() []string {
	names := make([]string, 0, len(d.Port))
	for name := range d.Port {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Catalog is the module catalog: a directory of ".soc_mod" library files.
type Catalog struct {
	store *catalog.Store[*Definition]
}

// NewCatalog opens a module catalog rooted at dir (conventionally
// "<project>/module").
func NewCatalog(dir string) *Catalog {
	return &Catalog{store: catalog.NewStore[*Definition](dir, ".soc_mod")}
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

// IsModuleExist reports whether a module named name is currently loaded.
func (c *Catalog) IsModuleExist(name string) bool {
	_, ok := c.store.Get(name)
	return ok
}

// Get returns the module named name, if loaded.
func (c *Catalog) Get(name string) (*Definition, bool) {
	return c.store.Get(name)
}

// ListModule returns the names of loaded modules matching re, sorted.
func (c *Catalog) ListModule(re *regexp.Regexp) []string {
	return c.store.Names(catalog.Pattern(re))
}

// ShowModule returns the full definitions of loaded modules matching re.
func (c *Catalog) ShowModule(re *regexp.Regexp) map[string]*Definition {
	out := make(map[string]*Definition)

	for _, name := range c.ListModule(re) {
		if def, ok := c.store.Get(name); ok {
			out[name] = def
		}
	}

	return out
}

// RemoveModule evicts every loaded module matching re: libraries that still
// contain definitions afterward are resaved, libraries that lose their
// last definition have their file deleted.
func (c *Catalog) RemoveModule(re *regexp.Regexp) error {
	names := c.ListModule(re)
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

// ListModuleBus returns the interface names attached to module, matching
// interfaceRegex, sorted.
func (c *Catalog) ListModuleBus(module string, interfaceRegex *regexp.Regexp) []string {
	def, ok := c.Get(module)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(def.Bus))

	for name := range def.Bus {
		if interfaceRegex == nil || interfaceRegex.MatchString(name) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// ShowModuleBus returns the full bus-interface stanzas attached to module
// matching interfaceRegex.
func (c *Catalog) ShowModuleBus(module string, interfaceRegex *regexp.Regexp) map[string]BusInterface {
	def, ok := c.Get(module)
	if !ok {
		return nil
	}

	out := make(map[string]BusInterface)

	for _, name := range c.ListModuleBus(module, interfaceRegex) {
		out[name] = def.Bus[name]
	}

	return out
}

// RemoveModuleBus detaches every bus interface on module whose name matches
// interfaceRegex. No module port/source is touched — only the attachment
// stanza is removed.
func (c *Catalog) RemoveModuleBus(module string, interfaceRegex *regexp.Regexp) error {
	def, ok := c.Get(module)
	if !ok {
		return fmt.Errorf("module not found: %s", module)
	}

	for _, name := range c.ListModuleBus(module, interfaceRegex) {
		delete(def.Bus, name)
	}

	return nil
}
