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
package module

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/vowstar/qsocgo/pkg/bus"
)

type fakeFrontend struct {
	modules map[string]ASTNode
	order   []string
	failOn  string
}

func (f *fakeFrontend) ParseFileList(listPath string, extraFiles, defines, undefines []string) (bool, error) {
	if listPath == f.failOn {
		return false, nil
	}

	return true, nil
}

func (f *fakeFrontend) GetModuleList() []string { return f.order }

func (f *fakeFrontend) GetModuleAST(name string) (ASTNode, bool) {
	ast, ok := f.modules[name]
	return ast, ok
}

func apbModuleAST(name string) ASTNode {
	return ASTNode{
		"kind": "ModuleDeclaration",
		"name": name,
		"ports": []any{
			map[string]any{"name": "apb_pclk", "direction": "input", "type": "logic", "width": "1"},
			map[string]any{"name": "apb_presetn", "direction": "input", "type": "logic", "width": "1"},
			map[string]any{"name": "apb_paddr", "direction": "input", "type": "logic", "width": "32"},
			map[string]any{"name": "apb_pwdata", "direction": "input", "type": "logic", "width": "32"},
			map[string]any{"name": "apb_prdata", "direction": "output", "type": "logic", "width": "32"},
		},
		"parameters": []any{
			map[string]any{"name": "WIDTH", "type": "integer", "default": "32"},
		},
	}
}

func TestImportFromFileListExtractsPortsAndParameters(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	fe := &fakeFrontend{
		order:   []string{"apb_target"},
		modules: map[string]ASTNode{"apb_target": apbModuleAST("apb_target")},
	}

	if err := c.ImportFromFileList(fe, "", "", filepath.Join(dir, "files.f")); err != nil {
		t.Fatal(err)
	}

	if !c.IsModuleExist("apb_target") {
		t.Fatal("expected module 'apb_target' to be imported")
	}

	def, _ := c.Get("apb_target")

	if len(def.Port) != 5 {
		t.Errorf("expected 5 ports, got %d", len(def.Port))
	}

	if def.Port["apb_prdata"].Direction != "output" {
		t.Errorf("apb_prdata direction = %q, want output", def.Port["apb_prdata"].Direction)
	}

	if def.Param["WIDTH"].Default != "32" {
		t.Errorf("WIDTH default = %q, want 32", def.Param["WIDTH"].Default)
	}
}

func TestImportFromFileListDefaultsLibraryToLowercasedModuleName(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	fe := &fakeFrontend{
		order:   []string{"APB_Target"},
		modules: map[string]ASTNode{"APB_Target": apbModuleAST("APB_Target")},
	}

	if err := c.ImportFromFileList(fe, "", "", filepath.Join(dir, "files.f")); err != nil {
		t.Fatal(err)
	}

	def, ok := c.Get("APB_Target")
	if !ok {
		t.Fatal("expected module to be imported")
	}

	if def.Library != "apb_target" {
		t.Errorf("library = %q, want lowercased module name", def.Library)
	}
}

func TestImportFromFileListPicksFirstModuleWhenRegexEmpty(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	fe := &fakeFrontend{
		order: []string{"first_mod", "second_mod"},
		modules: map[string]ASTNode{
			"first_mod":  apbModuleAST("first_mod"),
			"second_mod": apbModuleAST("second_mod"),
		},
	}

	if err := c.ImportFromFileList(fe, "lib", "", filepath.Join(dir, "files.f")); err != nil {
		t.Fatal(err)
	}

	if !c.IsModuleExist("first_mod") {
		t.Error("expected first module in parse order to be chosen")
	}

	if c.IsModuleExist("second_mod") {
		t.Error("did not expect second module to be imported")
	}
}

func TestImportFromFileListRejectsUnmatchedRegex(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	fe := &fakeFrontend{
		order:   []string{"first_mod"},
		modules: map[string]ASTNode{"first_mod": apbModuleAST("first_mod")},
	}

	err := c.ImportFromFileList(fe, "lib", "^nonexistent$", filepath.Join(dir, "files.f"))
	if err == nil {
		t.Fatal("expected error for unmatched module regex")
	}
}

func TestAddModuleBusMapsBySimilarity(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	def := &Definition{Port: map[string]Port{
		"apb_pclk":    {Direction: "input", Width: "1"},
		"apb_presetn": {Direction: "input", Width: "1"},
		"apb_paddr":   {Direction: "input", Width: "32"},
		"apb_pwdata":  {Direction: "input", Width: "32"},
		"apb_prdata":  {Direction: "output", Width: "32"},
		"irq_line":    {Direction: "output", Width: "1"},
	}}
	def.Library = "dut"
	c.store.Put("dut", "dut", def)

	busDir := t.TempDir()
	busCat := bus.NewCatalog(busDir)
	busDef := &bus.Definition{Port: map[string]bus.Signal{
		"pclk":   {Direction: "input", Width: "1"},
		"presetn": {Direction: "input", Width: "1"},
		"paddr":  {Direction: "input", Width: "32"},
		"pwdata": {Direction: "input", Width: "32"},
		"prdata": {Direction: "output", Width: "32"},
	}}
	busCat.Put("apb_lib", "apb", busDef)

	if err := c.AddModuleBus(busCat, "dut", "apb", "slave", "apb0"); err != nil {
		t.Fatal(err)
	}

	def2, _ := c.Get("dut")

	iface, ok := def2.Bus["apb0"]
	if !ok {
		t.Fatal("expected bus interface 'apb0' to be attached")
	}

	if iface.Bus != "apb" || iface.Mode != "slave" {
		t.Errorf("iface = %+v, want bus=apb mode=slave", iface)
	}

	want := map[string]string{
		"pclk":   "apb_pclk",
		"presetn": "apb_presetn",
		"paddr":  "apb_paddr",
		"pwdata": "apb_pwdata",
		"prdata": "apb_prdata",
	}

	for signal, wantPort := range want {
		mapping, ok := iface.Mapping[signal]
		if !ok {
			t.Errorf("missing mapping for signal %q", signal)
			continue
		}

		if mapping.Port != wantPort {
			t.Errorf("mapping[%s].Port = %q, want %q", signal, mapping.Port, wantPort)
		}
	}

	if _, mapped := iface.Mapping["irq_line"]; mapped {
		t.Error("did not expect irq_line to appear as a mapped bus signal")
	}
}

func TestRemoveModuleBusDetachesOnlyMatchingInterfaces(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	def := &Definition{Bus: map[string]BusInterface{
		"apb0": {Bus: "apb", Mode: "slave"},
		"apb1": {Bus: "apb", Mode: "master"},
		"axi0": {Bus: "axi", Mode: "slave"},
	}}
	def.Library = "dut"
	c.store.Put("dut", "dut", def)

	re := regexp.MustCompile(`apb\d`)
	if err := c.RemoveModuleBus("dut", re); err != nil {
		t.Fatal(err)
	}

	def2, _ := c.Get("dut")

	if len(def2.Bus) != 1 {
		t.Fatalf("expected 1 interface remaining, got %d: %v", len(def2.Bus), def2.Bus)
	}

	if _, ok := def2.Bus["axi0"]; !ok {
		t.Error("expected axi0 interface to survive")
	}
}
