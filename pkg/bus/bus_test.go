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
package bus

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/vowstar/qsocgo/pkg/catalog"
)

const apbCSV = `Name;Mode;Direction;Width;Qualifier;Description
pclk;system;in;1;;clock
presetn;system;in;1;;active-low reset
paddr;master;out;32;address;address bus
paddr;slave;in;32;address;address bus
pwdata;master;out;32;data;write data
pwdata;slave;in;32;data;write data
prdata;master;in;32;data;read data
prdata;slave;out;32;data;read data
pwrite;master;out;1;control;write enable
psel;master;out;1;control;select
`

func writeCSV(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestImportFromFileListBuildsDualSidedSignals(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "apb.csv", apbCSV)

	c := NewCatalog(filepath.Join(dir, "bus"))

	if err := c.ImportFromFileList("apb_lib", "apb", csvPath); err != nil {
		t.Fatal(err)
	}

	if !c.IsBusExist("apb") {
		t.Fatal("expected bus 'apb' to exist after import")
	}

	def, _ := c.Get("apb")

	pclk, ok := def.Port["pclk"]
	if !ok || pclk.Direction != "input" || pclk.Width != "1" {
		t.Errorf("pclk = %+v, want direction=input width=1", pclk)
	}

	paddr, ok := def.Port["paddr"]
	if !ok {
		t.Fatal("expected paddr signal")
	}

	if paddr.Master == nil || paddr.Master.Direction != "output" {
		t.Errorf("paddr.Master = %+v, want output", paddr.Master)
	}

	if paddr.Slave == nil || paddr.Slave.Direction != "input" {
		t.Errorf("paddr.Slave = %+v, want input", paddr.Slave)
	}

	if paddr.Qualifier != "address" || paddr.Width != "32" {
		t.Errorf("paddr qualifier/width = %q/%q, want address/32", paddr.Qualifier, paddr.Width)
	}
}

func TestImportFromFileListDefaultsLibraryAndBusNameToBasename(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSV(t, dir, "ahb_lite.csv", apbCSV)

	c := NewCatalog(filepath.Join(dir, "bus"))

	if err := c.ImportFromFileList("", "", csvPath); err != nil {
		t.Fatal(err)
	}

	if !c.IsBusExist("ahb_lite") {
		t.Fatal("expected bus named after CSV basename")
	}

	if _, err := os.Stat(filepath.Join(dir, "bus", "ahb_lite.soc_bus")); err != nil {
		t.Errorf("expected library file named after CSV basename: %v", err)
	}
}

func TestImportFromFileListMergesIntoExistingFile(t *testing.T) {
	dir := t.TempDir()
	libDir := filepath.Join(dir, "bus")

	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}

	existing := "apb:\n  port:\n    pclk:\n      direction: input\n      width: \"1\"\n      description: hand-authored\n    custom_signal:\n      direction: input\n      width: \"4\"\n"
	if err := os.WriteFile(filepath.Join(libDir, "apb.soc_bus"), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	csvPath := writeCSV(t, dir, "apb.csv", apbCSV)

	c := NewCatalog(libDir)
	if err := c.ImportFromFileList("apb", "apb", csvPath); err != nil {
		t.Fatal(err)
	}

	def, ok := c.Get("apb")
	if !ok {
		t.Fatal("expected apb bus after merge")
	}

	if _, ok := def.Port["custom_signal"]; !ok {
		t.Error("expected hand-authored custom_signal to survive the merge")
	}

	if _, ok := def.Port["paddr"]; !ok {
		t.Error("expected imported paddr signal to be present after merge")
	}
}

func TestRemoveBusDeletesEmptiedLibraryButResavesOthers(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(dir)

	c2 := &Definition{Port: map[string]Signal{"sig": {Direction: "input", Width: "1"}}}
	multiDef := &Definition{Port: map[string]Signal{"other": {Direction: "output", Width: "8"}}}

	storeTestPut(c, "lonely_lib", "lonely_bus", c2)
	storeTestPut(c, "multi_lib", "bus_a", multiDef)
	storeTestPut(c, "multi_lib", "bus_b", &Definition{Port: map[string]Signal{"z": {Direction: "input", Width: "1"}}})

	if err := c.Save(catalog.Any()); err != nil {
		t.Fatal(err)
	}

	re := regexp.MustCompile(`lonely_bus|bus_a`)
	if err := c.RemoveBus(re); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "lonely_lib.soc_bus")); !os.IsNotExist(err) {
		t.Error("expected lonely_lib.soc_bus to be deleted after losing its only bus")
	}

	if _, err := os.Stat(filepath.Join(dir, "multi_lib.soc_bus")); err != nil {
		t.Errorf("expected multi_lib.soc_bus to survive: %v", err)
	}

	if c.IsBusExist("bus_a") {
		t.Error("expected bus_a to be gone")
	}

	if !c.IsBusExist("bus_b") {
		t.Error("expected bus_b to survive")
	}
}

// storeTestPut is a small helper exercising the catalog's Put path through
// the bus Catalog's embedded store, used only to seed fixtures for
// TestRemoveBusDeletesEmptiedLibraryButResavesOthers.
func storeTestPut(c *Catalog, library, name string, def *Definition) {
	def.Library = library
	c.store.Put(library, name, def)
}
