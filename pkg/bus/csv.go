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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vowstar/qsocgo/pkg/catalog"
)

// normalizeDirection maps the recognized spellings of a direction column to
// the canonical form used in saved YAML.
func normalizeDirection(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "in", "input":
		return "input"
	case "out", "output":
		return "output"
	case "inout":
		return "inout"
	default:
		return strings.TrimSpace(raw)
	}
}

// ImportFromFileList reads a semicolon-separated CSV table (spec.md §4.B)
// and merges the resulting bus definition into libraryName (defaulting to
// the CSV basename) under busName (defaulting to libraryName).
func (c *Catalog) ImportFromFileList(libraryName, busName, csvPath string) error {
	rows, headerIndex, err := readSemicolonCSV(csvPath)
	if err != nil {
		return err
	}

	if libraryName == "" {
		base := filepath.Base(csvPath)
		libraryName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if busName == "" {
		busName = libraryName
	}

	def := &Definition{Port: make(map[string]Signal)}

	for _, row := range rows {
		field := func(header string) string {
			idx, ok := headerIndex[header]
			if !ok || idx >= len(row) {
				return ""
			}

			return strings.TrimSpace(row[idx])
		}

		name := field("name")
		if name == "" {
			continue
		}

		sig := def.Port[name]

		mode := strings.ToLower(field("mode"))
		direction := normalizeDirection(field("direction"))

		switch mode {
		case "master":
			sig.Master = &SidePin{Direction: direction}
		case "slave":
			sig.Slave = &SidePin{Direction: direction}
		default:
			if direction != "" {
				sig.Direction = direction
			}
		}

		if v := field("width"); v != "" {
			sig.Width = v
		}

		if v := field("kind"); v != "" {
			sig.Kind = v
		}

		if v := field("presence"); v != "" {
			sig.Presence = v
		}

		if v := field("initiative"); v != "" {
			sig.Initiative = v
		}

		if v := field("qualifier"); v != "" {
			sig.Qualifier = v
		}

		if v := field("protocol type"); v != "" {
			sig.ProtocolType = v
		}

		if v := field("payload name"); v != "" {
			sig.PayloadName = v
		}

		if v := field("payload type"); v != "" {
			sig.PayloadType = v
		}

		if v := field("payload extension"); v != "" {
			sig.PayloadExtension = v
		}

		if v := field("description"); v != "" {
			sig.Description = v
		}

		def.Port[name] = sig
	}

	log.Infof("imported %d signal(s) from %s into bus %q (library %q)", len(def.Port), csvPath, busName, libraryName)

	return c.mergeAndPersist(libraryName, busName, def)
}

// readSemicolonCSV parses path as a semicolon-separated table, returning
// its data rows and a case-insensitive header-name -> column-index map.
func readSemicolonCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV file: %s", path)
	}

	headerIndex := make(map[string]int, len(records[0]))

	for i, h := range records[0] {
		key := strings.ToLower(strings.Join(strings.Fields(h), " "))
		headerIndex[key] = i
	}

	return records[1:], headerIndex, nil
}

// mergeAndPersist deep-merges a freshly built definition into library's
// on-disk file (creating it if absent), then reloads the merged entry into
// memory so the in-memory store matches what was written.
func (c *Catalog) mergeAndPersist(library, name string, def *Definition) error {
	path := c.store.Path(library)

	existing, err := catalog.LoadYAMLNode(path)
	if err != nil {
		return fmt.Errorf("loading existing %s: %w", path, err)
	}

	fragmentBytes, err := yaml.Marshal(map[string]*Definition{name: def})
	if err != nil {
		return fmt.Errorf("marshalling imported bus %q: %w", name, err)
	}

	var fragDoc yaml.Node
	if err := yaml.Unmarshal(fragmentBytes, &fragDoc); err != nil {
		return fmt.Errorf("re-parsing imported bus %q: %w", name, err)
	}

	fragment := fragDoc.Content[0]
	merged := catalog.MergeYAML(existing, fragment)

	if err := catalog.SaveYAMLNode(path, merged); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	mergedBytes, err := yaml.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshalling merged library %q: %w", library, err)
	}

	var all map[string]*Definition
	if err := yaml.Unmarshal(mergedBytes, &all); err != nil {
		return fmt.Errorf("re-parsing merged library %q: %w", library, err)
	}

	if entry, ok := all[name]; ok {
		c.store.Put(library, name, entry)
	}

	return nil
}
