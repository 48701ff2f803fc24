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
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vowstar/qsocgo/pkg/catalog"
	"github.com/vowstar/qsocgo/pkg/qnum"
)

// ASTNode is one depth-bounded JSON AST node as produced by a
// pkg/verilogfe.SyntaxParser: "kind" identifies the node (e.g.
// "ModuleDeclaration"), "name" its identifier, and "ports"/"parameters"
// carry the flattened port/parameter lists a module import needs without
// requiring callers to walk arbitrarily deep structure themselves.
type ASTNode = map[string]any

// Frontend is the subset of pkg/verilogfe's driver the module catalog
// depends on, kept as a narrow interface here so this package does not
// import the front-end's implementation details (its os/exec plumbing,
// diagnostic collection, etc.) — only the contract spec.md §4.D promises.
type Frontend interface {
	ParseFileList(listPath string, extraFiles, defines, undefines []string) (bool, error)
	GetModuleList() []string
	GetModuleAST(name string) (ASTNode, bool)
}

// ImportFromFileList drives fe over a file list (or explicit extra files)
// and imports the module whose name exactly matches nameRegex (the first
// module in parse order if nameRegex is empty) into library (defaulting to
// the chosen module name, lowercased).
func (c *Catalog) ImportFromFileList(fe Frontend, library, nameRegex, fileListPath string, files ...string) error {
	ok, err := fe.ParseFileList(fileListPath, files, nil, nil)
	if err != nil {
		return fmt.Errorf("parsing file list: %w", err)
	}

	if !ok {
		return fmt.Errorf("parsing file list failed: %s", fileListPath)
	}

	moduleNames := fe.GetModuleList()
	if len(moduleNames) == 0 {
		return fmt.Errorf("no modules found in file list: %s", fileListPath)
	}

	var chosen string

	if nameRegex == "" {
		chosen = moduleNames[0]
	} else {
		re, err := qnum.CompileSelector(nameRegex)
		if err != nil {
			return err
		}

		for _, name := range moduleNames {
			if qnum.ExactMatch(re, name) {
				chosen = name
				break
			}
		}

		if chosen == "" {
			return fmt.Errorf("no module matched %q", nameRegex)
		}
	}

	ast, ok := fe.GetModuleAST(chosen)
	if !ok {
		return fmt.Errorf("no AST cached for module %q", chosen)
	}

	def := extractModuleDefinition(ast)

	if library == "" {
		library = strings.ToLower(chosen)
	}

	log.Infof("imported module %q (%d port(s), %d parameter(s)) into library %q", chosen, len(def.Port), len(def.Param), library)

	return c.mergeAndPersist(library, chosen, def)
}

// extractModuleDefinition walks a module's AST node and builds the
// catalog's typed Definition from its flattened port/parameter lists.
func extractModuleDefinition(ast ASTNode) *Definition {
	def := &Definition{Port: make(map[string]Port), Param: make(map[string]Param)}

	if rawPorts, ok := ast["ports"].([]any); ok {
		for _, raw := range rawPorts {
			pm, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			name, _ := pm["name"].(string)
			if name == "" {
				continue
			}

			port := Port{}
			if d, ok := pm["direction"].(string); ok {
				port.Direction = d
			}

			if t, ok := pm["type"].(string); ok {
				port.Type = t
			}

			if w, ok := pm["width"].(string); ok {
				port.Width = w
			}

			def.Port[name] = port
		}
	}

	if rawParams, ok := ast["parameters"].([]any); ok {
		for _, raw := range rawParams {
			pm, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			name, _ := pm["name"].(string)
			if name == "" {
				continue
			}

			param := Param{}
			if t, ok := pm["type"].(string); ok {
				param.Type = t
			}

			if d, ok := pm["default"].(string); ok {
				param.Default = d
			}

			def.Param[name] = param
		}
	}

	return def
}

// mergeAndPersist deep-merges a freshly imported definition into library's
// on-disk file (creating it if absent), using the same merge discipline as
// the bus catalog's CSV importer, then reloads the merged entry into
// memory.
func (c *Catalog) mergeAndPersist(library, name string, def *Definition) error {
	path := c.store.Path(library)

	existing, err := catalog.LoadYAMLNode(path)
	if err != nil {
		return fmt.Errorf("loading existing %s: %w", path, err)
	}

	fragmentBytes, err := yaml.Marshal(map[string]*Definition{name: def})
	if err != nil {
		return fmt.Errorf("marshalling imported module %q: %w", name, err)
	}

	var fragDoc yaml.Node
	if err := yaml.Unmarshal(fragmentBytes, &fragDoc); err != nil {
		return fmt.Errorf("re-parsing imported module %q: %w", name, err)
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
