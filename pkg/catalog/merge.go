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

	"gopkg.in/yaml.v3"
)

// MergeYAML deep-merges src into dst and returns the result: mapping nodes
// merge key-wise (recursing into shared keys), a null scalar in src
// preserves dst's value for that key, and any other scalar or sequence in
// src replaces dst outright. Either side may be nil. This is the
// "merge-preserving-unknown-keys" operation DESIGN NOTES §9 calls for, used
// by the bus/module CSV and Verilog importers to fold freshly-imported
// definitions into a library file that may already exist on disk.
func MergeYAML(dst, src *yaml.Node) *yaml.Node {
	if src == nil {
		return dst
	}

	if dst == nil {
		return src
	}

	if src.Kind == yaml.ScalarNode && src.Tag == "!!null" {
		return dst
	}

	if dst.Kind == yaml.MappingNode && src.Kind == yaml.MappingNode {
		mergeMappingInto(dst, src)
		return dst
	}

	return src
}

// mergeMappingInto merges src's key/value pairs into dst in place, dst and
// src both being MappingNode content (alternating key, value entries).
func mergeMappingInto(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key := src.Content[i]
		value := src.Content[i+1]

		if existing := findMappingValue(dst, key.Value); existing != nil {
			merged := MergeYAML(existing, value)
			replaceMappingValue(dst, key.Value, merged)
		} else {
			dst.Content = append(dst.Content, key, value)
		}
	}
}

func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}

	return nil
}

func replaceMappingValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
}

// LoadYAMLNode reads path and returns its root content node (the document's
// single child), or a fresh empty mapping node if path does not exist yet.
func LoadYAMLNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
		}

		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0], nil
	}

	if doc.Kind == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}

	return &doc, nil
}

// SaveYAMLNode marshals node and writes it to path, replacing any existing
// content.
func SaveYAMLNode(path string, node *yaml.Node) error {
	data, err := yaml.Marshal(node)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
