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
	"testing"

	"gopkg.in/yaml.v3"
)

func parseNode(t *testing.T, text string) *yaml.Node {
	t.Helper()

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatal(err)
	}

	return doc.Content[0]
}

func TestMergeYAMLMapsMergeKeyWise(t *testing.T) {
	dst := parseNode(t, "a: 1\nb: 2\n")
	src := parseNode(t, "b: 3\nc: 4\n")

	merged := MergeYAML(dst, src)

	want := map[string]string{"a": "1", "b": "3", "c": "4"}
	for k, v := range want {
		if got := findMappingValue(merged, k); got == nil || got.Value != v {
			t.Errorf("merged[%s] = %v, want %s", k, got, v)
		}
	}
}

func TestMergeYAMLNullPreservesOld(t *testing.T) {
	dst := parseNode(t, "desc: original description\n")
	src := parseNode(t, "desc: null\n")

	merged := MergeYAML(dst, src)

	got := findMappingValue(merged, "desc")
	if got == nil || got.Value != "original description" {
		t.Errorf("desc = %v, want preserved original", got)
	}
}

func TestMergeYAMLRecursesIntoNestedMaps(t *testing.T) {
	dst := parseNode(t, "port:\n  pclk:\n    direction: in\n    width: 1\n")
	src := parseNode(t, "port:\n  pclk:\n    width: 2\n  prdata:\n    direction: out\n")

	merged := MergeYAML(dst, src)

	port := findMappingValue(merged, "port")
	pclk := findMappingValue(port, "pclk")

	if findMappingValue(pclk, "direction").Value != "in" {
		t.Error("nested key 'direction' should be preserved from dst")
	}

	if findMappingValue(pclk, "width").Value != "2" {
		t.Error("nested key 'width' should be overwritten by src")
	}

	if findMappingValue(port, "prdata") == nil {
		t.Error("new nested key 'prdata' should be added from src")
	}
}
