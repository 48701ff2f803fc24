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
package weaver

import (
	"reflect"
	"testing"
)

func TestCandidateSubstringsThreshold(t *testing.T) {
	strs := []string{"apb_paddr", "apb_pwdata", "apb_prdata"}

	candidates := CandidateSubstrings(strs, 3, 2)

	if _, ok := candidates["apb"]; !ok {
		t.Error("expected 'apb' to be a candidate substring")
	}

	if count := candidates["apb"]; count != 3 {
		t.Errorf("apb count = %d, want 3", count)
	}
}

func TestClusterAssignsLongestMarker(t *testing.T) {
	strs := []string{"apb_paddr", "apb_pwdata", "axi_awaddr", "axi_wdata", "lonely"}
	candidates := CandidateSubstrings(strs, 3, 2)
	groups := Cluster(strs, candidates)

	found := false

	for marker, members := range groups {
		if marker == "apb_" || marker == "apb" {
			found = true

			for _, m := range members {
				if m != "apb_paddr" && m != "apb_pwdata" {
					t.Errorf("unexpected member %q in apb cluster", m)
				}
			}
		}
	}

	if !found {
		t.Fatal("expected an apb-prefixed cluster to exist")
	}

	if members, ok := groups["lonely"]; !ok || !reflect.DeepEqual(members, []string{"lonely"}) {
		t.Errorf("expected singleton cluster for 'lonely', got %v", groups["lonely"])
	}
}

func TestBestHintMarkerPrefersLongestSharedSubsequence(t *testing.T) {
	markers := []string{"apb", "axi", "ahb"}

	if got := BestHintMarker("m_apb", markers); got != "apb" {
		t.Errorf("BestHintMarker = %q, want apb", got)
	}
}

func TestBestHintMarkerEmptyWhenNoMarkers(t *testing.T) {
	if got := BestHintMarker("anything", nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestOptimalMatchingOneToOne(t *testing.T) {
	left := []string{"apb_pclk", "apb_paddr", "apb_prdata", "apb_pwdata"}
	right := []string{"pclk", "paddr", "prdata", "pwdata"}

	matching := OptimalMatching(left, right, "apb_")

	want := map[string]string{
		"pclk":   "apb_pclk",
		"paddr":  "apb_paddr",
		"prdata": "apb_prdata",
		"pwdata": "apb_pwdata",
	}

	if !reflect.DeepEqual(matching, want) {
		t.Errorf("OptimalMatching = %v, want %v", matching, want)
	}
}

func TestOptimalMatchingLeavesUnrelatedUnmapped(t *testing.T) {
	left := []string{"apb_pclk"}
	right := []string{"completely_unrelated_xyz_000", "pclk"}

	matching := OptimalMatching(left, right, "apb_")

	if _, ok := matching["pclk"]; !ok {
		t.Error("expected pclk to be matched to apb_pclk")
	}

	if len(matching) != 1 {
		t.Errorf("expected exactly one mapping, got %v", matching)
	}
}

func TestOptimalMatchingEmptyInputs(t *testing.T) {
	if m := OptimalMatching(nil, []string{"a"}, ""); len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}

	if m := OptimalMatching([]string{"a"}, nil, ""); len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}
