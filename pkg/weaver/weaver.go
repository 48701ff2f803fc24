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

// Package weaver is a domain-agnostic string-clustering and bipartite
// matching helper. The module catalog uses it to guess which module port
// implements which bus signal when attaching a bus interface (spec.md
// §4.C/§4.G); it is pure and deterministic and knows nothing about buses or
// modules itself.
package weaver

import (
	"sort"
	"strings"
)

// CandidateSubstrings enumerates every substring of length >= minLen that
// appears in at least threshold of the given strings, returning how many
// strings contain each one.
func CandidateSubstrings(strs []string, minLen, threshold int) map[string]int {
	counts := make(map[string]int)

	for _, s := range strs {
		seen := make(map[string]struct{})

		for length := minLen; length <= len(s); length++ {
			for start := 0; start+length <= len(s); start++ {
				seen[s[start:start+length]] = struct{}{}
			}
		}

		for substr := range seen {
			counts[substr]++
		}
	}

	candidates := make(map[string]int)

	for substr, count := range counts {
		if count >= threshold {
			candidates[substr] = count
		}
	}

	return candidates
}

// Cluster assigns each string to the longest candidate substring it
// contains. A string matching no candidate forms a singleton cluster keyed
// by itself.
func Cluster(strs []string, candidates map[string]int) map[string][]string {
	markers := make([]string, 0, len(candidates))
	for marker := range candidates {
		markers = append(markers, marker)
	}

	sort.Slice(markers, func(i, j int) bool {
		if len(markers[i]) != len(markers[j]) {
			return len(markers[i]) > len(markers[j])
		}

		return markers[i] < markers[j]
	})

	groups := make(map[string][]string)

	for _, s := range strs {
		key := s
		matched := false

		for _, marker := range markers {
			if strings.Contains(s, marker) {
				key = marker
				matched = true
				break
			}
		}

		if !matched {
			key = s
		}

		groups[key] = append(groups[key], s)
	}

	return groups
}

// BestHintMarker returns whichever of markers shares the longest common
// subsequence with hint (case-insensitive), preferring the longer marker on
// ties. It returns "" if markers is empty.
func BestHintMarker(hint string, markers []string) string {
	if len(markers) == 0 {
		return ""
	}

	sorted := append([]string(nil), markers...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}

		return sorted[i] < sorted[j]
	})

	lowerHint := strings.ToLower(hint)

	best := ""
	bestScore := -1

	for _, marker := range sorted {
		score := longestCommonSubsequence(lowerHint, strings.ToLower(marker))
		if score > bestScore {
			bestScore = score
			best = marker
		}
	}

	if bestScore <= 0 {
		return ""
	}

	return best
}

// longestCommonSubsequence returns the length of the longest common
// subsequence of a and b.
func longestCommonSubsequence(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// symmetricDifferenceLen returns the size of the symmetric difference
// between a's and b's character sets.
func symmetricDifferenceLen(a, b string) int {
	setA := make(map[rune]struct{})
	for _, r := range a {
		setA[r] = struct{}{}
	}

	setB := make(map[rune]struct{})
	for _, r := range b {
		setB[r] = struct{}{}
	}

	diff := 0

	for r := range setA {
		if _, ok := setB[r]; !ok {
			diff++
		}
	}

	for r := range setB {
		if _, ok := setA[r]; !ok {
			diff++
		}
	}

	return diff
}

// similarity scores how plausibly `left` implements `right`: the longest
// common subsequence length divided by the size of their symmetric
// difference (a stand-in for edit distance), so near-identical strings
// score highest and completely unrelated strings score ~0.
func similarity(left, right string) float64 {
	lcs := longestCommonSubsequence(strings.ToLower(left), strings.ToLower(right))
	if lcs == 0 {
		return 0
	}

	diff := symmetricDifferenceLen(strings.ToLower(left), strings.ToLower(right))
	if diff == 0 {
		diff = 1
	}

	return float64(lcs) / float64(diff)
}

// OptimalMatching computes a one-to-one mapping from each name in right
// (e.g. bus signals) to the name in left (e.g. module ports) that maximizes
// total similarity, using the Hungarian algorithm for global optimality.
// markerPrefix is stripped (case-insensitively) from each left-hand name
// before scoring, since left-hand names often carry an interface-specific
// prefix the right-hand names never do. Names with no positive-similarity
// partner are left unmapped.
func OptimalMatching(left, right []string, markerPrefix string) map[string]string {
	result := make(map[string]string)

	if len(left) == 0 || len(right) == 0 {
		return result
	}

	strippedLeft := make([]string, len(left))

	for i, name := range left {
		strippedLeft[i] = stripMarker(name, markerPrefix)
	}

	n := len(right)
	if len(left) > n {
		n = len(left)
	}

	// Build an n x n score matrix, padding with zero-similarity dummy rows
	// and columns so the assignment problem is square.
	score := make([][]float64, n)

	for i := range score {
		score[i] = make([]float64, n)

		for j := range score[i] {
			if i < len(right) && j < len(left) {
				score[i][j] = similarity(strippedLeft[j], right[i])
			}
		}
	}

	assignment := hungarianMaximize(score)

	for i, j := range assignment {
		if i >= len(right) || j >= len(left) {
			continue
		}

		if score[i][j] <= 0 {
			continue
		}

		result[right[i]] = left[j]
	}

	return result
}

func stripMarker(name, marker string) string {
	if marker == "" {
		return name
	}

	lowerName := strings.ToLower(name)
	lowerMarker := strings.ToLower(marker)

	if idx := strings.Index(lowerName, lowerMarker); idx >= 0 {
		return name[:idx] + name[idx+len(marker):]
	}

	return name
}
