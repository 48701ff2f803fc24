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

// Package catalog implements the library-file engine shared by the bus and
// module catalogs: a Selector union for name matching, and a Store that
// loads/saves/removes ".soc_bus"/".soc_mod"-style libraries with
// merge-preserving YAML semantics and a reverse library index.
package catalog

import (
	"regexp"

	"github.com/vowstar/qsocgo/pkg/qnum"
)

// Selector picks zero or more names: an exact name, a regex pattern (which
// must match a candidate name in full, not as a prefix), "any name", or a
// list of sub-selectors (a match on any one of them matches).
type Selector struct {
	kind    selectorKind
	exact   string
	pattern *regexp.Regexp
	list    []Selector
}

type selectorKind int

const (
	kindExact selectorKind = iota
	kindPattern
	kindAny
	kindList
)

// Exact selects a single name verbatim.
func Exact(name string) Selector {
	return Selector{kind: kindExact, exact: name}
}

// Pattern selects every name that fully matches re.
func Pattern(re *regexp.Regexp) Selector {
	return Selector{kind: kindPattern, pattern: re}
}

// Any selects every name.
func Any() Selector {
	return Selector{kind: kindAny}
}

// List selects the union of what each of items selects.
func List(items ...Selector) Selector {
	return Selector{kind: kindList, list: items}
}

// FromPattern validates pattern and wraps it as a Pattern selector, the
// usual way a "library regex" or "name regex" CLI/API argument becomes a
// Selector.
func FromPattern(pattern string) (Selector, error) {
	re, err := qnum.CompileSelector(pattern)
	if err != nil {
		return Selector{}, err
	}

	return Pattern(re), nil
}

// Match reports whether name is selected.
func (s Selector) Match(name string) bool {
	switch s.kind {
	case kindExact:
		return s.exact == name
	case kindPattern:
		return qnum.ExactMatch(s.pattern, name)
	case kindAny:
		return true
	case kindList:
		for _, item := range s.list {
			if item.Match(name) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// Filter returns the subset of names selected, in their original order.
func (s Selector) Filter(names []string) []string {
	out := make([]string, 0, len(names))

	for _, name := range names {
		if s.Match(name) {
			out = append(out, name)
		}
	}

	return out
}
