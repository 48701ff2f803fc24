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
package qnum

import (
	"fmt"
	"regexp"
)

// CompileSelector validates that pattern is non-empty and a syntactically
// valid regex, returning the compiled form every catalog selector is built
// from. Every component that accepts a "library regex" or "name regex"
// selector from the user goes through this.
func CompileSelector(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("invalid or empty regex: %q", pattern)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid or empty regex: %w", err)
	}

	return re, nil
}

// ExactMatch reports whether re matches the whole of name, not merely a
// prefix or substring of it.
func ExactMatch(re *regexp.Regexp, name string) bool {
	loc := re.FindStringIndex(name)

	return loc != nil && loc[0] == 0 && loc[1] == len(name)
}
