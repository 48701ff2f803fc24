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

import "testing"

func TestCompileSelectorRejectsEmpty(t *testing.T) {
	if _, err := CompileSelector(""); err == nil {
		t.Fatal("expected error for empty regex")
	}
}

func TestCompileSelectorRejectsInvalid(t *testing.T) {
	if _, err := CompileSelector("ap[b"); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}

func TestExactMatchRequiresFullString(t *testing.T) {
	re, err := CompileSelector("apb")
	if err != nil {
		t.Fatal(err)
	}

	if !ExactMatch(re, "apb") {
		t.Error("expected exact match against identical name")
	}

	if ExactMatch(re, "apb_lib") {
		t.Error("expected no match against name with trailing suffix")
	}

	if ExactMatch(re, "my_apb") {
		t.Error("expected no match against name with leading prefix")
	}
}

func TestExactMatchWithAlternation(t *testing.T) {
	re, err := CompileSelector("multi_apb|multi_axi")
	if err != nil {
		t.Fatal(err)
	}

	if !ExactMatch(re, "multi_apb") || !ExactMatch(re, "multi_axi") {
		t.Error("expected both alternatives to match exactly")
	}

	if ExactMatch(re, "multi_apb_extra") {
		t.Error("expected no match when extra suffix is present")
	}
}
