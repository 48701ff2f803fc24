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

func TestParseVerilogWidthAndBase(t *testing.T) {
	tests := []struct {
		text      string
		wantWidth uint
		wantBase  Base
	}{
		{"8'hFF", 8, Hexadecimal},
		{"4'b1010", 4, Binary},
		{"3'o7", 3, Octal},
		{"8'd10", 8, Decimal},
		{"'h1F", 5, Hexadecimal}, // inferred: 0x1F = 31, needs 5 bits
		{"1'b0", 1, Binary},
	}

	for _, tt := range tests {
		v, err := ParseVerilog(tt.text)
		if err != nil {
			t.Fatalf("ParseVerilog(%q): %v", tt.text, err)
		}

		if v.Width() != tt.wantWidth {
			t.Errorf("ParseVerilog(%q).Width() = %d, want %d", tt.text, v.Width(), tt.wantWidth)
		}

		if v.Base() != tt.wantBase {
			t.Errorf("ParseVerilog(%q).Base() = %v, want %v", tt.text, v.Base(), tt.wantBase)
		}
	}
}

func TestParseVerilogInferredWidthZero(t *testing.T) {
	v, err := ParseVerilog("'b0")
	if err != nil {
		t.Fatal(err)
	}

	if v.Width() != 1 {
		t.Errorf("zero value width = %d, want 1", v.Width())
	}
}

func TestParseVerilogOverflowSetsErrorDetected(t *testing.T) {
	v, err := ParseVerilog("2'hFF")
	if err != nil {
		t.Fatal(err)
	}

	if !v.ErrorDetected() {
		t.Fatal("expected ErrorDetected for 2'hFF (0xFF needs 8 bits)")
	}

	if v.Magnitude().Int64() != 0x3 {
		t.Errorf("truncated magnitude = %v, want 3", v.Magnitude())
	}
}

func TestParseCForms(t *testing.T) {
	tests := []struct {
		text     string
		wantBase Base
		wantVal  int64
	}{
		{"0xFF", Hexadecimal, 255},
		{"0b101", Binary, 5},
		{"0755", Octal, 493},
		{"42", Decimal, 42},
		{"0", Decimal, 0},
	}

	for _, tt := range tests {
		v, err := ParseC(tt.text)
		if err != nil {
			t.Fatalf("ParseC(%q): %v", tt.text, err)
		}

		if v.Base() != tt.wantBase {
			t.Errorf("ParseC(%q).Base() = %v, want %v", tt.text, v.Base(), tt.wantBase)
		}

		if v.Magnitude().Int64() != tt.wantVal {
			t.Errorf("ParseC(%q) = %v, want %d", tt.text, v.Magnitude(), tt.wantVal)
		}

		if v.HasExplicitWidth() {
			t.Errorf("ParseC(%q) width should always be inferred", tt.text)
		}
	}
}

func TestEmittersRoundTrip(t *testing.T) {
	literals := []string{"8'hFF", "4'b1010", "3'o7", "8'd10", "0xDEAD", "0b1100", "0755", "42"}

	for _, text := range literals {
		var (
			v   Value
			err error
		)

		if v, err = ParseVerilog(text); err != nil {
			v, err = ParseC(text)
		}

		if err != nil {
			t.Fatalf("could not parse seed literal %q: %v", text, err)
		}

		for _, emitted := range []string{v.FormatVerilogLong(), v.FormatVerilogShort(), v.FormatC()} {
			var rv Value

			var perr error

			rv, perr = ParseVerilog(emitted)
			if perr != nil {
				rv, perr = ParseC(emitted)
			}

			if perr != nil {
				t.Fatalf("round-trip parse of %q (from %q) failed: %v", emitted, text, perr)
			}

			if rv.Magnitude().Cmp(v.Magnitude()) != 0 {
				t.Errorf("round-trip magnitude mismatch: %q -> %q -> %v, want %v",
					text, emitted, rv.Magnitude(), v.Magnitude())
			}
		}
	}
}

func TestFormatVerilogLongPreservesExplicitWidth(t *testing.T) {
	v, err := ParseVerilog("16'h0F")
	if err != nil {
		t.Fatal(err)
	}

	rv, err := ParseVerilog(v.FormatVerilogLong())
	if err != nil {
		t.Fatal(err)
	}

	if !rv.HasExplicitWidth() || rv.Width() != 16 {
		t.Errorf("explicit width not preserved: got width=%d explicit=%v", rv.Width(), rv.HasExplicitWidth())
	}
}

func TestHexEmissionIsLowercase(t *testing.T) {
	v, err := ParseVerilog("8'hAB")
	if err != nil {
		t.Fatal(err)
	}

	if got := v.FormatC(); got != "0xab" {
		t.Errorf("FormatC() = %q, want lowercase 0xab", got)
	}
}
