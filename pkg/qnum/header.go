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

// Package qnum parses and formats the two numeric literal grammars used
// throughout the toolchain (Verilog-style sized literals and C-style
// hex/octal/decimal literals), plus the regex helpers used by every
// library catalog for name selection.
package qnum
