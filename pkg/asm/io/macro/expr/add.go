// Copyright Consensys Software Inc.
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
package expr

import (
	"math/big"

	"github.com/consensys/go-corset/pkg/schema"
	"github.com/consensys/go-corset/pkg/schema/agnostic"
	"github.com/consensys/go-corset/pkg/util/collection/bit"
	"github.com/consensys/go-corset/pkg/util/math"
)

// Add represents an expresion which adds one or more terms together.
type Add struct {
	Exprs []Expr
}

// Equals implementation for the Expr interface.
func (p *Add) Equals(e Expr) bool {
	if e, ok := e.(*Add); ok {
		return EqualsAll(p.Exprs, e.Exprs)
	}
	//
	return false
}

// Eval implementation for the Expr interface.
func (p *Add) Eval(env []big.Int) big.Int {
	var result big.Int
	//
	for i, e := range p.Exprs {
		ith := e.Eval(env)

		if i == 0 {
			result.Set(&ith)
		} else {
			result.Add(&result, &ith)
		}
	}
	// Done
	return result
}

// Polynomial implementation for the Expr interface.
func (p *Add) Polynomial() agnostic.Polynomial {
	var result agnostic.Polynomial
	//
	for i, e := range p.Exprs {
		ith := e.Polynomial()
		//
		if i == 0 {
			result = ith
		} else {
			result = result.Add(ith)
		}
	}
	//
	return result
}

// RegistersRead implementation for the Expr interface.
func (p *Add) RegistersRead() bit.Set {
	var reads bit.Set
	//
	for _, e := range p.Exprs {
		reads.Union(e.RegistersRead())
	}
	//
	return reads
}

// ValueRange implementation for the Expr interface.
func (p *Add) ValueRange(mapping schema.RegisterMap) math.Interval {
	var values math.Interval
	//
	for i, e := range p.Exprs {
		if i == 0 {
			values = e.ValueRange(mapping)
		} else {
			values.Add(e.ValueRange(mapping))
		}
	}
	//
	return values
}

func (p *Add) String(mapping schema.RegisterMap) string {
	return String(p, mapping)
}
