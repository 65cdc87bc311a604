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
package air

import (
	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/util/sexp"
)

// Constraint is a named symbolic expression which must vanish on every row.
type Constraint struct {
	Handle string
	Term   Term
}

// Lisp converts this constraint into a simple S-Expression, for example so it
// can be printed.
func (p Constraint) Lisp() sexp.SExp {
	return sexp.NewList(sexp.NewSymbol("vanish"), sexp.NewSymbol(p.Handle), p.Term.Lisp())
}

// Symbolic is a builder which constructs symbolic terms, rather than
// evaluating them.  This captures the constraints and bus interactions of a
// chip in a form which can be printed or analysed (e.g. to determine their
// degree).
type Symbolic struct {
	bus.Recorder[Term]
	constraints []Constraint
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ Builder[Term] = (*Symbolic)(nil)

// NewSymbolic constructs an empty symbolic builder.
func NewSymbolic() *Symbolic {
	return &Symbolic{}
}

// Add implementation for the Builder interface.
func (p *Symbolic) Add(x Term, y Term) Term { return &Add{[]Term{x, y}} }

// Sub implementation for the Builder interface.
func (p *Symbolic) Sub(x Term, y Term) Term { return &Sub{[]Term{x, y}} }

// Mul implementation for the Builder interface.
func (p *Symbolic) Mul(x Term, y Term) Term { return &Mul{[]Term{x, y}} }

// Constant implementation for the Builder interface.
func (p *Symbolic) Constant(c uint64) Term { return &Constant{c} }

// AssertZero implementation for the Builder interface.
func (p *Symbolic) AssertZero(handle string, x Term) {
	p.constraints = append(p.constraints, Constraint{handle, x})
}

// Constraints returns the constraints asserted so far, in order.
func (p *Symbolic) Constraints() []Constraint {
	return p.constraints
}

// MaxDegree returns the largest degree of any constraint or interaction
// asserted so far.
func (p *Symbolic) MaxDegree() uint {
	var degree uint
	//
	for _, c := range p.constraints {
		degree = max(degree, c.Term.Degree())
	}
	//
	for _, i := range p.Interactions {
		degree = max(degree, i.Message.Address.Degree(), i.Message.Value.Degree(),
			i.Message.Multiplicity.Degree())
	}
	//
	return degree
}
