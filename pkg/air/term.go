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
	"fmt"

	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/sexp"
)

// Term represents a component of a symbolic AIR expression.
type Term interface {
	// Degree returns the degree of this term, when viewed as a polynomial over
	// the columns it accesses.
	Degree() uint
	// Lisp converts this term into a simple S-Expression, for example so it
	// can be printed.
	Lisp() sexp.SExp
}

// Row provides the values of the main and preprocessed columns on a given
// row, against which a symbolic term can be evaluated.
type Row[F field.Element[F]] struct {
	Main         []F
	Preprocessed []F
}

// Eval evaluates a given term on a given row.
func Eval[F field.Element[F]](term Term, row Row[F]) F {
	switch t := term.(type) {
	case *Add:
		return evalNary(t.Args, row, func(x, y F) F { return x.Add(y) })
	case *Sub:
		return evalNary(t.Args, row, func(x, y F) F { return x.Sub(y) })
	case *Mul:
		return evalNary(t.Args, row, func(x, y F) F { return x.Mul(y) })
	case *Constant:
		return field.Uint64[F](t.Value)
	case *ColumnAccess:
		if t.Preprocessed {
			return row.Preprocessed[t.Index]
		}
		//
		return row.Main[t.Index]
	default:
		panic(fmt.Sprintf("unknown term %T", term))
	}
}

func evalNary[F field.Element[F]](args []Term, row Row[F], fn func(F, F) F) F {
	val := Eval(args[0], row)
	//
	for _, arg := range args[1:] {
		val = fn(val, Eval(arg, row))
	}
	//
	return val
}

// ============================================================================
// Addition
// ============================================================================

// Add represents the sum over one or more expressions.
type Add struct{ Args []Term }

// Degree implementation for the Term interface.
func (p *Add) Degree() uint { return maxDegree(p.Args) }

// Lisp implementation for the Term interface.
func (p *Add) Lisp() sexp.SExp { return lispOfNary("+", p.Args) }

// ============================================================================
// Subtraction
// ============================================================================

// Sub represents the subtraction over one or more expressions.
type Sub struct{ Args []Term }

// Degree implementation for the Term interface.
func (p *Sub) Degree() uint { return maxDegree(p.Args) }

// Lisp implementation for the Term interface.
func (p *Sub) Lisp() sexp.SExp { return lispOfNary("-", p.Args) }

// ============================================================================
// Multiplication
// ============================================================================

// Mul represents the product over one or more expressions.
type Mul struct{ Args []Term }

// Degree implementation for the Term interface.
func (p *Mul) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree += arg.Degree()
	}
	//
	return degree
}

// Lisp implementation for the Term interface.
func (p *Mul) Lisp() sexp.SExp { return lispOfNary("*", p.Args) }

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant value within an expression.
type Constant struct{ Value uint64 }

// Degree implementation for the Term interface.
func (p *Constant) Degree() uint { return 0 }

// Lisp implementation for the Term interface.
func (p *Constant) Lisp() sexp.SExp { return sexp.NewSymbol(fmt.Sprintf("%d", p.Value)) }

// ============================================================================
// Column Access
// ============================================================================

// ColumnAccess represents reading the value held in a given column on the
// current row, where the column belongs either to the main trace or to the
// preprocessed trace.
type ColumnAccess struct {
	Name         string
	Index        uint
	Preprocessed bool
}

// Degree implementation for the Term interface.
func (p *ColumnAccess) Degree() uint { return 1 }

// Lisp implementation for the Term interface.
func (p *ColumnAccess) Lisp() sexp.SExp {
	if p.Preprocessed {
		return sexp.NewSymbol(fmt.Sprintf("prep.%s", p.Name))
	}
	//
	return sexp.NewSymbol(p.Name)
}

// Columns constructs an access for each of a given set of named columns, in
// order.
func Columns(names []string, preprocessed bool) []Term {
	terms := make([]Term, len(names))
	//
	for i, name := range names {
		terms[i] = &ColumnAccess{name, uint(i), preprocessed}
	}
	//
	return terms
}

// ============================================================================
// Helpers
// ============================================================================

func maxDegree(args []Term) uint {
	var degree uint
	//
	for _, arg := range args {
		degree = max(degree, arg.Degree())
	}
	//
	return degree
}

func lispOfNary(op string, args []Term) sexp.SExp {
	list := sexp.NewList(sexp.NewSymbol(op))
	//
	for _, arg := range args {
		list.Append(arg.Lisp())
	}
	//
	return list
}
