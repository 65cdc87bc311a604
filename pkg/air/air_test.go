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
	"testing"

	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/util/assert"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
)

type F = babybear.Element

// (x - y*z) vanishes, with z in the preprocessed trace.
func describe[V any](builder Builder[V], x, y, z V) {
	AssertEq(builder, "x=y*z", x, builder.Mul(y, z))
	builder.Send(bus.NewMessage(y, x, OneMinus(builder, z)))
}

func Test_Symbolic_Lisp(t *testing.T) {
	var (
		builder = NewSymbolic()
		main    = Columns([]string{"x", "y"}, false)
		prep    = Columns([]string{"z"}, true)
	)
	//
	describe[Term](builder, main[0], main[1], prep[0])
	//
	assert.Equal(t, 1, len(builder.Constraints()))
	assert.Equal(t, "(vanish x=y*z (- x (* y prep.z)))", builder.Constraints()[0].Lisp().String(true))
	assert.Equal(t, "(- 1 prep.z)", builder.Interactions[0].Message.Multiplicity.Lisp().String(true))
	assert.Equal(t, uint(2), builder.MaxDegree())
}

func Test_Symbolic_Eval(t *testing.T) {
	var (
		builder = NewSymbolic()
		main    = Columns([]string{"x", "y"}, false)
		prep    = Columns([]string{"z"}, true)
		term    Term
	)
	//
	describe[Term](builder, main[0], main[1], prep[0])
	term = builder.Constraints()[0].Term
	// 6 - 2*3 = 0
	row := Row[F]{Main: []F{field.Uint64[F](6), field.Uint64[F](2)}, Preprocessed: []F{field.Uint64[F](3)}}
	assert.True(t, Eval(term, row).IsZero())
	// 7 - 2*3 = 1
	row.Main[0] = field.Uint64[F](7)
	assert.True(t, Eval(term, row).IsOne())
}

func Test_Checker(t *testing.T) {
	var (
		acc     = bus.NewAccumulator[F]()
		checker = NewChecker[F]("test", acc)
	)
	// holds
	checker.SetRow(0)
	describe[F](checker, field.Uint64[F](6), field.Uint64[F](2), field.Uint64[F](3))
	assert.Equal(t, 0, len(checker.Failures()))
	// fails
	checker.SetRow(1)
	describe[F](checker, field.Uint64[F](7), field.Uint64[F](2), field.Uint64[F](3))
	assert.Equal(t, []Failure{{"test", "x=y*z", 1}}, checker.Failures())
	// Interactions were forwarded
	assert.Equal(t, uint(2), acc.Count())
	assert.False(t, acc.Balanced())
}

func Test_Checker_Padding(t *testing.T) {
	var (
		acc     = bus.NewAccumulator[F]()
		checker = NewChecker[F]("test", acc)
		zero    = field.Zero[F]()
	)
	// multiplicity 1 - 1 = 0
	describe[F](checker, zero, zero, field.One[F]())
	//
	assert.Equal(t, 0, len(checker.Failures()))
	assert.Equal(t, uint(0), acc.Count())
}
