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
package recursion

import (
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-recursion/pkg/util/assert"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
)

type F = babybear.Element

func u(val uint64) F {
	return field.Uint64[F](val)
}

func Test_Select_NotTaken(t *testing.T) {
	out1, out2 := Select(u(0), u(7), u(9))
	//
	assert.Equivalent(t, u(7), out1)
	assert.Equivalent(t, u(9), out2)
}

func Test_Select_Taken(t *testing.T) {
	out1, out2 := Select(u(1), u(7), u(9))
	//
	assert.Equivalent(t, u(9), out1)
	assert.Equivalent(t, u(7), out2)
}

func Test_Select_Columns(t *testing.T) {
	var io SelectIo[uint8]
	//
	for i, col := range io.Columns() {
		*col = uint8(i)
	}
	//
	assert.Equal(t, SelectIo[uint8]{Bit: 0, Out1: 1, Out2: 2, In1: 3, In2: 4}, io)
	assert.Equal(t, []string{"x_bit", "x_out1", "x_out2", "x_in1", "x_in2"}, SelectIoNames("x_"))
}

func Test_Extract(t *testing.T) {
	program := NewProgram[F](
		NewMem(WRITE, 1, 0, u(1)),
		NewSelect[F](1, 0, 0, 1, 2, 3, 4),
		NewMem(READ, 1, 1, u(1)),
		NewSelect[F](0, 1, 5, 6, 7, 8, 9))
	//
	selects := Extract[*SelectInstr[F]](program)
	mems := Extract[*MemInstr[F]](program)
	//
	assert.Equal(t, 2, len(selects))
	assert.Equal(t, 2, len(mems))
	assert.Equal(t, program.Instructions[1], Instruction[F](selects[0]))
	assert.Equal(t, program.Instructions[3], Instruction[F](selects[1]))
	assert.Equal(t, WRITE, mems[0].Kind)
	assert.Equal(t, READ, mems[1].Kind)
	assert.Equal(t, 0, len(Extract[*SelectInstr[F]](NewProgram[F]())))
}

func Test_Instruction_String(t *testing.T) {
	assert.Equal(t, "@1, @2 = select(@0, @3, @4) x(1, 0)", NewSelect[F](1, 0, 0, 1, 2, 3, 4).String())
	assert.Equal(t, "write @5 = 7 x(2)", NewMem(WRITE, 2, 5, u(7)).String())
}

func Test_FixedLog2Rows(t *testing.T) {
	program := NewProgram[F]()
	record := NewExecutionRecord[F]()
	//
	assert.True(t, program.FixedLog2Rows("Select").IsEmpty())
	assert.True(t, record.FixedLog2Rows("Select").IsEmpty())
	//
	program.Fixed["Select"] = 3
	//
	assert.Equal(t, uint(3), program.FixedLog2Rows("Select").Unwrap())
	assert.True(t, record.FixedLog2Rows("Select").IsEmpty())
}

func Test_RandomSelectProgram(t *testing.T) {
	program := RandomSelectProgram[F](10, rand.New(rand.NewPCG(1, 2)))
	//
	assert.Equal(t, 60, len(program.Instructions))
	assert.Equal(t, 10, len(Extract[*SelectInstr[F]](program)))
	assert.Equal(t, 50, len(Extract[*MemInstr[F]](program)))
	// Outputs read back match a selection of the inputs written.
	for i := range 10 {
		var (
			bit   = program.Instructions[6*i].(*MemInstr[F]).Val
			in1   = program.Instructions[6*i+1].(*MemInstr[F]).Val
			in2   = program.Instructions[6*i+2].(*MemInstr[F]).Val
			read1 = program.Instructions[6*i+4].(*MemInstr[F])
		)
		//
		out1, _ := Select(bit, in1, in2)
		assert.True(t, bit.IsZero() || bit.IsOne())
		assert.Equivalent(t, out1, read1.Val)
		assert.Equal(t, READ, read1.Kind)
	}
}
