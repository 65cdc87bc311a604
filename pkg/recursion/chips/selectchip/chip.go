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
package selectchip

import (
	"github.com/consensys/go-recursion/pkg/air"
	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util/field"
)

// NAME of the SELECT chip.
const NAME = "Select"

// Chip arithmetizes the SELECT instruction, which conditionally swaps a pair
// of values.  Each SELECT instruction in the program occupies one row of the
// preprocessed trace, and each SELECT executed occupies one row of the main
// trace.  These are aligned, such that row i of both traces describes the
// same occurrence.
type Chip[F field.Element[F]] struct {
	cfg chips.Config
}

// New constructs a SELECT chip with a given population configuration.
func New[F field.Element[F]](cfg chips.Config) *Chip[F] {
	return &Chip[F]{cfg}
}

// Name implementation for the MachineAir interface.
func (p *Chip[F]) Name() string {
	return NAME
}

// Width implementation for the MachineAir interface.
func (p *Chip[F]) Width() uint {
	return NUM_SELECT_COLS
}

// ColumnNames implementation for the MachineAir interface.
func (p *Chip[F]) ColumnNames() []string {
	return columnNames()
}

// PreprocessedWidth implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedWidth() uint {
	return NUM_SELECT_PREPROCESSED_COLS
}

// PreprocessedColumnNames implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedColumnNames() []string {
	return preprocessedColumnNames()
}

// PreprocessedRealRows implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedRealRows(program *recursion.Program[F]) uint {
	return uint(len(ExtractSelectInstrs(program)))
}

// PreprocessedNumRows implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedNumRows(program *recursion.Program[F], n uint) uint {
	return chips.NextPowerOfTwo(n, program.FixedLog2Rows(NAME))
}

// GeneratePreprocessedTrace implementation for the MachineAir interface.  Row
// i holds the addresses and multiplicities of the ith SELECT instruction.
func (p *Chip[F]) GeneratePreprocessedTrace(program *recursion.Program[F]) *trace.RowMajor[F] {
	var (
		instrs = ExtractSelectInstrs(program)
		height = p.PreprocessedNumRows(program, uint(len(instrs)))
	)
	//
	return chips.Populate(NAME+" (preprocessed)", p.cfg, instrs, height, NUM_SELECT_PREPROCESSED_COLS,
		func(row []F, instr *recursion.SelectInstr[F]) {
			cols := SelectPreprocessedCols[F]{
				IsReal: field.One[F](),
				Addrs:  instr.Addrs,
				Mult1:  instr.Mult1,
				Mult2:  instr.Mult2,
			}
			cols.Write(row)
		})
}

// NumRows implementation for the MachineAir interface.
func (p *Chip[F]) NumRows(record *recursion.ExecutionRecord[F]) uint {
	return chips.NextPowerOfTwo(p.RealRows(record), record.FixedLog2Rows(NAME))
}

// RealRows implementation for the MachineAir interface.
func (p *Chip[F]) RealRows(record *recursion.ExecutionRecord[F]) uint {
	return uint(len(record.SelectEvents))
}

// GenerateTrace implementation for the MachineAir interface.  Row i holds the
// values of the ith SELECT event, as is.
func (p *Chip[F]) GenerateTrace(input *recursion.ExecutionRecord[F],
	_ *recursion.ExecutionRecord[F]) *trace.RowMajor[F] {
	return chips.Populate(NAME, p.cfg, input.SelectEvents, p.NumRows(input), NUM_SELECT_COLS,
		func(row []F, event recursion.SelectIo[F]) {
			SelectCols[F]{Vals: event}.Write(row)
		})
}

// GenerateDependencies implementation for the MachineAir interface.  A SELECT
// induces no events in other chips.
func (p *Chip[F]) GenerateDependencies(_ *recursion.ExecutionRecord[F], _ *recursion.ExecutionRecord[F]) {
	// This is a no-op.
}

// Included implementation for the MachineAir interface.
func (p *Chip[F]) Included(_ *recursion.ExecutionRecord[F]) bool {
	return true
}

// LocalOnly implementation for the MachineAir interface.
func (p *Chip[F]) LocalOnly() bool {
	return true
}

// Eval implementation for the MachineAir interface.
func (p *Chip[F]) Eval(checker *air.Checker[F], main []F, preprocessed []F) {
	Eval[F](checker, ReadSelectCols(main), ReadSelectPreprocessedCols(preprocessed))
}

// Symbolic implementation for the MachineAir interface.
func (p *Chip[F]) Symbolic() *air.Symbolic {
	var (
		builder = air.NewSymbolic()
		local   = ReadSelectCols(air.Columns(columnNames(), false))
		prep    = ReadSelectPreprocessedCols(air.Columns(preprocessedColumnNames(), true))
	)
	//
	Eval[air.Term](builder, local, prep)
	//
	return builder
}

// ExtractSelectInstrs returns the SELECT instructions of a given program, in
// program order.
func ExtractSelectInstrs[F field.Element[F]](program *recursion.Program[F]) []*recursion.SelectInstr[F] {
	return recursion.Extract[*recursion.SelectInstr[F]](program)
}

// Eval describes the constraints of a single row.  The operands are received
// from the memory bus (weighted by IsReal) and the outputs are sent back
// (weighted by their multiplicities), such that padding rows interact with
// nothing.  The outputs must then be the inputs, swapped when the bit is one.
//
// The bit is not itself constrained to be boolean.  Rather, it is received
// from memory and is assumed boolean wherever it was written.  For a
// non-boolean bit, the outputs still satisfy these equations but are not a
// selection of the inputs.
func Eval[V any](builder air.Builder[V], local SelectCols[V], prep SelectPreprocessedCols[V]) {
	var (
		vals   = local.Vals
		notBit = air.OneMinus(builder, vals.Bit)
	)
	//
	builder.Receive(bus.NewMessage(prep.Addrs.Bit.Index, vals.Bit, prep.IsReal))
	builder.Receive(bus.NewMessage(prep.Addrs.In1.Index, vals.In1, prep.IsReal))
	builder.Receive(bus.NewMessage(prep.Addrs.In2.Index, vals.In2, prep.IsReal))
	builder.Send(bus.NewMessage(prep.Addrs.Out1.Index, vals.Out1, prep.Mult1))
	builder.Send(bus.NewMessage(prep.Addrs.Out2.Index, vals.Out2, prep.Mult2))
	// out1 = bit*in2 + (1-bit)*in1
	air.AssertEq(builder, "out1", vals.Out1,
		builder.Add(builder.Mul(vals.Bit, vals.In2), builder.Mul(notBit, vals.In1)))
	// out2 = bit*in1 + (1-bit)*in2
	air.AssertEq(builder, "out2", vals.Out2,
		builder.Add(builder.Mul(vals.Bit, vals.In1), builder.Mul(notBit, vals.In2)))
}
