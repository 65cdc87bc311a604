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
package memconst

import (
	"github.com/consensys/go-recursion/pkg/air"
	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util/field"
)

// NAME of the memory constant chip.
const NAME = "MemoryConst"

// NUM_MEM_COLS is the width of the main trace.
var NUM_MEM_COLS = uint(len(new(MemoryCols[uint8]).Columns()))

// NUM_MEM_PREPROCESSED_COLS is the width of the preprocessed trace.
var NUM_MEM_PREPROCESSED_COLS = uint(len(new(MemoryPreprocessedCols[uint8]).Columns()))

// MemoryCols is the layout of a row in the main trace.  Since memory constants
// are fixed by the program, the main trace carries no information.
type MemoryCols[T any] struct {
	Nothing T
}

// Columns returns a pointer to each column, in layout order.
func (p *MemoryCols[T]) Columns() []*T {
	return []*T{&p.Nothing}
}

// MemoryPreprocessedCols is the layout of a row in the preprocessed trace.  A
// write supplies its value to the bus, whilst a read demands it.
type MemoryPreprocessedCols[T any] struct {
	Addr      recursion.Address[T]
	Val       T
	WriteMult T
	ReadMult  T
}

// Columns returns a pointer to each column, in layout order.
func (p *MemoryPreprocessedCols[T]) Columns() []*T {
	return []*T{&p.Addr.Index, &p.Val, &p.WriteMult, &p.ReadMult}
}

// Chip arithmetizes the memory instructions which write constants into memory
// (i.e. the initial values of the computation) and read constants from memory
// (i.e. check its results).
type Chip[F field.Element[F]] struct {
	cfg chips.Config
}

// New constructs a memory constant chip with a given population configuration.
func New[F field.Element[F]](cfg chips.Config) *Chip[F] {
	return &Chip[F]{cfg}
}

// Name implementation for the MachineAir interface.
func (p *Chip[F]) Name() string { return NAME }

// Width implementation for the MachineAir interface.
func (p *Chip[F]) Width() uint { return NUM_MEM_COLS }

// ColumnNames implementation for the MachineAir interface.
func (p *Chip[F]) ColumnNames() []string { return []string{"nothing"} }

// PreprocessedWidth implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedWidth() uint { return NUM_MEM_PREPROCESSED_COLS }

// PreprocessedColumnNames implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedColumnNames() []string {
	return []string{"addr", "val", "write_mult", "read_mult"}
}

// PreprocessedRealRows implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedRealRows(program *recursion.Program[F]) uint {
	return uint(len(recursion.Extract[*recursion.MemInstr[F]](program)))
}

// PreprocessedNumRows implementation for the MachineAir interface.
func (p *Chip[F]) PreprocessedNumRows(program *recursion.Program[F], n uint) uint {
	return chips.NextPowerOfTwo(n, program.FixedLog2Rows(NAME))
}

// GeneratePreprocessedTrace implementation for the MachineAir interface.
func (p *Chip[F]) GeneratePreprocessedTrace(program *recursion.Program[F]) *trace.RowMajor[F] {
	var (
		instrs = recursion.Extract[*recursion.MemInstr[F]](program)
		height = p.PreprocessedNumRows(program, uint(len(instrs)))
	)
	//
	return chips.Populate(NAME+" (preprocessed)", p.cfg, instrs, height, NUM_MEM_PREPROCESSED_COLS,
		func(row []F, instr *recursion.MemInstr[F]) {
			cols := MemoryPreprocessedCols[F]{Addr: instr.Addr, Val: instr.Val}
			//
			if instr.Kind == recursion.WRITE {
				cols.WriteMult = instr.Mult
			} else {
				cols.ReadMult = instr.Mult
			}
			//
			chips.Store(row, cols.Columns())
		})
}

// NumRows implementation for the MachineAir interface.
func (p *Chip[F]) NumRows(record *recursion.ExecutionRecord[F]) uint {
	return chips.NextPowerOfTwo(p.RealRows(record), record.FixedLog2Rows(NAME))
}

// RealRows implementation for the MachineAir interface.
func (p *Chip[F]) RealRows(record *recursion.ExecutionRecord[F]) uint {
	return record.MemConstCount
}

// GenerateTrace implementation for the MachineAir interface.  Every row is
// zero.
func (p *Chip[F]) GenerateTrace(input *recursion.ExecutionRecord[F],
	_ *recursion.ExecutionRecord[F]) *trace.RowMajor[F] {
	//
	return chips.Populate(NAME, p.cfg, []struct{}{}, p.NumRows(input), NUM_MEM_COLS,
		func(row []F, _ struct{}) {})
}

// GenerateDependencies implementation for the MachineAir interface.
func (p *Chip[F]) GenerateDependencies(_ *recursion.ExecutionRecord[F], _ *recursion.ExecutionRecord[F]) {
	// This is a no-op.
}

// Included implementation for the MachineAir interface.
func (p *Chip[F]) Included(_ *recursion.ExecutionRecord[F]) bool { return true }

// LocalOnly implementation for the MachineAir interface.
func (p *Chip[F]) LocalOnly() bool { return true }

// Eval implementation for the MachineAir interface.
func (p *Chip[F]) Eval(checker *air.Checker[F], _ []F, preprocessed []F) {
	var prep MemoryPreprocessedCols[F]
	//
	chips.Load(preprocessed, prep.Columns())
	Eval[F](checker, prep)
}

// Symbolic implementation for the MachineAir interface.
func (p *Chip[F]) Symbolic() *air.Symbolic {
	var (
		builder = air.NewSymbolic()
		prep    MemoryPreprocessedCols[air.Term]
	)
	//
	chips.Load(air.Columns(p.PreprocessedColumnNames(), true), prep.Columns())
	Eval[air.Term](builder, prep)
	//
	return builder
}

// Eval describes the bus interactions of a single row.
func Eval[V any](builder air.Builder[V], prep MemoryPreprocessedCols[V]) {
	builder.Send(bus.NewMessage(prep.Addr.Index, prep.Val, prep.WriteMult))
	builder.Receive(bus.NewMessage(prep.Addr.Index, prep.Val, prep.ReadMult))
}
