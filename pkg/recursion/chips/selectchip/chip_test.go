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
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-recursion/pkg/air"
	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util/assert"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
)

type F = babybear.Element

var _ chips.MachineAir[F] = (*Chip[F])(nil)

func u(val uint64) F {
	return field.Uint64[F](val)
}

func event(bit, in1, in2 uint64) recursion.SelectIo[F] {
	out1, out2 := recursion.Select(u(bit), u(in1), u(in2))
	return recursion.SelectIo[F]{Bit: u(bit), Out1: out1, Out2: out2, In1: u(in1), In2: u(in2)}
}

func row(values ...uint64) []F {
	row := make([]F, len(values))
	for i, v := range values {
		row[i] = u(v)
	}
	//
	return row
}

// ============================================================================
// Layout
// ============================================================================

func Test_Select_Widths(t *testing.T) {
	chip := New[F](chips.DefaultConfig())
	//
	assert.Equal(t, uint(5), chip.Width())
	assert.Equal(t, uint(8), chip.PreprocessedWidth())
	assert.Equal(t, len(chip.ColumnNames()), int(chip.Width()))
	assert.Equal(t, len(chip.PreprocessedColumnNames()), int(chip.PreprocessedWidth()))
	assert.Equal(t, []string{"is_real", "addr_bit", "addr_out1", "addr_out2", "addr_in1", "addr_in2", "mult1",
		"mult2"}, chip.PreprocessedColumnNames())
}

func Test_Select_ReadWrite(t *testing.T) {
	var (
		cols   = SelectPreprocessedCols[uint8]{1, recursion.SelectIo[recursion.Address[uint8]]{}, 7, 8}
		buffer = make([]uint8, NUM_SELECT_PREPROCESSED_COLS)
	)
	//
	cols.Addrs.Bit.Index, cols.Addrs.In2.Index = 2, 6
	cols.Write(buffer)
	assert.Equal(t, []uint8{1, 2, 0, 0, 0, 6, 7, 8}, buffer)
	assert.Equal(t, cols, ReadSelectPreprocessedCols(buffer))
	assert.Panics(t, func() { ReadSelectCols(buffer) })
}

// ============================================================================
// Trace generation
// ============================================================================

// Two SELECT instructions, one taken and one not.
func Test_Select_EndToEnd(t *testing.T) {
	var (
		chip    = New[F](chips.DefaultConfig())
		program = recursion.NewProgram[F](
			recursion.NewSelect[F](1, 1, 0, 1, 2, 3, 4),
			recursion.NewSelect[F](1, 1, 5, 6, 7, 8, 9))
		record = recursion.NewExecutionRecord[F]()
	)
	//
	record.SelectEvents = []recursion.SelectIo[F]{event(1, 3, 5), event(0, 5, 3)}
	//
	prep := chip.GeneratePreprocessedTrace(program)
	assert.Equal(t, uint(2), prep.Height())
	assert.Equal(t, row(1, 0, 1, 2, 3, 4, 1, 1), prep.Row(0))
	assert.Equal(t, row(1, 5, 6, 7, 8, 9, 1, 1), prep.Row(1))
	//
	main := chip.GenerateTrace(record, recursion.NewExecutionRecord[F]())
	assert.Equal(t, uint(2), main.Height())
	assert.Equal(t, row(1, 5, 3, 3, 5), main.Row(0))
	assert.Equal(t, row(0, 5, 3, 5, 3), main.Row(1))
	//
	assert.Equal(t, 0, len(evalAll(t, chip, main, prep)))
}

func Test_Select_EmptyProgram(t *testing.T) {
	var (
		chip    = New[F](chips.DefaultConfig())
		program = recursion.NewProgram[F]()
		record  = recursion.NewExecutionRecord[F]()
	)
	//
	prep := chip.GeneratePreprocessedTrace(program)
	main := chip.GenerateTrace(record, record)
	//
	assert.Equal(t, uint(1), prep.Height())
	assert.Equal(t, uint(1), main.Height())
	assert.Equal(t, make([]F, NUM_SELECT_PREPROCESSED_COLS), prep.Row(0))
	assert.Equal(t, make([]F, NUM_SELECT_COLS), main.Row(0))
}

func Test_Select_Padding(t *testing.T) {
	var (
		chip    = New[F](chips.DefaultConfig())
		program = randomProgram(5)
		record  = randomRecord(5)
	)
	//
	prep := chip.GeneratePreprocessedTrace(program)
	main := chip.GenerateTrace(record, record)
	//
	assert.Equal(t, uint(8), prep.Height())
	assert.Equal(t, uint(8), main.Height())
	//
	for i := uint(5); i < 8; i++ {
		assert.Equal(t, make([]F, NUM_SELECT_PREPROCESSED_COLS), prep.Row(i))
		assert.Equal(t, make([]F, NUM_SELECT_COLS), main.Row(i))
	}
}

func Test_Select_RowCounts(t *testing.T) {
	chip := New[F](chips.DefaultConfig())
	//
	for _, tc := range []struct{ n, rows uint }{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {1023, 1024},
		{1024, 1024}, {1025, 2048}} {
		var (
			program = randomProgram(tc.n)
			record  = randomRecord(tc.n)
		)
		//
		assert.Equal(t, tc.rows, chip.PreprocessedNumRows(program, tc.n))
		assert.Equal(t, tc.rows, chip.NumRows(record))
		assert.Equal(t, tc.rows, chip.GeneratePreprocessedTrace(program).Height())
		assert.Equal(t, tc.rows, chip.GenerateTrace(record, record).Height())
	}
}

func Test_Select_FixedRows(t *testing.T) {
	var (
		chip    = New[F](chips.DefaultConfig())
		program = randomProgram(3)
		record  = randomRecord(3)
	)
	//
	program.Fixed[NAME] = 4
	record.Fixed[NAME] = 4
	// Override applies regardless of n
	assert.Equal(t, uint(16), chip.PreprocessedNumRows(program, 0))
	assert.Equal(t, uint(16), chip.PreprocessedNumRows(program, 3))
	assert.Equal(t, uint(16), chip.GeneratePreprocessedTrace(program).Height())
	assert.Equal(t, uint(16), chip.GenerateTrace(record, record).Height())
	// Override too small
	program.Fixed[NAME] = 1
	record.Fixed[NAME] = 1
	//
	assert.Panics(t, func() { chip.GeneratePreprocessedTrace(program) })
	assert.Panics(t, func() { chip.GenerateTrace(record, record) })
}

func Test_Select_Alignment(t *testing.T) {
	var (
		chip    = New[F](chips.DefaultConfig())
		program = randomProgram(37)
		record  = randomRecord(37)
	)
	//
	prep := chip.GeneratePreprocessedTrace(program)
	main := chip.GenerateTrace(record, record)
	instrs := ExtractSelectInstrs(program)
	//
	for i := range 37 {
		var (
			p = ReadSelectPreprocessedCols(prep.Row(uint(i)))
			m = ReadSelectCols(main.Row(uint(i)))
		)
		//
		assert.True(t, p.IsReal.IsOne())
		assert.Equal(t, instrs[i].Addrs, p.Addrs)
		assert.Equal(t, instrs[i].Mult1, p.Mult1)
		assert.Equal(t, instrs[i].Mult2, p.Mult2)
		assert.Equal(t, record.SelectEvents[i], m.Vals)
	}
}

func Test_Select_ParallelSequential(t *testing.T) {
	var (
		program = randomProgram(1000)
		record  = randomRecord(1000)
		seq     = New[F](chips.Config{Parallel: false, ChunkSize: 1024})
		expPrep = seq.GeneratePreprocessedTrace(program)
		expMain = seq.GenerateTrace(record, record)
	)
	//
	for _, size := range []uint{1, 3, 64, 1000, 4096} {
		par := New[F](chips.Config{Parallel: true, ChunkSize: size})
		prep := par.GeneratePreprocessedTrace(program)
		main := par.GenerateTrace(record, record)
		//
		assert.True(t, expPrep.Equals(prep), "chunk size", size)
		assert.True(t, expMain.Equals(main), "chunk size", size)
		assert.Equal(t, expPrep.Digest(), prep.Digest())
		assert.Equal(t, expMain.Digest(), main.Digest())
	}
}

// ============================================================================
// Constraints
// ============================================================================

func Test_Select_Correctness(t *testing.T) {
	var (
		chip = New[F](chips.DefaultConfig())
		prep = row(1, 0, 1, 2, 3, 4, 1, 1)
	)
	// bit, out1, out2, in1, in2
	for _, tc := range []struct {
		main     []F
		failures []string
	}{
		{row(0, 7, 9, 7, 9), nil},
		{row(1, 9, 7, 7, 9), nil},
		{row(0, 9, 7, 7, 9), []string{"out1", "out2"}},
		{row(1, 7, 9, 7, 9), []string{"out1", "out2"}},
		{row(1, 9, 9, 7, 9), []string{"out2"}},
		{row(0, 7, 7, 7, 9), []string{"out2"}},
		{row(1, 7, 7, 7, 9), []string{"out1"}},
		{row(0, 0, 0, 0, 0), nil},
		{row(1, 5, 5, 5, 5), nil},
	} {
		checker := air.NewChecker[F](NAME, bus.NewAccumulator[F]())
		chip.Eval(checker, tc.main, prep)
		//
		var handles []string
		for _, f := range checker.Failures() {
			handles = append(handles, f.Handle)
		}
		//
		assert.Equal(t, tc.failures, handles, tc.main)
	}
}

// A non-boolean bit is not rejected by the constraints.
func Test_Select_NonBooleanBit(t *testing.T) {
	var (
		chip       = New[F](chips.DefaultConfig())
		prep       = row(1, 0, 1, 2, 3, 4, 1, 1)
		out1, out2 = recursion.Select(u(2), u(7), u(9))
		main       = []F{u(2), out1, out2, u(7), u(9)}
		checker    = air.NewChecker[F](NAME, bus.NewAccumulator[F]())
	)
	//
	chip.Eval(checker, main, prep)
	assert.Equal(t, 0, len(checker.Failures()))
}

func Test_Select_Interactions(t *testing.T) {
	var (
		recorder bus.Recorder[F]
		local    = ReadSelectCols(row(1, 5, 3, 3, 5))
		prep     = ReadSelectPreprocessedCols(row(1, 0, 1, 2, 3, 4, 2, 0))
		checker  = air.NewChecker[F](NAME, &recorder)
	)
	//
	Eval[F](checker, local, prep)
	//
	assert.Equal(t, []bus.Interaction[F]{
		{Kind: bus.RECEIVE, Message: bus.NewMessage(u(0), u(1), u(1))},
		{Kind: bus.RECEIVE, Message: bus.NewMessage(u(3), u(3), u(1))},
		{Kind: bus.RECEIVE, Message: bus.NewMessage(u(4), u(5), u(1))},
		{Kind: bus.SEND, Message: bus.NewMessage(u(1), u(5), u(2))},
		{Kind: bus.SEND, Message: bus.NewMessage(u(2), u(3), u(0))},
	}, recorder.Interactions)
}

func Test_Select_PaddingSoundness(t *testing.T) {
	var (
		recorder bus.Recorder[F]
		acc      = bus.NewAccumulator[F]()
		chip     = New[F](chips.DefaultConfig())
		zeroMain = make([]F, NUM_SELECT_COLS)
		zeroPrep = make([]F, NUM_SELECT_PREPROCESSED_COLS)
	)
	//
	checker := air.NewChecker[F](NAME, &recorder)
	chip.Eval(checker, zeroMain, zeroPrep)
	assert.Equal(t, 0, len(checker.Failures()))
	assert.Equal(t, 5, len(recorder.Interactions))
	//
	for _, i := range recorder.Interactions {
		assert.True(t, i.Message.Multiplicity.IsZero())
	}
	//
	checker = air.NewChecker[F](NAME, acc)
	chip.Eval(checker, zeroMain, zeroPrep)
	assert.Equal(t, uint(0), acc.Count())
}

func Test_Select_Symbolic(t *testing.T) {
	var (
		chip        = New[F](chips.DefaultConfig())
		builder     = chip.Symbolic()
		constraints = builder.Constraints()
	)
	//
	assert.Equal(t, 2, len(constraints))
	assert.Equal(t, "(vanish out1 (- out1 (+ (* bit in2) (* (- 1 bit) in1))))", constraints[0].Lisp().String(true))
	assert.Equal(t, "(vanish out2 (- out2 (+ (* bit in1) (* (- 1 bit) in2))))", constraints[1].Lisp().String(true))
	assert.Equal(t, uint(2), builder.MaxDegree())
	assert.Equal(t, 5, len(builder.Interactions))
	assert.Equal(t, "prep.is_real", builder.Interactions[0].Message.Multiplicity.Lisp().String(true))
	assert.Equal(t, "prep.mult2", builder.Interactions[4].Message.Multiplicity.Lisp().String(true))
}

// Constraints evaluated symbolically agree with those evaluated concretely.
func Test_Select_SymbolicAgrees(t *testing.T) {
	var (
		chip        = New[F](chips.DefaultConfig())
		constraints = chip.Symbolic().Constraints()
		rng         = rand.New(rand.NewPCG(1, 2))
	)
	//
	for range 100 {
		var (
			main    = row(rng.Uint64N(3), rng.Uint64N(4), rng.Uint64N(4), rng.Uint64N(4), rng.Uint64N(4))
			prep    = row(1, 0, 1, 2, 3, 4, 1, 1)
			checker = air.NewChecker[F](NAME, bus.NewAccumulator[F]())
			holds   = 0
		)
		//
		chip.Eval(checker, main, prep)
		//
		for _, c := range constraints {
			if air.Eval(c.Term, air.Row[F]{Main: main, Preprocessed: prep}).IsZero() {
				holds++
			}
		}
		//
		assert.Equal(t, len(constraints)-holds, len(checker.Failures()))
	}
}

// ============================================================================
// Helpers
// ============================================================================

func evalAll(t *testing.T, chip *Chip[F], main, prep *trace.RowMajor[F]) []air.Failure {
	t.Helper()
	//
	checker := air.NewChecker[F](NAME, bus.NewAccumulator[F]())
	//
	for i := range main.Height() {
		checker.SetRow(i)
		chip.Eval(checker, main.Row(i), prep.Row(i))
	}
	//
	return checker.Failures()
}

func randomProgram(n uint) *recursion.Program[F] {
	var (
		rng    = rand.New(rand.NewPCG(uint64(n), 0))
		instrs = make([]recursion.Instruction[F], n)
	)
	//
	for i := range instrs {
		base := uint64(i) * 5
		instrs[i] = recursion.NewSelect[F](rng.Uint64N(3), rng.Uint64N(3), base, base+1, base+2, base+3, base+4)
	}
	//
	return recursion.NewProgram(instrs...)
}

func randomRecord(n uint) *recursion.ExecutionRecord[F] {
	var (
		rng    = rand.New(rand.NewPCG(uint64(n), 1))
		record = recursion.NewExecutionRecord[F]()
	)
	//
	for range n {
		record.SelectEvents = append(record.SelectEvents, event(rng.Uint64N(2), rng.Uint64()%(1<<30),
			rng.Uint64()%(1<<30)))
	}
	//
	return record
}
