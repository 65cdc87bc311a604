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
package machine

import (
	"errors"
	"slices"

	"github.com/consensys/go-recursion/pkg/air"
	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
	"github.com/consensys/go-recursion/pkg/recursion/chips/memconst"
	"github.com/consensys/go-recursion/pkg/recursion/chips/selectchip"
	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Traces holds the traces generated for a single chip.
type Traces[F field.Element[F]] struct {
	Chip         chips.MachineAir[F]
	Main         *trace.RowMajor[F]
	Preprocessed *trace.RowMajor[F]
	// Number of real rows in the main trace.
	RealRows uint
	// Number of real rows in the preprocessed trace.
	PreprocessedRealRows uint
}

// Machine is a collection of chips which, together, arithmetize recursion
// programs.
type Machine[F field.Element[F]] struct {
	cfg   chips.Config
	chips []chips.MachineAir[F]
}

// New constructs a machine with the default set of chips.
func New[F field.Element[F]](cfg chips.Config) *Machine[F] {
	return NewWithChips(cfg, memconst.New[F](cfg), selectchip.New[F](cfg))
}

// NewWithChips constructs a machine from a given set of chips.
func NewWithChips[F field.Element[F]](cfg chips.Config, airs ...chips.MachineAir[F]) *Machine[F] {
	return &Machine[F]{cfg, airs}
}

// Chips returns the chips of this machine.
func (p *Machine[F]) Chips() []chips.MachineAir[F] {
	return p.chips
}

// Validate checks that any fixed trace sizes are large enough for the given
// program and record.
func (p *Machine[F]) Validate(program *recursion.Program[F], record *recursion.ExecutionRecord[F]) error {
	var errs []error
	//
	for _, chip := range p.chips {
		name := chip.Name()
		//
		errs = append(errs,
			chips.CheckFixedRows(name, chip.PreprocessedRealRows(program), program.FixedLog2Rows(name)),
			chips.CheckFixedRows(name, chip.RealRows(record), record.FixedLog2Rows(name)))
	}
	//
	return errors.Join(errs...)
}

// GenerateTraces generates the preprocessed and main traces of every chip
// included in the given record.
func (p *Machine[F]) GenerateTraces(program *recursion.Program[F], record *recursion.ExecutionRecord[F],
) []Traces[F] {
	var (
		stats  = util.NewPerfStats()
		traces []Traces[F]
		output = recursion.NewExecutionRecord[F]()
	)
	//
	for _, chip := range p.chips {
		if !chip.Included(record) {
			log.Debugf("chip %s not included", chip.Name())
			continue
		}
		//
		if !chip.LocalOnly() {
			chip.GenerateDependencies(record, output)
		}
		//
		t := Traces[F]{
			Chip:                 chip,
			Main:                 chip.GenerateTrace(record, output),
			Preprocessed:         chip.GeneratePreprocessedTrace(program),
			RealRows:             chip.RealRows(record),
			PreprocessedRealRows: chip.PreprocessedRealRows(program),
		}
		//
		log.Debugf("generated traces for %s (2^%d rows, %d real)", chip.Name(), math.Log2(t.Main.Height()),
			t.RealRows)
		//
		traces = append(traces, t)
	}
	//
	stats.Log("Trace generation")
	//
	return traces
}

// Report summarises the outcome of checking a set of traces.
type Report[F field.Element[F]] struct {
	// Constraints which failed, ordered by chip and then row.
	Failures []air.Failure
	// Bus entries which are not balanced.
	Imbalances []bus.Entry[F]
	// Number of interactions with non-zero multiplicity.
	Interactions uint
}

// Ok determines whether all constraints held and the bus was balanced.
func (p Report[F]) Ok() bool {
	return len(p.Failures) == 0 && len(p.Imbalances) == 0
}

// Check evaluates the constraints of every chip on every row of its traces,
// and accumulates all bus interactions to determine whether they balance.
// Where the main and preprocessed traces of a chip differ in height, the rows
// missing from the shorter trace are treated as zero.
func (p *Machine[F]) Check(traces []Traces[F]) Report[F] {
	var (
		stats    = util.NewPerfStats()
		acc      = bus.NewAccumulator[F]()
		failures []air.Failure
	)
	//
	for _, t := range traces {
		failures = append(failures, p.checkChip(t, acc)...)
	}
	//
	stats.Log("Constraint checking")
	//
	return Report[F]{failures, acc.Imbalances(), acc.Count()}
}

func (p *Machine[F]) checkChip(t Traces[F], acc *bus.Accumulator[F]) []air.Failure {
	var (
		height = max(t.Main.Height(), t.Preprocessed.Height())
		nchunk = (height + p.chunkSize() - 1) / p.chunkSize()
		// One accumulator and checker per chunk
		accs     = make([]*bus.Accumulator[F], nchunk)
		checkers = make([]*air.Checker[F], nchunk)
		failures []air.Failure
	)
	//
	check := func(start, end uint) {
		var (
			id      = start / p.chunkSize()
			main    = make([]F, t.Main.Width())
			prep    = make([]F, t.Preprocessed.Width())
			sink    = bus.NewAccumulator[F]()
			checker = air.NewChecker[F](t.Chip.Name(), sink)
		)
		//
		for row := start; row < end; row++ {
			copyRow(main, t.Main, row)
			copyRow(prep, t.Preprocessed, row)
			checker.SetRow(row)
			t.Chip.Eval(checker, main, prep)
		}
		//
		accs[id], checkers[id] = sink, checker
	}
	//
	if p.cfg.Parallel {
		util.ParChunks(height, p.chunkSize(), check)
	} else {
		util.SeqChunks(height, p.chunkSize(), check)
	}
	// Merge results in chunk order, hence failures are ordered by row.
	for i := range nchunk {
		acc.Merge(accs[i])
		failures = append(failures, checkers[i].Failures()...)
	}
	//
	log.Debugf("checked %d rows of %s (%d failures)", height, t.Chip.Name(), len(failures))
	//
	return failures
}

func (p *Machine[F]) chunkSize() uint {
	if p.cfg.ChunkSize == 0 {
		return chips.DefaultConfig().ChunkSize
	}
	//
	return p.cfg.ChunkSize
}

// Copy a given row of a matrix into a buffer, or zero the buffer if the row is
// beyond the end of the matrix.
func copyRow[F field.Element[F]](buffer []F, matrix *trace.RowMajor[F], row uint) {
	if row < matrix.Height() {
		copy(buffer, matrix.Row(row))
	} else {
		clear(buffer)
	}
}

// ChipNames returns the names of the given traces' chips, sorted.
func ChipNames[F field.Element[F]](traces []Traces[F]) []string {
	names := make([]string, len(traces))
	//
	for i, t := range traces {
		names[i] = t.Chip.Name()
	}
	//
	slices.Sort(names)
	//
	return names
}
