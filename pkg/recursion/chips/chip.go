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
package chips

import (
	"fmt"

	"github.com/consensys/go-recursion/pkg/air"
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util"
	"github.com/consensys/go-recursion/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// MachineAir captures the arithmetization of one kind of instruction.  A chip
// determines the layout of its traces, how they are generated from a program
// and its execution record, and the constraints they must satisfy.
type MachineAir[F field.Element[F]] interface {
	// Name of this chip, which is also used to identify any fixed trace size.
	Name() string
	// Width returns the number of columns in the main trace.
	Width() uint
	// ColumnNames returns the name of each column in the main trace.
	ColumnNames() []string
	// PreprocessedWidth returns the number of columns in the preprocessed
	// trace.
	PreprocessedWidth() uint
	// PreprocessedColumnNames returns the name of each column in the
	// preprocessed trace.
	PreprocessedColumnNames() []string
	// PreprocessedRealRows returns the number of real (i.e. non-padding) rows
	// in the preprocessed trace for a given program.
	PreprocessedRealRows(program *recursion.Program[F]) uint
	// PreprocessedNumRows returns the height of the preprocessed trace for a
	// given program, where n is the number of real rows.
	PreprocessedNumRows(program *recursion.Program[F], n uint) uint
	// GeneratePreprocessedTrace generates the preprocessed trace for a given
	// program.
	GeneratePreprocessedTrace(program *recursion.Program[F]) *trace.RowMajor[F]
	// NumRows returns the height of the main trace for a given record.
	NumRows(record *recursion.ExecutionRecord[F]) uint
	// RealRows returns the number of real (i.e. non-padding) rows in the main
	// trace for a given record.
	RealRows(record *recursion.ExecutionRecord[F]) uint
	// GenerateTrace generates the main trace for a given record.  Any events
	// this chip induces in other chips are added to output.
	GenerateTrace(input *recursion.ExecutionRecord[F], output *recursion.ExecutionRecord[F]) *trace.RowMajor[F]
	// GenerateDependencies adds to output any events this chip induces in
	// other chips.
	GenerateDependencies(input *recursion.ExecutionRecord[F], output *recursion.ExecutionRecord[F])
	// Included determines whether this chip participates in a given record.
	Included(record *recursion.ExecutionRecord[F]) bool
	// LocalOnly indicates this chip's trace depends only upon its own events.
	LocalOnly() bool
	// Eval evaluates the constraints of this chip on a given row of its main
	// and preprocessed traces.
	Eval(checker *air.Checker[F], main []F, preprocessed []F)
	// Symbolic describes the constraints of this chip symbolically.
	Symbolic() *air.Symbolic
}

// Config determines how traces are populated.
type Config struct {
	// Populate rows using multiple go-routines.
	Parallel bool
	// Number of rows populated by each go-routine.
	ChunkSize uint
}

// DefaultConfig returns the default trace population configuration.
func DefaultConfig() Config {
	return Config{Parallel: true, ChunkSize: 1024}
}

// Populate allocates a zeroed trace of the given dimensions, and then fills row
// i using the ith item.  Rows beyond the number of items remain zero (i.e.
// padding).  Panics if there are more items than rows, since this indicates
// the trace size was fixed too small.
func Populate[T any, F field.Element[F]](name string, cfg Config, items []T, height uint, width uint,
	fn func(row []F, item T)) *trace.RowMajor[F] {
	//
	var (
		stats  = util.NewPerfStats()
		matrix = trace.NewZeroRowMajor[F](height, width)
		n      = uint(len(items))
	)
	//
	if n > height {
		panic(fmt.Errorf("%w (chip %s has %d rows, only %d allocated)", ErrFixedRowsTooSmall, name, n, height))
	}
	//
	chunk := func(start, end uint) {
		for i := start; i < end; i++ {
			fn(matrix.Row(i), items[i])
		}
	}
	//
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	//
	if cfg.Parallel {
		util.ParChunks(n, cfg.ChunkSize, chunk)
	} else {
		util.SeqChunks(n, cfg.ChunkSize, chunk)
	}
	//
	log.Debugf("populated %d of %d rows (width %d) for %s", n, height, width, name)
	stats.Log(name + " trace population")
	//
	return matrix
}
