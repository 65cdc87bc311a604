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
	"github.com/consensys/go-recursion/pkg/util"
	"github.com/consensys/go-recursion/pkg/util/field"
)

// FixedRows maps chip names to a fixed trace size (given as a power of two),
// thereby overriding the size which would otherwise be determined by the
// number of rows in the chip's trace.  This allows a deployment to pin the
// shape of a chip's trace, for example so that traces can be batched
// uniformly.
type FixedRows map[string]uint

// FixedLog2Rows returns the fixed log2 size for a given chip (if any).
func (p FixedRows) FixedLog2Rows(chip string) util.Option[uint] {
	if log2, ok := p[chip]; ok {
		return util.Some(log2)
	}
	//
	return util.None[uint]()
}

// Program is a compiled recursion program, consisting of an ordered list of
// instructions.
type Program[F field.Element[F]] struct {
	Instructions []Instruction[F]
	// Fixed trace sizes for the preprocessed traces of chips.
	Fixed FixedRows
}

// NewProgram constructs a program from a given list of instructions.
func NewProgram[F field.Element[F]](instructions ...Instruction[F]) *Program[F] {
	return &Program[F]{instructions, make(FixedRows)}
}

// FixedLog2Rows returns the fixed log2 size of a given chip's preprocessed
// trace (if any).
func (p *Program[F]) FixedLog2Rows(chip string) util.Option[uint] {
	return p.Fixed.FixedLog2Rows(chip)
}

// ExecutionRecord holds the events generated by executing a program.  Events
// are held in the order they arose, which for every chip matches the program
// order of the corresponding instructions.
type ExecutionRecord[F field.Element[F]] struct {
	// Runtime values for each SELECT executed.
	SelectEvents []SelectIo[F]
	// Number of memory instructions executed.
	MemConstCount uint
	// Fixed trace sizes for the main traces of chips.
	Fixed FixedRows
}

// NewExecutionRecord constructs an empty execution record.
func NewExecutionRecord[F field.Element[F]]() *ExecutionRecord[F] {
	return &ExecutionRecord[F]{Fixed: make(FixedRows)}
}

// FixedLog2Rows returns the fixed log2 size of a given chip's main trace (if
// any).
func (p *ExecutionRecord[F]) FixedLog2Rows(chip string) util.Option[uint] {
	return p.Fixed.FixedLog2Rows(chip)
}
