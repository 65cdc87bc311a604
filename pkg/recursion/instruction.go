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
	"fmt"

	"github.com/consensys/go-recursion/pkg/util/field"
)

// Instruction represents a single static instruction of a recursion program.
// Each kind of instruction is arithmetized by its own chip, which extracts the
// instructions of its kind from the program.
type Instruction[F field.Element[F]] interface {
	fmt.Stringer
	// Prevent instructions being declared outside this package.
	instruction()
}

// MemAccessKind determines whether a memory instruction writes a constant into
// memory, or reads (i.e. checks) a constant from memory.
type MemAccessKind uint8

const (
	// READ checks that a memory cell holds a given constant.
	READ MemAccessKind = iota
	// WRITE initialises a memory cell with a given constant.
	WRITE
)

func (k MemAccessKind) String() string {
	if k == WRITE {
		return "write"
	}
	//
	return "read"
}

// MemInstr either writes a constant into a memory cell, or reads (i.e. checks)
// the constant held in a memory cell.  The multiplicity of a write determines
// how many times the written value is supplied to the memory bus (i.e. how
// many times it is subsequently read), whilst the multiplicity of a read
// determines how many times it is demanded.
type MemInstr[F field.Element[F]] struct {
	Addr Address[F]
	Val  F
	Mult F
	Kind MemAccessKind
}

// NewMem constructs a memory instruction for a single memory cell.
func NewMem[F field.Element[F]](kind MemAccessKind, mult uint64, address uint64, val F) *MemInstr[F] {
	return &MemInstr[F]{
		Addr: addr[F](address),
		Val:  val,
		Mult: field.Uint64[F](mult),
		Kind: kind,
	}
}

func (p *MemInstr[F]) instruction() {}

func (p *MemInstr[F]) String() string {
	return fmt.Sprintf("%s %s = %s x(%s)", p.Kind, p.Addr, p.Val, p.Mult)
}

// Extract returns every instruction of a given kind within a program, in
// program order.
func Extract[I Instruction[F], F field.Element[F]](program *Program[F]) []I {
	var instrs []I
	//
	for _, instr := range program.Instructions {
		if ith, ok := instr.(I); ok {
			instrs = append(instrs, ith)
		}
	}
	//
	return instrs
}
