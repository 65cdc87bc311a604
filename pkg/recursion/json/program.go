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
package json

import (
	"fmt"
	"math/big"
	"os"

	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/segmentio/encoding/json"
)

const (
	// OP_MEM identifies a memory instruction.
	OP_MEM = "mem"
	// OP_SELECT identifies a SELECT instruction.
	OP_SELECT = "select"
)

// ProgramFile is the on-disk form of a recursion program.  For example,
// {"instructions": [{"op":"mem","kind":"write","addr":0,"val":1,"mult":1}]}
// is a program which writes 1 into the memory cell at address 0.
type ProgramFile struct {
	// Fixed log2 trace sizes, indexed by chip name.
	Fixed        map[string]uint   `json:"fixed,omitempty"`
	Instructions []InstructionFile `json:"instructions"`
}

// InstructionFile is the on-disk form of a single instruction.  Which fields
// are meaningful depends upon the op.
type InstructionFile struct {
	Op string `json:"op"`
	// Memory instructions
	Kind string   `json:"kind,omitempty"`
	Addr uint64   `json:"addr,omitempty"`
	Val  *big.Int `json:"val,omitempty"`
	Mult uint64   `json:"mult,omitempty"`
	// SELECT instructions
	Bit   uint64 `json:"bit,omitempty"`
	Out1  uint64 `json:"out1,omitempty"`
	Out2  uint64 `json:"out2,omitempty"`
	In1   uint64 `json:"in1,omitempty"`
	In2   uint64 `json:"in2,omitempty"`
	Mult1 uint64 `json:"mult1,omitempty"`
	Mult2 uint64 `json:"mult2,omitempty"`
}

// ReadProgramFile reads and parses a program from a given JSON file.
func ReadProgramFile[F field.Element[F]](filename string) (*recursion.Program[F], error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	program, err := FromBytes[F](bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return program, nil
}

// FromBytes parses a program expressed in JSON notation.
func FromBytes[F field.Element[F]](data []byte) (*recursion.Program[F], error) {
	var file ProgramFile
	//
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	//
	program := recursion.NewProgram[F]()
	//
	for i, insn := range file.Instructions {
		instr, err := fromInstructionFile[F](insn)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		//
		program.Instructions = append(program.Instructions, instr)
	}
	//
	for chip, log2 := range file.Fixed {
		program.Fixed[chip] = log2
	}
	//
	return program, nil
}

// ToBytes converts a program into JSON notation.  Addresses and
// multiplicities are written as integers, which requires they fit in 64 bits.
func ToBytes[F field.Element[F]](program *recursion.Program[F]) ([]byte, error) {
	var file = ProgramFile{Fixed: program.Fixed, Instructions: make([]InstructionFile, len(program.Instructions))}
	//
	for i, instr := range program.Instructions {
		switch instr := instr.(type) {
		case *recursion.MemInstr[F]:
			file.Instructions[i] = InstructionFile{
				Op:   OP_MEM,
				Kind: instr.Kind.String(),
				Addr: toUint64(instr.Addr.Index),
				Val:  field.ToBigInt(instr.Val),
				Mult: toUint64(instr.Mult),
			}
		case *recursion.SelectInstr[F]:
			file.Instructions[i] = InstructionFile{
				Op:    OP_SELECT,
				Bit:   toUint64(instr.Addrs.Bit.Index),
				Out1:  toUint64(instr.Addrs.Out1.Index),
				Out2:  toUint64(instr.Addrs.Out2.Index),
				In1:   toUint64(instr.Addrs.In1.Index),
				In2:   toUint64(instr.Addrs.In2.Index),
				Mult1: toUint64(instr.Mult1),
				Mult2: toUint64(instr.Mult2),
			}
		default:
			return nil, fmt.Errorf("unknown instruction %s", instr)
		}
	}
	//
	return json.MarshalIndent(file, "", " ")
}

func fromInstructionFile[F field.Element[F]](insn InstructionFile) (recursion.Instruction[F], error) {
	switch insn.Op {
	case OP_MEM:
		var kind recursion.MemAccessKind
		//
		switch insn.Kind {
		case "read":
			kind = recursion.READ
		case "write":
			kind = recursion.WRITE
		default:
			return nil, fmt.Errorf("unknown memory access \"%s\"", insn.Kind)
		}
		//
		if insn.Val == nil {
			return nil, fmt.Errorf("missing value")
		}
		//
		val, ok := field.FromBigInt[F](insn.Val)
		if !ok {
			return nil, fmt.Errorf("value %s out-of-bounds", insn.Val)
		}
		//
		if err := checkBounds[F]([]string{"addr", "mult"}, insn.Addr, insn.Mult); err != nil {
			return nil, err
		}
		//
		return recursion.NewMem(kind, insn.Mult, insn.Addr, val), nil
	case OP_SELECT:
		names := []string{"bit", "out1", "out2", "in1", "in2", "mult1", "mult2"}
		//
		if err := checkBounds[F](names, insn.Bit, insn.Out1, insn.Out2, insn.In1, insn.In2, insn.Mult1,
			insn.Mult2); err != nil {
			return nil, err
		}
		//
		return recursion.NewSelect[F](insn.Mult1, insn.Mult2, insn.Bit, insn.Out1, insn.Out2, insn.In1, insn.In2), nil
	default:
		return nil, fmt.Errorf("unknown op \"%s\"", insn.Op)
	}
}

// Check each value lies below the field's modulus, since otherwise distinct
// addresses (or multiplicities) would be identified.
func checkBounds[F field.Element[F]](names []string, values ...uint64) error {
	modulus := field.Zero[F]().Modulus()
	//
	for i, v := range values {
		if new(big.Int).SetUint64(v).Cmp(modulus) >= 0 {
			return fmt.Errorf("%s %d out-of-bounds", names[i], v)
		}
	}
	//
	return nil
}

func toUint64[F field.Element[F]](val F) uint64 {
	return field.ToBigInt(val).Uint64()
}
