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
package runtime

import (
	"errors"
	"fmt"

	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// ErrUninitialised arises when an instruction reads a memory cell which has
// not been written.
var ErrUninitialised = errors.New("read of uninitialised memory")

// ErrMemoryMismatch arises when a memory read does not match the value held in
// memory.
var ErrMemoryMismatch = errors.New("memory mismatch")

// ErrNonBooleanSelector arises when the selector of a SELECT is neither zero
// nor one.
var ErrNonBooleanSelector = errors.New("non-boolean selector")

// Runtime executes recursion programs, producing the execution record from
// which main traces are generated.
type Runtime[F field.Element[F]] struct {
	program *recursion.Program[F]
	memory  map[string]F
	record  *recursion.ExecutionRecord[F]
}

// NewRuntime constructs a runtime for a given program with an initially empty
// memory.
func NewRuntime[F field.Element[F]](program *recursion.Program[F]) *Runtime[F] {
	return &Runtime[F]{program, make(map[string]F), recursion.NewExecutionRecord[F]()}
}

// Run executes every instruction of the program in order, returning the
// resulting execution record or an error if some instruction could not be
// executed.
func (p *Runtime[F]) Run() (*recursion.ExecutionRecord[F], error) {
	for pc, instr := range p.program.Instructions {
		var err error
		//
		switch instr := instr.(type) {
		case *recursion.MemInstr[F]:
			err = p.executeMem(instr)
		case *recursion.SelectInstr[F]:
			err = p.executeSelect(instr)
		default:
			err = fmt.Errorf("unknown instruction %T", instr)
		}
		//
		if err != nil {
			return nil, fmt.Errorf("pc %d (%s): %w", pc, instr, err)
		}
	}
	//
	log.Debugf("executed %d instructions (%d selects, %d memory)", len(p.program.Instructions),
		len(p.record.SelectEvents), p.record.MemConstCount)
	//
	return p.record, nil
}

func (p *Runtime[F]) executeMem(instr *recursion.MemInstr[F]) error {
	switch instr.Kind {
	case recursion.WRITE:
		p.store(instr.Addr, instr.Val)
	case recursion.READ:
		val, err := p.load(instr.Addr)
		if err != nil {
			return err
		} else if !val.Equals(instr.Val) {
			return fmt.Errorf("%w at %s (expected %s, found %s)", ErrMemoryMismatch, instr.Addr, instr.Val, val)
		}
	}
	//
	p.record.MemConstCount++
	//
	return nil
}

func (p *Runtime[F]) executeSelect(instr *recursion.SelectInstr[F]) error {
	var (
		event recursion.SelectIo[F]
		err   error
	)
	//
	if event.Bit, err = p.load(instr.Addrs.Bit); err != nil {
		return err
	} else if event.In1, err = p.load(instr.Addrs.In1); err != nil {
		return err
	} else if event.In2, err = p.load(instr.Addrs.In2); err != nil {
		return err
	} else if !event.Bit.IsZero() && !event.Bit.IsOne() {
		return fmt.Errorf("%w (%s)", ErrNonBooleanSelector, event.Bit)
	}
	//
	event.Out1, event.Out2 = recursion.Select(event.Bit, event.In1, event.In2)
	//
	p.store(instr.Addrs.Out1, event.Out1)
	p.store(instr.Addrs.Out2, event.Out2)
	p.record.SelectEvents = append(p.record.SelectEvents, event)
	//
	return nil
}

func (p *Runtime[F]) load(addr recursion.Address[F]) (F, error) {
	if val, ok := p.memory[key(addr)]; ok {
		return val, nil
	}
	//
	return field.Zero[F](), fmt.Errorf("%w at %s", ErrUninitialised, addr)
}

func (p *Runtime[F]) store(addr recursion.Address[F], val F) {
	p.memory[key(addr)] = val
}

func key[F field.Element[F]](addr recursion.Address[F]) string {
	return string(addr.Index.Bytes())
}
