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
package bus

import (
	"fmt"
	"slices"

	"github.com/consensys/go-recursion/pkg/util/field"
)

// Entry records the net balance (supply minus demand) of a single
// (address,value) pair.
type Entry[F field.Element[F]] struct {
	Address F
	Value   F
	Balance F
}

func (e Entry[F]) String() string {
	return fmt.Sprintf("[%s] = %s (balance %s)", e.Address, e.Value, e.Balance)
}

// Accumulator is a sink which tracks the net balance of every (address,value)
// pair it has seen.  The bus is balanced when every pair has a zero balance,
// i.e. every value demanded from memory was supplied exactly as many times as
// it was demanded.  An accumulator is not safe for concurrent use, but
// independently populated accumulators can be combined with Merge.
type Accumulator[F field.Element[F]] struct {
	entries map[string]*Entry[F]
	// Number of interactions with non-zero multiplicity.
	count uint
}

// NewAccumulator constructs an empty accumulator.
func NewAccumulator[F field.Element[F]]() *Accumulator[F] {
	return &Accumulator[F]{entries: make(map[string]*Entry[F])}
}

// Send implementation for the Sink interface.
func (p *Accumulator[F]) Send(msg Message[F]) {
	if !msg.Multiplicity.IsZero() {
		p.update(msg.Address, msg.Value, msg.Multiplicity)
		p.count++
	}
}

// Receive implementation for the Sink interface.
func (p *Accumulator[F]) Receive(msg Message[F]) {
	if !msg.Multiplicity.IsZero() {
		p.update(msg.Address, msg.Value, field.Neg(msg.Multiplicity))
		p.count++
	}
}

// Merge folds the balances of another accumulator into this one.
func (p *Accumulator[F]) Merge(other *Accumulator[F]) {
	for _, e := range other.entries {
		p.update(e.Address, e.Value, e.Balance)
	}
	//
	p.count += other.count
}

// Count returns the number of interactions with a non-zero multiplicity
// registered with this accumulator.
func (p *Accumulator[F]) Count() uint {
	return p.count
}

// Balanced determines whether every (address,value) pair has zero balance.
func (p *Accumulator[F]) Balanced() bool {
	for _, e := range p.entries {
		if !e.Balance.IsZero() {
			return false
		}
	}
	//
	return true
}

// Imbalances returns every (address,value) pair with a non-zero balance,
// ordered by address and then value.
func (p *Accumulator[F]) Imbalances() []Entry[F] {
	var entries []Entry[F]
	//
	for _, e := range p.entries {
		if !e.Balance.IsZero() {
			entries = append(entries, *e)
		}
	}
	//
	slices.SortFunc(entries, func(l, r Entry[F]) int {
		if c := l.Address.Cmp(r.Address); c != 0 {
			return c
		}
		//
		return l.Value.Cmp(r.Value)
	})
	//
	return entries
}

func (p *Accumulator[F]) update(address, value, delta F) {
	key := string(address.Bytes()) + ":" + string(value.Bytes())
	//
	if e, ok := p.entries[key]; ok {
		e.Balance = e.Balance.Add(delta)
	} else {
		p.entries[key] = &Entry[F]{address, value, delta}
	}
}
