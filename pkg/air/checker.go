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
package air

import (
	"fmt"

	"github.com/consensys/go-recursion/pkg/bus"
	"github.com/consensys/go-recursion/pkg/util/field"
)

// Failure identifies an assertion which did not hold on a given row of a given
// chip.
type Failure struct {
	Chip   string
	Handle string
	Row    uint
}

func (p Failure) Error() string {
	return fmt.Sprintf("constraint \"%s\" of chip %s does not hold (row %d)", p.Handle, p.Chip, p.Row)
}

// Checker is a builder which evaluates a chip's constraints concretely, over
// the values of a given row.  Failing assertions are recorded and bus
// interactions are forwarded to an underlying sink.
type Checker[F field.Element[F]] struct {
	chip     string
	row      uint
	sink     bus.Sink[F]
	failures []Failure
}

// NewChecker constructs a checker for a given chip, which forwards all bus
// interactions to a given sink.
func NewChecker[F field.Element[F]](chip string, sink bus.Sink[F]) *Checker[F] {
	return &Checker[F]{chip: chip, sink: sink}
}

// SetRow sets the row being evaluated.  This is used only for reporting.
func (p *Checker[F]) SetRow(row uint) {
	p.row = row
}

// Add implementation for the Builder interface.
func (p *Checker[F]) Add(x F, y F) F { return x.Add(y) }

// Sub implementation for the Builder interface.
func (p *Checker[F]) Sub(x F, y F) F { return x.Sub(y) }

// Mul implementation for the Builder interface.
func (p *Checker[F]) Mul(x F, y F) F { return x.Mul(y) }

// Constant implementation for the Builder interface.
func (p *Checker[F]) Constant(c uint64) F { return field.Uint64[F](c) }

// AssertZero implementation for the Builder interface.
func (p *Checker[F]) AssertZero(handle string, x F) {
	if !x.IsZero() {
		p.failures = append(p.failures, Failure{p.chip, handle, p.row})
	}
}

// Send implementation for the Sink interface.
func (p *Checker[F]) Send(msg bus.Message[F]) {
	p.sink.Send(msg)
}

// Receive implementation for the Sink interface.
func (p *Checker[F]) Receive(msg bus.Message[F]) {
	p.sink.Receive(msg)
}

// Failures returns the failures recorded so far, in the order they arose.
func (p *Checker[F]) Failures() []Failure {
	return p.failures
}
