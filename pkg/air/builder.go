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

import "github.com/consensys/go-recursion/pkg/bus"

// Builder is the interface through which a chip describes its constraints.
// It is parameterised over the type V of expressions, which allows the same
// chip description to be evaluated concretely over a field (e.g. to check a
// trace) or symbolically (e.g. to print constraints).  A builder combines an
// algebra over expressions, a sink for assertions and a sink for bus
// interactions.
type Builder[V any] interface {
	bus.Sink[V]
	// Add returns x + y
	Add(x V, y V) V
	// Sub returns x - y
	Sub(x V, y V) V
	// Mul returns x * y
	Mul(x V, y V) V
	// Constant returns the expression representing a given constant.
	Constant(c uint64) V
	// AssertZero asserts that a given expression vanishes on the current
	// row.  The handle identifies the assertion in reports.
	AssertZero(handle string, x V)
}

// AssertEq asserts that two expressions are equal on the current row.
func AssertEq[V any](builder Builder[V], handle string, x V, y V) {
	builder.AssertZero(handle, builder.Sub(x, y))
}

// OneMinus returns the expression 1 - x.
func OneMinus[V any](builder Builder[V], x V) V {
	return builder.Sub(builder.Constant(1), x)
}
