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

// SelectIo holds one value per operand of a SELECT instruction.  This is used
// both for the runtime values of an execution (i.e. SelectIo[F]) and for the
// addresses of the operands (i.e. SelectIo[Address[F]]).  The order of fields
// determines the column layout of any trace embedding this type.
type SelectIo[T any] struct {
	Bit  T
	Out1 T
	Out2 T
	In1  T
	In2  T
}

// Columns returns a pointer to each field, in layout order.
func (p *SelectIo[T]) Columns() []*T {
	return []*T{&p.Bit, &p.Out1, &p.Out2, &p.In1, &p.In2}
}

// SelectIoNames returns the name of each field, in layout order.
func SelectIoNames(prefix string) []string {
	return []string{prefix + "bit", prefix + "out1", prefix + "out2", prefix + "in1", prefix + "in2"}
}

// Select computes the outputs of a SELECT on the given inputs.  When the bit
// is one the inputs are swapped, otherwise they are passed through unchanged:
//
// out1 = bit*in2 + (1-bit)*in1
// out2 = bit*in1 + (1-bit)*in2
func Select[F field.Element[F]](bit, in1, in2 F) (F, F) {
	notBit := field.One[F]().Sub(bit)
	out1 := bit.Mul(in2).Add(notBit.Mul(in1))
	out2 := bit.Mul(in1).Add(notBit.Mul(in2))
	//
	return out1, out2
}

// SelectInstr represents one static occurrence of a SELECT instruction within a
// program.  The multiplicities determine how many times each output is
// supplied to the memory bus, which allows unused outputs to carry a
// multiplicity of zero.
type SelectInstr[F field.Element[F]] struct {
	Addrs SelectIo[Address[F]]
	Mult1 F
	Mult2 F
}

// NewSelect constructs a SELECT instruction from raw addresses.
func NewSelect[F field.Element[F]](mult1, mult2 uint64, bit, out1, out2, in1, in2 uint64) *SelectInstr[F] {
	return &SelectInstr[F]{
		Addrs: SelectIo[Address[F]]{
			Bit:  addr[F](bit),
			Out1: addr[F](out1),
			Out2: addr[F](out2),
			In1:  addr[F](in1),
			In2:  addr[F](in2),
		},
		Mult1: field.Uint64[F](mult1),
		Mult2: field.Uint64[F](mult2),
	}
}

func (p *SelectInstr[F]) instruction() {}

func (p *SelectInstr[F]) String() string {
	return fmt.Sprintf("%s, %s = select(%s, %s, %s) x(%s, %s)", p.Addrs.Out1, p.Addrs.Out2, p.Addrs.Bit,
		p.Addrs.In1, p.Addrs.In2, p.Mult1, p.Mult2)
}

func addr[F field.Element[F]](index uint64) Address[F] {
	return NewAddress(field.Uint64[F](index))
}
