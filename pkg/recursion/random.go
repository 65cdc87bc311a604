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
	"math/rand/v2"

	"github.com/consensys/go-recursion/pkg/util/field"
)

// RandomSelectProgram generates a program consisting of n blocks, where each
// block writes a random bit and two random inputs into fresh memory cells,
// selects on them and then reads back (i.e. checks) both outputs.  Every value
// written is read exactly once, hence the memory bus of such a program is
// balanced.
func RandomSelectProgram[F field.Element[F]](n uint, rng *rand.Rand) *Program[F] {
	var (
		instrs = make([]Instruction[F], 0, 6*n)
		addr   uint64
	)
	//
	for range n {
		var (
			bit        = field.Uint64[F](rng.Uint64N(2))
			in1        = field.Uint64[F](rng.Uint64())
			in2        = field.Uint64[F](rng.Uint64())
			out1, out2 = Select(bit, in1, in2)
		)
		//
		instrs = append(instrs,
			NewMem(WRITE, 1, addr, bit),
			NewMem(WRITE, 1, addr+3, in1),
			NewMem(WRITE, 1, addr+4, in2),
			NewSelect[F](1, 1, addr, addr+1, addr+2, addr+3, addr+4),
			NewMem(READ, 1, addr+1, out1),
			NewMem(READ, 1, addr+2, out2))
		//
		addr += 5
	}
	//
	return NewProgram(instrs...)
}
