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
	"testing"

	"github.com/consensys/go-recursion/pkg/util/assert"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
)

type F = babybear.Element

func msg(address, value, multiplicity uint64) Message[F] {
	return NewMessage(field.Uint64[F](address), field.Uint64[F](value), field.Uint64[F](multiplicity))
}

func Test_Accumulator_Empty(t *testing.T) {
	acc := NewAccumulator[F]()
	//
	assert.True(t, acc.Balanced())
	assert.Equal(t, 0, len(acc.Imbalances()))
}

func Test_Accumulator_Balanced(t *testing.T) {
	acc := NewAccumulator[F]()
	// one writer, two readers
	acc.Send(msg(1, 5, 2))
	acc.Receive(msg(1, 5, 1))
	assert.False(t, acc.Balanced())
	acc.Receive(msg(1, 5, 1))
	assert.True(t, acc.Balanced())
	assert.Equal(t, uint(3), acc.Count())
}

func Test_Accumulator_ValueMismatch(t *testing.T) {
	acc := NewAccumulator[F]()
	//
	acc.Send(msg(1, 5, 1))
	acc.Receive(msg(1, 6, 1))
	//
	imbalances := acc.Imbalances()
	assert.Equal(t, 2, len(imbalances))
	// sorted by value
	assert.Equivalent(t, field.Uint64[F](5), imbalances[0].Value)
	assert.Equivalent(t, field.One[F](), imbalances[0].Balance)
	assert.Equivalent(t, field.Uint64[F](6), imbalances[1].Value)
	assert.Equivalent(t, field.Neg(field.One[F]()), imbalances[1].Balance)
}

func Test_Accumulator_ZeroMultiplicity(t *testing.T) {
	acc := NewAccumulator[F]()
	//
	acc.Send(msg(0, 0, 0))
	acc.Receive(msg(0, 7, 0))
	//
	assert.True(t, acc.Balanced())
	assert.Equal(t, uint(0), acc.Count())
}

func Test_Accumulator_Merge(t *testing.T) {
	left := NewAccumulator[F]()
	right := NewAccumulator[F]()
	//
	left.Send(msg(3, 9, 1))
	right.Receive(msg(3, 9, 1))
	assert.False(t, left.Balanced())
	assert.False(t, right.Balanced())
	//
	left.Merge(right)
	assert.True(t, left.Balanced())
	assert.Equal(t, uint(2), left.Count())
}

func Test_Recorder(t *testing.T) {
	var rec Recorder[F]
	//
	rec.Receive(msg(1, 2, 1))
	rec.Send(msg(3, 4, 0))
	//
	assert.Equal(t, 2, len(rec.Interactions))
	assert.Equal(t, RECEIVE, rec.Interactions[0].Kind)
	assert.Equal(t, SEND, rec.Interactions[1].Kind)
	assert.Equal(t, "send", rec.Interactions[1].Kind.String())
}
