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
package util

import (
	"sync/atomic"
	"testing"

	"github.com/consensys/go-recursion/pkg/util/assert"
)

func Test_Chunks(t *testing.T) {
	for _, n := range []uint{0, 1, 7, 64, 1000} {
		for _, size := range []uint{1, 3, 64, 2000} {
			var (
				par = make([]uint32, n)
				seq = make([]uint32, n)
				// Number of chunks processed
				count atomic.Uint32
			)
			//
			ParChunks(n, size, func(start, end uint) {
				count.Add(1)
				//
				for i := start; i < end; i++ {
					par[i]++
				}
			})
			//
			SeqChunks(n, size, func(start, end uint) {
				assert.True(t, end-start <= size)
				//
				for i := start; i < end; i++ {
					seq[i]++
				}
			})
			//
			assert.Equal(t, uint32((n+size-1)/size), count.Load())
			assert.Equal(t, seq, par)
			//
			for i := range n {
				assert.Equal(t, uint32(1), seq[i])
			}
		}
	}
}

func Test_Chunks_ZeroSize(t *testing.T) {
	assert.Panics(t, func() { ParChunks(10, 0, func(start, end uint) {}) })
	assert.Panics(t, func() { SeqChunks(10, 0, func(start, end uint) {}) })
}

func Test_Option(t *testing.T) {
	assert.True(t, None[int]().IsEmpty())
	assert.Equal(t, 3, None[int]().UnwrapOr(3))
	assert.True(t, Some(1).HasValue())
	assert.Equal(t, 1, Some(1).Unwrap())
	assert.Equal(t, 1, Some(1).UnwrapOr(3))
	assert.Panics(t, func() { None[int]().Unwrap() })
}
