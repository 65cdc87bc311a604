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

// ParChunks partitions the index range [0,n) into consecutive chunks of at
// most size indices, and calls fn(start,end) for each chunk on its own
// go-routine.  This returns once every chunk has completed.  Chunks never
// overlap, hence fn may write to the region of a shared buffer identified by
// its chunk without further synchronisation.
func ParChunks(n uint, size uint, fn func(start, end uint)) {
	if size == 0 {
		panic("chunk size cannot be zero")
	}
	//
	var (
		nchunks = (n + size - 1) / size
		// Construct a communication channel for completed chunks.
		c = make(chan uint, nchunks)
	)
	//
	for i := range nchunks {
		start := i * size
		end := min(n, start+size)
		// Start go-routine for this chunk
		go func(start, end uint) {
			fn(start, end)
			// Signal completion
			c <- start
		}(start, end)
	}
	// Collect up all the results
	for range nchunks {
		<-c
	}
}

// SeqChunks is the sequential counterpart of ParChunks, calling fn for each
// chunk in order on the current go-routine.
func SeqChunks(n uint, size uint, fn func(start, end uint)) {
	if size == 0 {
		panic("chunk size cannot be zero")
	}
	//
	for start := uint(0); start < n; start += size {
		fn(start, min(n, start+size))
	}
}
