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

import "fmt"

// Address identifies a memory cell of the recursion VM.  An address is only
// ever used as a tag in bus interactions, and never participates in
// arithmetic.
type Address[T any] struct {
	Index T
}

// NewAddress constructs an address from a given index.
func NewAddress[T any](index T) Address[T] {
	return Address[T]{index}
}

func (p Address[T]) String() string {
	return fmt.Sprintf("@%v", p.Index)
}
