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
package math

import "testing"

func Test_NextPowerOfTwo(t *testing.T) {
	tests := []struct{ n, expected uint }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{1000, 1024}, {1023, 1024}, {1024, 1024}, {1025, 2048},
	}
	//
	for _, tc := range tests {
		if actual := NextPowerOfTwo(tc.n); actual != tc.expected {
			t.Errorf("NextPowerOfTwo(%d) == %d != %d", tc.n, actual, tc.expected)
		}
	}
}

func Test_NextPowerOfTwo_Brute(t *testing.T) {
	for n := uint(0); n < 5000; n++ {
		expected := uint(1)
		for expected < n {
			expected *= 2
		}
		//
		if actual := NextPowerOfTwo(n); actual != expected {
			t.Errorf("NextPowerOfTwo(%d) == %d != %d", n, actual, expected)
		}
	}
}

func Test_Log2(t *testing.T) {
	for i := uint(0); i < 20; i++ {
		if actual := Log2(1 << i); actual != i {
			t.Errorf("Log2(2^%d) == %d", i, actual)
		}
	}
}
