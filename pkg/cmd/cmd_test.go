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
package cmd

import (
	"testing"

	"github.com/consensys/go-recursion/pkg/util/assert"
)

func Test_ParseFixedRows(t *testing.T) {
	fixed, err := parseFixedRows([]string{"Select=10", "MemoryConst=0", "Other=32"})
	//
	assert.NoError(t, err)
	assert.Equal(t, uint(10), fixed.FixedLog2Rows("Select").Unwrap())
	assert.Equal(t, uint(0), fixed.FixedLog2Rows("MemoryConst").Unwrap())
	assert.Equal(t, uint(32), fixed.FixedLog2Rows("Other").Unwrap())
	//
	for _, entry := range []string{"Select", "=3", "Select=x", "Select=-1", "Select=33", "Select=63", "Select=64"} {
		_, err := parseFixedRows([]string{entry})
		assert.True(t, err != nil, entry)
	}
}
