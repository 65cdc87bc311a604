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
package chips

import "fmt"

// Load copies the values of a given row into a given set of columns, in order.
// This is how a row is viewed through the column layout of a chip.
func Load[T any](row []T, columns []*T) {
	if len(row) != len(columns) {
		panic(fmt.Sprintf("row of width %d does not match layout of width %d", len(row), len(columns)))
	}
	//
	for i, col := range columns {
		*col = row[i]
	}
}

// Store copies the values of a given set of columns into a given row, in
// order.
func Store[T any](row []T, columns []*T) {
	if len(row) != len(columns) {
		panic(fmt.Sprintf("row of width %d does not match layout of width %d", len(row), len(columns)))
	}
	//
	for i, col := range columns {
		row[i] = *col
	}
}
