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
package selectchip

import (
	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
)

// NUM_SELECT_COLS is the width of the main trace.
var NUM_SELECT_COLS = uint(len(new(SelectCols[uint8]).Columns()))

// NUM_SELECT_PREPROCESSED_COLS is the width of the preprocessed trace.
var NUM_SELECT_PREPROCESSED_COLS = uint(len(new(SelectPreprocessedCols[uint8]).Columns()))

// SelectCols is the layout of a row in the main trace, which holds the runtime
// values of one SELECT.
type SelectCols[T any] struct {
	Vals recursion.SelectIo[T]
}

// Columns returns a pointer to each column, in layout order.
func (p *SelectCols[T]) Columns() []*T {
	return p.Vals.Columns()
}

// ReadSelectCols views a given row through the main trace layout.
func ReadSelectCols[T any](row []T) SelectCols[T] {
	var cols SelectCols[T]
	//
	chips.Load(row, cols.Columns())
	//
	return cols
}

// Write this row into a given row of the main trace.
func (p SelectCols[T]) Write(row []T) {
	chips.Store(row, p.Columns())
}

// SelectPreprocessedCols is the layout of a row in the preprocessed trace,
// which holds the static shape of one SELECT instruction.  The IsReal flag is
// zero on padding rows, as are all other columns.
type SelectPreprocessedCols[T any] struct {
	IsReal T
	Addrs  recursion.SelectIo[recursion.Address[T]]
	Mult1  T
	Mult2  T
}

// Columns returns a pointer to each column, in layout order.
func (p *SelectPreprocessedCols[T]) Columns() []*T {
	return []*T{
		&p.IsReal,
		&p.Addrs.Bit.Index, &p.Addrs.Out1.Index, &p.Addrs.Out2.Index, &p.Addrs.In1.Index, &p.Addrs.In2.Index,
		&p.Mult1, &p.Mult2,
	}
}

// ReadSelectPreprocessedCols views a given row through the preprocessed trace
// layout.
func ReadSelectPreprocessedCols[T any](row []T) SelectPreprocessedCols[T] {
	var cols SelectPreprocessedCols[T]
	//
	chips.Load(row, cols.Columns())
	//
	return cols
}

// Write this row into a given row of the preprocessed trace.
func (p SelectPreprocessedCols[T]) Write(row []T) {
	chips.Store(row, p.Columns())
}

func columnNames() []string {
	return recursion.SelectIoNames("")
}

func preprocessedColumnNames() []string {
	names := []string{"is_real"}
	names = append(names, recursion.SelectIoNames("addr_")...)
	//
	return append(names, "mult1", "mult2")
}
