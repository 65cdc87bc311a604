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
package trace

import (
	"fmt"
	"io"
	"math"

	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/termio"
)

// Printer encapsulates various configuration options useful for printing out
// traces in human-readable forms.
type Printer[F field.Element[F]] struct {
	// Column names, in order.
	names []string
	// First row to print
	startRow uint
	// Last row to print (inclusive)
	endRow uint
	// Number of real (i.e. non-padding) rows.  Padding rows are dimmed.
	realRows uint
	// Determine maximum width to print
	maxCellWidth uint
	// Enable ANSI
	ansiEscapes bool
}

// NewPrinter constructs a default printer for a matrix whose columns have the
// given names.
func NewPrinter[F field.Element[F]](names []string) *Printer[F] {
	return &Printer[F]{names, 0, math.MaxUint, math.MaxUint, math.MaxUint, true}
}

// Start configures the starting row for this printer.
func (p *Printer[F]) Start(start uint) *Printer[F] {
	p.startRow = start
	return p
}

// End configures the ending row (inclusive) for this printer.
func (p *Printer[F]) End(end uint) *Printer[F] {
	p.endRow = end
	return p
}

// Real configures the number of real rows, such that any rows beyond this are
// displayed as padding.
func (p *Printer[F]) Real(n uint) *Printer[F] {
	p.realRows = n
	return p
}

// AnsiEscapes can be used to enable or disable the use of ANSI escape sequences
// (e.g. for showing colour in a terminal, etc)
func (p *Printer[F]) AnsiEscapes(enable bool) *Printer[F] {
	p.ansiEscapes = enable
	return p
}

// MaxCellWidth sets the maximum width to use for the cell data.
func (p *Printer[F]) MaxCellWidth(width uint) *Printer[F] {
	p.maxCellWidth = width
	return p
}

// Print a given matrix using the configured printer.
func (p *Printer[F]) Print(out io.Writer, matrix *RowMajor[F]) {
	if uint(len(p.names)) != matrix.Width() {
		panic(fmt.Sprintf("%d column names for matrix of width %d", len(p.names), matrix.Width()))
	}
	//
	var (
		start         = min(p.startRow, matrix.Height())
		end           = matrix.Height()
		headerEscape  = termio.BoldAnsiEscape().FgColour(termio.TERM_WHITE)
		paddingEscape = termio.FaintAnsiEscape()
	)
	//
	if p.endRow < end {
		end = max(start, p.endRow+1)
	}
	// One row for the header, one column for the row index.
	tp := termio.NewTablePrinter(1+matrix.Width(), 1+end-start)
	// Set column names
	tp.Set(0, 0, "row")
	//
	for i, name := range p.names {
		tp.Set(uint(i+1), 0, name)
		tp.SetEscape(uint(i+1), 0, headerEscape)
	}
	// Fill table
	for row := start; row < end; row++ {
		tp.Set(0, 1+row-start, fmt.Sprintf("%d", row))
		//
		for col := range matrix.Width() {
			tp.Set(1+col, 1+row-start, matrix.Get(row, col).Text(10))
			//
			if row >= p.realRows {
				tp.SetEscape(1+col, 1+row-start, paddingEscape)
			}
		}
	}
	//
	tp.SetMaxWidths(p.maxCellWidth)
	tp.AnsiEscapes(p.ansiEscapes)
	tp.Print(out)
}
