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

	"github.com/consensys/go-recursion/pkg/util/field"
	"golang.org/x/crypto/sha3"
)

// RowMajor is a dense matrix of field elements stored row after row.  This is
// the form in which traces are handed over to the proving backend.
type RowMajor[F field.Element[F]] struct {
	values []F
	width  uint
}

// NewRowMajor constructs a matrix of the given width from a flat array of
// values.  The number of values must be a multiple of the width.
func NewRowMajor[F field.Element[F]](values []F, width uint) *RowMajor[F] {
	if width == 0 || uint(len(values))%width != 0 {
		panic(fmt.Sprintf("invalid matrix (%d values, width %d)", len(values), width))
	}
	//
	return &RowMajor[F]{values, width}
}

// NewZeroRowMajor constructs a matrix of the given dimensions where every cell
// holds zero.
func NewZeroRowMajor[F field.Element[F]](height uint, width uint) *RowMajor[F] {
	return NewRowMajor(make([]F, height*width), width)
}

// Width returns the number of columns in this matrix.
func (p *RowMajor[F]) Width() uint {
	return p.width
}

// Height returns the number of rows in this matrix.
func (p *RowMajor[F]) Height() uint {
	return uint(len(p.values)) / p.width
}

// Row returns the given row of this matrix.  The returned slice aliases the
// matrix, hence writes to it update the matrix.
func (p *RowMajor[F]) Row(row uint) []F {
	start := row * p.width
	//
	return p.values[start : start+p.width : start+p.width]
}

// Get returns the value held in a given cell.
func (p *RowMajor[F]) Get(row, col uint) F {
	return p.values[row*p.width+col]
}

// Values returns the flat array of values backing this matrix.
func (p *RowMajor[F]) Values() []F {
	return p.values
}

// Equals determines whether two matrices have the same dimensions and hold the
// same values.
func (p *RowMajor[F]) Equals(other *RowMajor[F]) bool {
	if p.width != other.width || len(p.values) != len(other.values) {
		return false
	}
	//
	for i := range p.values {
		if !p.values[i].Equals(other.values[i]) {
			return false
		}
	}
	//
	return true
}

// Digest computes a SHA3-256 digest over the dimensions and contents of this
// matrix.  Matrices which are equal have the same digest, regardless of how
// they were populated.
func (p *RowMajor[F]) Digest() [32]byte {
	var (
		hash   = sha3.New256()
		digest [32]byte
	)
	//
	fmt.Fprintf(hash, "%d:%d:", p.width, p.Height())
	//
	for _, v := range p.values {
		hash.Write(v.Bytes())
	}
	//
	copy(digest[:], hash.Sum(nil))
	//
	return digest
}
