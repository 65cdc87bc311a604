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
package field

import (
	"fmt"
	"math/big"
)

// An Element of a prime-order field.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x+y
	Add(y Operand) Operand
	// Bytes returns the big-endian encoded value of x, possibly with leading
	// zeros.
	Bytes() []byte
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Equals checks whether x = y.
	Equals(y Operand) bool
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// Return the modulus for the field in question.
	Modulus() *big.Int
	// Compute x * y
	Mul(y Operand) Operand
	// Compute x⁻¹, or 0 if x = 0.
	Inverse() Operand
	// SetUint64 returns the element representing val (mod p).
	SetUint64(val uint64) Operand
	// Compute x - y
	Sub(y Operand) Operand
	// Text returns the numerical value of x in the given base.
	Text(base int) string
}

// Zero constructs a field element representing 0
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// Uint64 construct a field element from a given uint64
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}

// Neg returns -x.
func Neg[F Element[F]](x F) F {
	return Zero[F]().Sub(x)
}

// FromBigInt constructs a field element from a given non-negative integer,
// returning false if it is not below the field's modulus.
func FromBigInt[F Element[F]](val *big.Int) (F, bool) {
	var (
		element F
		shift   = Uint64[F](1 << 32)
	)
	//
	if val.Sign() < 0 || val.Cmp(element.Modulus()) >= 0 {
		return element, false
	}
	// Horner's rule over 32bit limbs, most significant first.
	bytes := val.Bytes()
	// Left pad to a multiple of four bytes
	bytes = append(make([]byte, (4-len(bytes)%4)%4), bytes...)
	//
	for i := 0; i < len(bytes); i += 4 {
		limb := uint64(bytes[i])<<24 | uint64(bytes[i+1])<<16 | uint64(bytes[i+2])<<8 | uint64(bytes[i+3])
		element = element.Mul(shift).Add(Uint64[F](limb))
	}
	//
	return element, true
}

// ToBigInt returns the canonical integer value of a given field element.
func ToBigInt[F Element[F]](val F) *big.Int {
	return new(big.Int).SetBytes(val.Bytes())
}
