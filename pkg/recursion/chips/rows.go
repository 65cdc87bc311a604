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

import (
	"errors"
	"fmt"

	"github.com/consensys/go-recursion/pkg/util"
	"github.com/consensys/go-recursion/pkg/util/math"
)

// ErrFixedRowsTooSmall arises when a chip's trace size has been fixed to fewer
// rows than it needs.
var ErrFixedRowsTooSmall = errors.New("fixed trace size too small")

// ErrFixedRowsTooLarge arises when a chip's trace size has been fixed beyond
// MAX_LOG2_ROWS.
var ErrFixedRowsTooLarge = errors.New("fixed trace size too large")

// MAX_LOG2_ROWS is the largest log2 trace size which can be fixed for a chip.
const MAX_LOG2_ROWS = 32

// NextPowerOfTwo determines the number of rows to allocate for a trace with n
// real rows.  When a fixed log2 size is given, then exactly 2^log2 rows are
// allocated (regardless of n).  Otherwise, the smallest power of two greater
// than or equal to n is used, where an empty trace still has one (padding)
// row.  The same rule sizes both the preprocessed and main traces of a chip.
func NextPowerOfTwo(n uint, fixedLog2 util.Option[uint]) uint {
	if fixedLog2.HasValue() {
		return 1 << fixedLog2.Unwrap()
	}
	//
	return math.NextPowerOfTwo(n)
}

// CheckFixedRows checks that a fixed log2 size (if given) is no larger than
// MAX_LOG2_ROWS, and leaves room for n real rows of a given chip's trace.
func CheckFixedRows(chip string, n uint, fixedLog2 util.Option[uint]) error {
	if fixedLog2.HasValue() && fixedLog2.Unwrap() > MAX_LOG2_ROWS {
		return fmt.Errorf("%w (chip %s fixed to 2^%d rows, at most 2^%d permitted)", ErrFixedRowsTooLarge, chip,
			fixedLog2.Unwrap(), MAX_LOG2_ROWS)
	}
	//
	if rows := NextPowerOfTwo(n, fixedLog2); rows < n {
		return fmt.Errorf("%w (chip %s has %d rows, fixed to %d)", ErrFixedRowsTooSmall, chip, n, rows)
	}
	//
	return nil
}
