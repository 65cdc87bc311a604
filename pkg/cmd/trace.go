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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/consensys/go-recursion/pkg/trace"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
	"github.com/consensys/go-recursion/pkg/util/field/bls12_377"
	"github.com/consensys/go-recursion/pkg/util/field/koalabear"
	"github.com/consensys/go-recursion/pkg/util/termio"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace [flags] program_file",
	Short: "Generate and print the traces of a program.",
	Long: `Execute a given program, then generate and print the preprocessed and main
	traces of every chip.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		runFieldAgnosticCmd(cmd, args, traceCmds)
	},
}

// Available instances
var traceCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runTraceCmd[babybear.Element]},
	{field.KOALABEAR, runTraceCmd[koalabear.Element]},
	{field.BLS12_377, runTraceCmd[bls12_377.Element]},
}

func runTraceCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		_, traces = generateTraces[F](cmd, args[0])
		digest    = GetFlag(cmd, "digest")
		start     = GetUint(cmd, "start")
		end       = GetUint(cmd, "end")
		width     = GetUint(cmd, "max-width")
		ansi      = !GetFlag(cmd, "no-ansi") && termio.IsTerminal(os.Stdout)
	)
	//
	for _, t := range traces {
		name := t.Chip.Name()
		//
		if digest {
			fmt.Printf("%s (preprocessed): %s\n", name, hexDigest(t.Preprocessed))
			fmt.Printf("%s: %s\n", name, hexDigest(t.Main))
			//
			continue
		}
		//
		fmt.Printf("%s (preprocessed, %d x %d):\n", name, t.Preprocessed.Height(), t.Preprocessed.Width())
		trace.NewPrinter[F](t.Chip.PreprocessedColumnNames()).Start(start).End(end).Real(t.PreprocessedRealRows).
			MaxCellWidth(cellWidth(width, t.Preprocessed.Width())).AnsiEscapes(ansi).Print(os.Stdout, t.Preprocessed)
		fmt.Println()
		fmt.Printf("%s (%d x %d):\n", name, t.Main.Height(), t.Main.Width())
		trace.NewPrinter[F](t.Chip.ColumnNames()).Start(start).End(end).Real(t.RealRows).
			MaxCellWidth(cellWidth(width, t.Main.Width())).AnsiEscapes(ansi).Print(os.Stdout, t.Main)
		fmt.Println()
	}
}

// Determine the maximum width of a cell.  Unless given explicitly, this is
// chosen so that every column (plus the row index) fits the terminal.
func cellWidth(width uint, columns uint) uint {
	if width != 0 {
		return width
	}
	// Each cell is padded by three characters
	return max(6, termio.Width(os.Stdout)/(columns+1)) - 3
}

func hexDigest[F field.Element[F]](matrix *trace.RowMajor[F]) string {
	digest := matrix.Digest()
	return hex.EncodeToString(digest[:])
}

func init() {
	traceCmd.Flags().Bool("digest", false, "print a digest of each trace, rather than its contents")
	traceCmd.Flags().Uint("start", 0, "first row to print")
	traceCmd.Flags().Uint("end", 15, "last row to print")
	traceCmd.Flags().Uint("max-width", 0, "maximum width of a printed cell (0 fits the terminal)")
	traceCmd.Flags().Bool("no-ansi", false, "disable ANSI escapes (e.g. colour) in output")
	rootCmd.AddCommand(traceCmd)
}
