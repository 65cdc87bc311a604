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
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-recursion/pkg/recursion/machine"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
	"github.com/consensys/go-recursion/pkg/util/field/bls12_377"
	"github.com/consensys/go-recursion/pkg/util/field/koalabear"
	"github.com/consensys/go-recursion/pkg/util/termio"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] program_file",
	Short: "Check the traces of a program against the constraints of each chip.",
	Long: `Execute a given program and generate its traces.  Then, check every row of
	every chip satisfies its constraints, and that the interactions of all
	chips on the memory bus are balanced.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		runFieldAgnosticCmd(cmd, args, checkCmds)
	},
}

// Available instances
var checkCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runCheckCmd[babybear.Element]},
	{field.KOALABEAR, runCheckCmd[koalabear.Element]},
	{field.BLS12_377, runCheckCmd[bls12_377.Element]},
}

func runCheckCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		m, traces = generateTraces[F](cmd, args[0])
		report    = m.Check(traces)
		limit     = GetUint(cmd, "limit")
		red       = termio.NewAnsiEscape().FgColour(termio.TERM_RED)
		green     = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
		ansi      = termio.IsTerminal(os.Stdout)
	)
	//
	for i, f := range report.Failures {
		if uint(i) >= limit {
			fmt.Printf("... (%d more failures)\n", uint(len(report.Failures))-limit)
			break
		}
		//
		fmt.Println(f.Error())
	}
	//
	for i, e := range report.Imbalances {
		if uint(i) >= limit {
			fmt.Printf("... (%d more imbalances)\n", uint(len(report.Imbalances))-limit)
			break
		}
		//
		fmt.Printf("unbalanced %s\n", e.String())
	}
	//
	if !report.Ok() {
		fmt.Println(colour(ansi, red.Build(), "check failed"))
		os.Exit(1)
	}
	//
	fmt.Println(colour(ansi, green.Build(), fmt.Sprintf("check passed (%s; %d interactions)",
		strings.Join(machine.ChipNames(traces), ", "), report.Interactions)))
}

func colour(ansi bool, escape string, text string) string {
	if ansi {
		return escape + text + termio.ResetAnsiEscape().Build()
	}
	//
	return text
}

func init() {
	checkCmd.Flags().Uint("limit", 10, "maximum number of failures (and imbalances) to report")
	rootCmd.AddCommand(checkCmd)
}
