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

	"github.com/consensys/go-recursion/pkg/recursion/machine"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
	"github.com/consensys/go-recursion/pkg/util/field/bls12_377"
	"github.com/consensys/go-recursion/pkg/util/field/koalabear"
	"github.com/consensys/go-recursion/pkg/util/sexp"
	"github.com/spf13/cobra"
)

var constraintsCmd = &cobra.Command{
	Use:   "constraints [flags]",
	Short: "Print the constraints of every chip.",
	Long: `Print the constraints and bus interactions of every chip as
	S-expressions, along with the maximum degree of each chip.`,
	Run: func(cmd *cobra.Command, args []string) {
		runFieldAgnosticCmd(cmd, args, constraintsCmds)
	},
}

// Available instances
var constraintsCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runConstraintsCmd[babybear.Element]},
	{field.KOALABEAR, runConstraintsCmd[koalabear.Element]},
	{field.BLS12_377, runConstraintsCmd[bls12_377.Element]},
}

func runConstraintsCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		m            = machine.New[F](getChipsConfig(cmd))
		interactions = GetFlag(cmd, "interactions")
	)
	//
	for _, chip := range m.Chips() {
		builder := chip.Symbolic()
		//
		fmt.Printf("%s (degree %d):\n", chip.Name(), builder.MaxDegree())
		//
		for _, c := range builder.Constraints() {
			fmt.Printf("  %s\n", c.Lisp().String(true))
		}
		//
		if interactions {
			for _, i := range builder.Interactions {
				msg := i.Message
				list := sexp.NewList(sexp.NewSymbol(i.Kind.String()), msg.Address.Lisp(), msg.Value.Lisp(),
					msg.Multiplicity.Lisp())
				fmt.Printf("  %s\n", list.String(true))
			}
		}
	}
}

func init() {
	constraintsCmd.Flags().Bool("interactions", false, "print bus interactions as well as constraints")
	rootCmd.AddCommand(constraintsCmd)
}
