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
	"math/rand/v2"
	"os"

	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/json"
	"github.com/consensys/go-recursion/pkg/util/field"
	"github.com/consensys/go-recursion/pkg/util/field/babybear"
	"github.com/consensys/go-recursion/pkg/util/field/bls12_377"
	"github.com/consensys/go-recursion/pkg/util/field/koalabear"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] program_file",
	Short: "Generate a random SELECT program.",
	Long: `Generate a random program which writes a bit and two inputs, selects on
	them and reads back both outputs, a given number of times.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		runFieldAgnosticCmd(cmd, args, generateCmds)
	},
}

// Available instances
var generateCmds = []FieldAgnosticCmd{
	{field.BABYBEAR, runGenerateCmd[babybear.Element]},
	{field.KOALABEAR, runGenerateCmd[koalabear.Element]},
	{field.BLS12_377, runGenerateCmd[bls12_377.Element]},
}

func runGenerateCmd[F field.Element[F]](cmd *cobra.Command, args []string) {
	var (
		n       = GetUint(cmd, "count")
		seed    = uint64(GetUint(cmd, "seed"))
		program = recursion.RandomSelectProgram[F](n, rand.New(rand.NewPCG(seed, seed)))
	)
	//
	bytes, err := json.ToBytes(program)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if err := os.WriteFile(args[0], bytes, 0644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Debugf("wrote %d instructions to %s", len(program.Instructions), args[0])
}

func init() {
	generateCmd.Flags().UintP("count", "n", 1000, "number of SELECT instructions to generate")
	generateCmd.Flags().Uint("seed", 0, "seed for the random number generator")
	rootCmd.AddCommand(generateCmd)
}
