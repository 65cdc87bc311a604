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
	"strconv"
	"strings"

	"github.com/consensys/go-recursion/pkg/recursion"
	"github.com/consensys/go-recursion/pkg/recursion/chips"
	"github.com/consensys/go-recursion/pkg/recursion/json"
	"github.com/consensys/go-recursion/pkg/recursion/machine"
	"github.com/consensys/go-recursion/pkg/recursion/runtime"
	"github.com/consensys/go-recursion/pkg/util/field"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// FieldAgnosticCmd represents a command to be executed for a given field.
type FieldAgnosticCmd struct {
	Field    field.Config
	Function func(*cobra.Command, []string)
}

// Run a field agnostic top-level command.
func runFieldAgnosticCmd(cmd *cobra.Command, args []string, cmds []FieldAgnosticCmd) {
	var (
		fieldName = GetString(cmd, "field")
		// Field configuration
		config = field.GetConfig(fieldName)
	)
	// Sanity check
	if config == nil {
		fmt.Printf("unknown field \"%s\"\n", fieldName)
		os.Exit(3)
	}
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	// Find command to dispatch
	for _, c := range cmds {
		if c.Field == *config {
			// Match
			c.Function(cmd, args)
			// Done
			return
		}
	}
	//
	fmt.Printf("field %s unsupported for command '%s'\n", fieldName, cmd.Name())
	os.Exit(2)
}

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or exits if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Determine the chip configuration from the command-line flags.
func getChipsConfig(cmd *cobra.Command) chips.Config {
	chunk := GetUint(cmd, "chunk")
	//
	if chunk == 0 {
		fmt.Println("chunk size must be positive")
		os.Exit(2)
	}
	//
	return chips.Config{Parallel: !GetFlag(cmd, "sequential"), ChunkSize: chunk}
}

// Parse fixed trace sizes of the form "chip=log2".
func parseFixedRows(entries []string) (recursion.FixedRows, error) {
	fixed := make(recursion.FixedRows)
	//
	for _, entry := range entries {
		chip, log2, ok := strings.Cut(entry, "=")
		if !ok || chip == "" {
			return nil, fmt.Errorf("malformed fixed trace size \"%s\" (expected chip=log2)", entry)
		}
		//
		n, err := strconv.ParseUint(log2, 10, 8)
		if err != nil || n > chips.MAX_LOG2_ROWS {
			return nil, fmt.Errorf("invalid log2 trace size \"%s\" for chip %s (at most %d)", log2, chip,
				chips.MAX_LOG2_ROWS)
		}
		//
		fixed[chip] = uint(n)
	}
	//
	return fixed, nil
}

// Read a program file, apply any fixed trace sizes and execute it.  This exits
// if any error arises.
func readAndExecute[F field.Element[F]](cmd *cobra.Command, filename string) (*recursion.Program[F],
	*recursion.ExecutionRecord[F]) {
	//
	program, err := json.ReadProgramFile[F](filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	fixed, err := parseFixedRows(GetStringArray(cmd, "fixed"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for chip, log2 := range fixed {
		program.Fixed[chip] = log2
	}
	//
	record, err := runtime.NewRuntime(program).Run()
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	// Fixed sizes apply equally to preprocessed and main traces.
	for chip, log2 := range program.Fixed {
		record.Fixed[chip] = log2
	}
	//
	return program, record
}

// Read, execute and generate traces for a given program file.  This exits if
// any error arises.
func generateTraces[F field.Element[F]](cmd *cobra.Command, filename string) (*machine.Machine[F],
	[]machine.Traces[F]) {
	//
	var (
		program, record = readAndExecute[F](cmd, filename)
		m               = machine.New[F](getChipsConfig(cmd))
	)
	//
	if err := m.Validate(program, record); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return m, m.GenerateTraces(program, record)
}
