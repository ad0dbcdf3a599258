// Copyright 2024-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/ladder-vault/ladder-opt/ladder"
	"github.com/ladder-vault/ladder-opt/loader"
	"github.com/ladder-vault/ladder-opt/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	optimizeTopN       int
	optimizeBottomN    int
	optimizeOutput     string
	optimizeFormat     string
	optimizeVerbose    bool
	optimizeExhaustive bool
)

func init() {
	optimizeCmd.Flags().IntVar(&optimizeTopN, "top-n", 1, "Number of top results to compute")
	optimizeCmd.Flags().IntVar(&optimizeBottomN, "bottom-n", 0, "Number of bottom results (exhaustive mode only)")
	optimizeCmd.Flags().StringVar(&optimizeOutput, "output", "-", "Directory to export results to, or - for stdout")
	optimizeCmd.Flags().StringVar(&optimizeFormat, "format", "list", "Output format when printing: list, table, csv, or json")
	optimizeCmd.Flags().BoolVar(&optimizeVerbose, "verbose-actions", false, "Render actions in their long form")
	optimizeCmd.Flags().BoolVar(&optimizeExhaustive, "exhaustive", false, "Use the no-wait exhaustive search")
	rootCmd.AddCommand(optimizeCmd)
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] FILE",
	Short: "Compute the top return sequences for a bond return file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := loader.LoadCSV(args[0])
		if err != nil {
			return err
		}

		if optimizeExhaustive {
			return runExhaustive(data)
		}

		start := time.Now()
		results, err := ladder.TopK(data, optimizeTopN)
		if err != nil {
			return err
		}
		log.Info().Dur("elapsed", time.Since(start)).Int("results", results.Len()).Msg("optimisation finished")

		if optimizeOutput != "-" {
			path, expErr := output.ExportCSV(optimizeOutput, results)
			if expErr != nil {
				return expErr
			}
			fmt.Println(path)
			return nil
		}

		switch optimizeFormat {
		case "table":
			fmt.Print(output.Table(results))
		case "csv":
			if err := output.WriteCSV(os.Stdout, results); err != nil {
				return err
			}
			fmt.Println()
		case "json":
			if err := output.WriteJSON(os.Stdout, results); err != nil {
				return err
			}
		default:
			output.PrintList(os.Stdout, results, optimizeVerbose)
		}
		return nil
	},
}

func runExhaustive(data *bonddata.Matrix) error {
	extremes, err := ladder.TopBottom(data, optimizeTopN, optimizeBottomN)
	if err != nil {
		return err
	}

	fmt.Println("Top results:")
	for i, entry := range extremes.Top {
		fmt.Printf("%d. %.2f%%: %s\n", i+1, output.ReturnPercent(entry.CRF), ladder.FormatActions(entry.Path, ","))
	}
	fmt.Println()
	fmt.Println("Bottom results:")
	for i, entry := range extremes.Bottom {
		fmt.Printf("%d. %.2f%%: %s\n", i+1, output.ReturnPercent(entry.CRF), ladder.FormatActions(entry.Path, ","))
	}
	fmt.Printf("\nTotal results: %d\n", extremes.TotalStrategies)
	return nil
}
