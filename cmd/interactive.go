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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/ladder-vault/ladder-opt/common"
	"github.com/ladder-vault/ladder-opt/counter"
	"github.com/ladder-vault/ladder-opt/ladder"
	"github.com/ladder-vault/ladder-opt/output"
	"github.com/ladder-vault/ladder-opt/prompt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run the interactive prompt flow (the default when no command is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

type algorithm int

const (
	algoOptimal algorithm = iota
	algoTopK
	algoExhaustive
)

const algorithmPromptText = `Enter 0 for the optimal cumulative return and corresponding buying strategy;
Enter 1 to choose how many of the top results to display;
Enter 2 for the exhaustive no-wait search (top and bottom results);
OR press ENTER to quit:`

func runInteractive() error {
	common.SetupCache()

	p := prompt.New(os.Stdin, os.Stdout)
	w := p.Writer()

	fmt.Fprintln(w)
	algo, err := prompt.Mapping(p, algorithmPromptText, []prompt.Entry[algorithm]{
		{Key: "0", Value: algoOptimal},
		{Key: "1", Value: algoTopK},
		{Key: "2", Value: algoExhaustive},
	}, false)
	if err != nil {
		return escapeToNil(err)
	}
	fmt.Fprintln(w)

	if algo == algoExhaustive {
		fmt.Fprintln(w, "NOTE:")
		fmt.Fprintln(w, output.Wrap(
			"The exhaustive search cannot account for waiting (unlike the dynamic "+
				"programming algorithms). That is, there can be no periods between bond purchases.",
			output.DefaultWrapWidth))
		fmt.Fprintln(w)
	}

	data, err := p.DataFile()
	if err != nil {
		return escapeToNil(err)
	}
	fmt.Fprintln(w)

	switch algo {
	case algoOptimal:
		return runInteractiveOptimal(p, data)
	case algoTopK:
		return runInteractiveTopK(p, data)
	default:
		return runInteractiveExhaustive(p, data)
	}
}

func runInteractiveOptimal(p *prompt.Prompter, data *bonddata.Matrix) error {
	w := p.Writer()

	start := time.Now()
	crf, path, err := ladder.Optimal(data)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Optimal cumulative return: %.2f%%\n", output.ReturnPercent(crf))
	for _, action := range path {
		fmt.Fprintln(w, action.Verbose())
	}
	printElapsed(p, elapsed)

	return nil
}

func runInteractiveTopK(p *prompt.Prompter, data *bonddata.Matrix) error {
	w := p.Writer()

	numResults, err := p.NumResults()
	if err != nil {
		return escapeToNil(err)
	}
	fmt.Fprintln(w)

	start := time.Now()
	results, err := ladder.TopK(data, numResults)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	count := counter.Count(data.Tenors(), data.NumMonths())
	fmt.Fprintf(w, "Total possible buying strategies: %s\n", count)
	printElapsed(p, elapsed)

	decision, err := p.Export(data)
	if err != nil {
		return escapeToNil(err)
	}

	if decision.Kind == prompt.PrintToTerminal {
		printResults(p, results)
		return nil
	}

	path, err := output.ExportCSV(decision.Dir, results)
	if err == nil {
		fmt.Fprintln(w, "Export complete, saved to:")
		fmt.Fprintln(w, path)
		fmt.Fprintln(w)
		return nil
	}

	log.Error().Err(err).Str("dir", decision.Dir).Msg("export failed")
	output.Errorf(w, "Failed to export results: %s", err)
	fmt.Fprintln(w)

	if p.PrintFallback() {
		printResults(p, results)
	}
	return nil
}

func runInteractiveExhaustive(p *prompt.Prompter, data *bonddata.Matrix) error {
	w := p.Writer()

	numTop, err := p.NonNegativeInt("Enter how many of the top results you would like;\nOR press ENTER to quit:")
	if err != nil {
		return escapeToNil(err)
	}
	fmt.Fprintln(w)

	numBottom, err := p.NonNegativeInt("Enter how many of the bottom results you would like;\nOR press ENTER to quit:")
	if err != nil {
		return escapeToNil(err)
	}
	fmt.Fprintln(w)

	if numTop == 0 && numBottom == 0 {
		return nil
	}

	start := time.Now()
	extremes, err := ladder.TopBottom(data, numTop, numBottom)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if extremes.TotalStrategies == 0 {
		output.Errorf(w, "No complete buying strategies fit within the horizon")
		return nil
	}

	printExtremes(p, "Top results:", extremes.Top)
	fmt.Fprintln(w)
	printExtremes(p, "Bottom results:", extremes.Bottom)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total results: %s\n", common.GroupDigits(int64(extremes.TotalStrategies)))
	printElapsed(p, elapsed)

	return nil
}

// escapeToNil converts a user escape into a clean exit.
func escapeToNil(err error) error {
	if errors.Is(err, prompt.ErrEscape) {
		return nil
	}
	return err
}

func printElapsed(p *prompt.Prompter, elapsed time.Duration) {
	log.Info().Dur("elapsed", elapsed).Msg("computation finished")
	fmt.Fprintln(p.Writer())
	fmt.Fprintf(p.Writer(), "Elapsed time: %.6f milliseconds\n", float64(elapsed.Nanoseconds())/1e6)
	fmt.Fprintln(p.Writer())
}

func printResults(p *prompt.Prompter, results *ladder.Results) {
	w := p.Writer()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintln(w)
	output.PrintList(w, results, false)
	fmt.Fprintln(w)
}

func printExtremes(p *prompt.Prompter, heading string, list []ladder.RankedStrategy) {
	w := p.Writer()
	fmt.Fprintln(w, heading)
	for i, entry := range list {
		fmt.Fprintf(w, "%d. %.2f%%: %s\n", i+1,
			output.ReturnPercent(entry.CRF), ladder.FormatActions(entry.Path, ","))
	}
}
