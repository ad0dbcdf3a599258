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

package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/ladder-vault/ladder-opt/common"
	"github.com/ladder-vault/ladder-opt/loader"
	"github.com/ladder-vault/ladder-opt/output"
	"github.com/spf13/viper"
)

// DefaultWarnResultsThreshold triggers the large-request warning when
// the user asks for more results than this.
const DefaultWarnResultsThreshold = 1_000_000

const fileHelpText = `The data file must be a CSV (or comma-separated .txt) laid out as follows.

The first row is the header: the first cell must be "Tenor" and the remaining cells must be the consecutive month numbers 0, 1, 2, and so on, one per month of data.

Each following row describes one bond tenor: the first cell is the tenor length in months (a positive integer, no duplicates), and the remaining cells are the holding-period returns for a bond of that tenor purchased in each month. A return of 0.01 means 1%. Every row must have a return for every month in the header.

Rows may appear in any order. Blank lines are ignored. Spreadsheet formats such as .xlsx must be exported to CSV first.`

const dataFilePromptText = `Enter the path to your bond return data file (e.g. bond_data.csv or txt);
OR enter 'h' to show file help;
OR press ENTER to quit:`

// DataFile prompts for a bond return file until one loads, the user
// escapes, or a non-recoverable error occurs. Parsed matrices are
// cached by content fingerprint so retries skip re-parsing.
func (p *Prompter) DataFile() (*bonddata.Matrix, error) {
	for {
		entry, err := p.Line(dataFilePromptText)
		if err != nil {
			return nil, err
		}

		if entry == "" {
			if p.ConfirmQuit() {
				return nil, ErrEscape
			}
			fmt.Fprintln(p.w)
			continue
		}

		if len(entry) == 1 && (entry == "h" || entry == "H") {
			fmt.Fprintln(p.w)
			fmt.Fprintln(p.w, output.Wrap(fileHelpText, output.DefaultWrapWidth))
			fmt.Fprintln(p.w)
			continue
		}

		if fp, fpErr := loader.Fingerprint(entry); fpErr == nil {
			if cached, ok := common.CachedMatrix(fp); ok {
				return cached, nil
			}
		}

		matrix, loadErr := loader.LoadCSV(entry)
		if loadErr != nil {
			var csvErr *loader.CSVError
			if errors.As(loadErr, &csvErr) {
				output.Errorf(p.w, "Failed to load data: %s", csvErr)
				fmt.Fprintln(p.w)
				continue
			}
			return nil, loadErr
		}

		common.CacheMatrix(matrix)
		return matrix, nil
	}
}

// NumResults prompts for how many top results to compute. Requests
// above the warning threshold need explicit confirmation.
func (p *Prompter) NumResults() (int, error) {
	threshold := viper.GetInt("warn_results_threshold")
	if threshold <= 0 {
		threshold = DefaultWarnResultsThreshold
	}

	for {
		n, err := p.PositiveInt("Enter how many of the top results you would like;\nOR press ENTER to quit:")
		if err != nil {
			return 0, err
		}

		if n > threshold {
			fmt.Fprintln(p.w)
			output.Warnf(p.w, "WARNING: You have requested a large number of results (%s).",
				common.GroupDigits(int64(n)))
			proceed, mapErr := Mapping(p, "Enter \"y\" to proceed anyway;\nOR press ENTER to input a new value:",
				[]Entry[bool]{{Key: "y", Value: true}}, false)
			if mapErr != nil || !proceed {
				fmt.Fprintln(p.w)
				continue
			}
		}

		return n, nil
	}
}

// ExportKind selects what to do with the computed results.
type ExportKind int

const (
	ExportToDir ExportKind = iota
	PrintToTerminal
)

// ExportDecision is the user's choice of results destination.
type ExportDecision struct {
	Kind ExportKind
	Dir  string
}

const dirUnavailableLabel = "(unavailable)"

type exportChoice int

const (
	chooseSpecified exportChoice = iota
	chooseDataDir
	chooseProgramDir
	choosePrint
)

func dirOrUnavailable(dir string, err error) string {
	if err != nil || dir == "" {
		return dirUnavailableLabel
	}
	return dir
}

// Export prompts for where to send the results: a user-specified
// directory, the data file's directory, the program's working
// directory, or the terminal. Unavailable directories stay listed so
// option numbering is stable.
func (p *Prompter) Export(data *bonddata.Matrix) (ExportDecision, error) {
	for {
		dataDir := dirUnavailableLabel
		if data.SourcePath() != "" {
			abs, err := filepath.Abs(data.SourcePath())
			dataDir = dirOrUnavailable(filepath.Dir(abs), err)
		}

		wd, err := os.Getwd()
		programDir := dirOrUnavailable(wd, err)

		entries := []Entry[exportChoice]{
			{Key: "0", Value: chooseSpecified},
			{Key: "p", Value: choosePrint},
		}

		promptText := "Enter 0 to specify an output directory;\n\n"
		if dataDir != programDir || dataDir == dirUnavailableLabel {
			promptText += fmt.Sprintf(
				"OR enter 1 to export results to same directory as data:\n%s\n\n"+
					"OR enter 2 to export results to same directory as program:\n%s\n\n",
				dataDir, programDir)
			entries = append(entries,
				Entry[exportChoice]{Key: "1", Value: chooseDataDir},
				Entry[exportChoice]{Key: "2", Value: chooseProgramDir})
		} else {
			promptText += fmt.Sprintf(
				"OR enter 1 to export results to same directory as data / program:\n%s\n\n",
				dataDir)
			entries = append(entries, Entry[exportChoice]{Key: "1", Value: chooseDataDir})
		}
		promptText += "OR enter \"p\" to print results to terminal;\n\nOR press ENTER to quit:"

		choice, err := Mapping(p, promptText, entries, false)
		if err != nil {
			return ExportDecision{}, err
		}

		const dirUnavailableMsg = "Directory unavailable (may have been renamed or deleted)"

		switch choice {
		case choosePrint:
			return ExportDecision{Kind: PrintToTerminal}, nil
		case chooseDataDir:
			if dataDir == dirUnavailableLabel {
				output.Errorf(p.w, dirUnavailableMsg)
				fmt.Fprintln(p.w)
				continue
			}
			return ExportDecision{Kind: ExportToDir, Dir: dataDir}, nil
		case chooseProgramDir:
			if programDir == dirUnavailableLabel {
				output.Errorf(p.w, dirUnavailableMsg)
				fmt.Fprintln(p.w)
				continue
			}
			return ExportDecision{Kind: ExportToDir, Dir: programDir}, nil
		case chooseSpecified:
			dir, lineErr := p.Line("Enter the output directory path;\nOR press ENTER to go back:")
			if lineErr != nil {
				return ExportDecision{}, lineErr
			}
			if dir == "" {
				fmt.Fprintln(p.w)
				continue
			}
			if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
				output.Errorf(p.w, "Unable to access directory %s", dir)
				fmt.Fprintln(p.w)
				continue
			}
			return ExportDecision{Kind: ExportToDir, Dir: dir}, nil
		}
	}
}

// PrintFallback offers to print results to the terminal after a failed
// export. Returns true to print, false to abort.
func (p *Prompter) PrintFallback() bool {
	proceed, err := Mapping(p, "Enter \"p\" to print results to the terminal;\nOR press ENTER to abort:",
		[]Entry[bool]{{Key: "p", Value: true}}, false)
	if err != nil {
		return false
	}
	return proceed
}
