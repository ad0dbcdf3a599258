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

// Package output renders and persists optimiser results: CSV records,
// plain and tabular terminal listings, and JSON.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ladder-vault/ladder-opt/ladder"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
)

const (
	resultsFileBase  = "bond_results"
	resultFilesLimit = 10_000
)

// ErrTooManyResultFiles is returned once every candidate filename up to
// the limit already exists in the target directory.
var ErrTooManyResultFiles = errors.New("too many result files exist")

// DirectoryError reports an unusable export directory. Recoverable at
// the prompt: the user picks another location or prints instead.
type DirectoryError struct {
	Dir string
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("unable to access directory %s", e.Dir)
}

// ReturnPercent converts a cumulative return factor to the percentage
// the writer renders, e.g. 1.041 -> 4.1.
func ReturnPercent(crf float64) float64 {
	return 100*crf - 100
}

// FormatCSVRow renders one result as a CSV record:
// rank, percentage return, quoted short-form action list.
func FormatCSVRow(res *ladder.Results, i int) string {
	return fmt.Sprintf("%d,%.2f%%,%q",
		i+1,
		ReturnPercent(res.CRFs[i]),
		ladder.FormatActions(res.Paths[i], ","))
}

// WriteCSV writes every ranked result to w, one record per line.
func WriteCSV(w io.Writer, res *ladder.Results) error {
	for i := 0; i < res.Len(); i++ {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, FormatCSVRow(res, i)); err != nil {
			return err
		}
	}
	return nil
}

// GenerateFilename returns the first unused results filename in dir:
// bond_results.csv, then bond_results_2.csv and so on up to the limit.
func GenerateFilename(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &DirectoryError{Dir: dir}
	}

	candidate := filepath.Join(dir, resultsFileBase+".csv")
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	for i := 2; i <= resultFilesLimit; i++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d.csv", resultsFileBase, i))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", ErrTooManyResultFiles
}

// ExportCSV writes the results to a uniquely named file in dir and
// returns the path written.
func ExportCSV(dir string, res *ladder.Results) (string, error) {
	path, err := GenerateFilename(dir)
	if err != nil {
		return "", err
	}

	fh, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to write to %s: %w", path, err)
	}

	if err := WriteCSV(fh, res); err != nil {
		fh.Close()
		return "", fmt.Errorf("failed to write to %s: %w", path, err)
	}
	if err := fh.Close(); err != nil {
		return "", fmt.Errorf("failed to write to %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("results", res.Len()).Msg("exported results")

	return path, nil
}

// PrintList writes a numbered result listing. With verbose set each
// action is rendered in its long form.
func PrintList(w io.Writer, res *ladder.Results, verbose bool) {
	for i := 0; i < res.Len(); i++ {
		actions := ladder.FormatActions(res.Paths[i], ",")
		if verbose {
			actions = ladder.FormatActionsVerbose(res.Paths[i], "; ")
		}
		fmt.Fprintf(w, "%d. %.2f%%: %s\n", i+1, ReturnPercent(res.CRFs[i]), actions)
	}
}

// Table renders the results as an aligned terminal table.
func Table(res *ladder.Results) string {
	if res.Len() == 0 {
		return "<NO RESULTS>"
	}

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Rank", "Return", "Strategy"})
	table.SetBorder(false)

	for i := 0; i < res.Len(); i++ {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f%%", ReturnPercent(res.CRFs[i])),
			ladder.FormatActions(res.Paths[i], ","),
		})
	}

	table.Render()
	return s.String()
}
