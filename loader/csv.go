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

// Package loader reads bond return CSV files into bonddata matrices.
//
// The expected layout is a header row "Tenor,0,1,...,M-1" followed by
// one row per tenor: a positive integer tenor and exactly M
// holding-period returns. Rows need not be pre-sorted; the loader sorts
// by ascending tenor and permutes the grid in lock-step. Lines
// containing only whitespace or commas are skipped.
package loader

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

// CSVError reports a problem with the data file or its contents. These
// errors are recoverable at the prompt: the user corrects the file or
// the path and retries.
type CSVError struct {
	msg string
}

func (e *CSVError) Error() string {
	return e.msg
}

func csvErrorf(format string, args ...interface{}) *CSVError {
	return &CSVError{msg: fmt.Sprintf(format, args...)}
}

// spreadsheetExtensions are formats a user may mistake for CSV.
var spreadsheetExtensions = map[string]bool{
	"xlsx":    true,
	"xls":     true,
	"xlsm":    true,
	"xlsb":    true,
	"numbers": true,
	"ods":     true,
}

// LoadCSV reads, validates, and sorts a bond return file, returning an
// immutable matrix stamped with the source path and a blake3 content
// fingerprint.
func LoadCSV(path string) (*bonddata.Matrix, error) {
	resolved, err := validatedPath(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, csvErrorf("cannot open\n%s", resolved)
	}
	if len(raw) == 0 {
		return nil, csvErrorf("%s\nis empty", resolved)
	}

	sum := blake3.Sum256(raw)
	fingerprint := hex.EncodeToString(sum[:])

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")

	headerLine, headerRowNum, err := headerData(lines)
	if err != nil {
		return nil, err
	}

	numMonths, err := numMonthsInHeader(headerLine)
	if err != nil {
		return nil, err
	}

	tenors, grid, err := loadRows(lines, headerRowNum, numMonths)
	if err != nil {
		return nil, err
	}

	tenors, grid, err = sortRows(tenors, grid, numMonths)
	if err != nil {
		return nil, err
	}

	matrix, err := bonddata.New(tenors, numMonths, grid,
		bonddata.WithSourcePath(resolved),
		bonddata.WithFingerprint(fingerprint))
	if err != nil {
		return nil, csvErrorf("invalid bond return data: %s", err)
	}

	log.Debug().
		Str("path", resolved).
		Str("fingerprint", fingerprint).
		Int("tenors", matrix.NumTenors()).
		Int("months", matrix.NumMonths()).
		Msg("loaded bond return data")

	return matrix, nil
}

// validatedPath expands a leading ~, checks the directory and file
// exist, and enforces the extension policy.
func validatedPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", csvErrorf("no file path provided")
	}

	expanded, err := expandUserPath(path)
	if err != nil {
		return "", csvErrorf("%s", err)
	}

	dir := filepath.Dir(expanded)
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		return "", csvErrorf("directory does not exist:\n%s", dir)
	}

	info, statErr := os.Stat(expanded)
	if statErr != nil {
		return "", csvErrorf("file does not exist:\n%s", expanded)
	}
	if info.IsDir() {
		return "", csvErrorf("%s\nis a directory, not a file", expanded)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(expanded), "."))
	switch {
	case ext == "":
		return "", csvErrorf("file has no extension, must be .csv or .txt")
	case spreadsheetExtensions[ext]:
		return "", csvErrorf("file extension .%s is a spreadsheet format, save as CSV instead", ext)
	case ext != "csv" && ext != "txt":
		return "", csvErrorf("file extension must be .csv or .txt, received .%s", ext)
	}

	return expanded, nil
}

func expandUserPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("cannot resolve home directory")
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// isBlankLine reports whether a CSV line contains only whitespace and
// commas.
func isBlankLine(line string) bool {
	for _, r := range line {
		if !unicode.IsSpace(r) && r != ',' {
			return false
		}
	}
	return true
}

// headerData returns the contents and 1-based line number of the first
// non-blank row.
func headerData(lines []string) (string, int, error) {
	for idx, line := range lines {
		if isBlankLine(line) {
			continue
		}
		return line, idx + 1, nil
	}
	return "", 0, csvErrorf("all lines blank")
}

// numMonthsInHeader verifies the header and returns the number of
// months provided. Cell 0 must be "Tenor"; the remaining cells must be
// the consecutive integers 0..M-1.
func numMonthsInHeader(header string) (int, error) {
	cells := strings.Split(header, ",")

	first := strings.TrimSpace(cells[0])
	if !strings.EqualFold(first, "tenor") {
		return 0, csvErrorf("first entry should be \"Tenor\", received %s", first)
	}

	currentMonth := 0
	for _, cell := range cells[1:] {
		cell = strings.TrimSpace(cell)
		parsed, err := strconv.Atoi(cell)
		if err != nil || parsed != currentMonth {
			return 0, csvErrorf("missing or mislabelled month %d: found %s", currentMonth, cell)
		}
		currentMonth++
	}

	if currentMonth == 0 {
		return 0, csvErrorf("no bond return data")
	}
	return currentMonth, nil
}

func parseTenor(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("missing tenor")
	}

	tenor, err := strconv.Atoi(cell)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if strings.HasPrefix(cell, "-") {
				return 0, errors.New("tenor must be a positive integer")
			}
			return 0, errors.New("tenor is too long")
		}
		return 0, errors.New("invalid tenor")
	}
	if tenor <= 0 {
		return 0, errors.New("tenor must be a positive integer")
	}
	return tenor, nil
}

func parseBondReturn(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("missing bond return")
	}

	r, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			if strings.HasPrefix(cell, "-") {
				return 0, errors.New("bond return is too small")
			}
			return 0, errors.New("bond return is too large")
		}
		return 0, errors.New("invalid bond return")
	}
	if math.IsNaN(r) {
		return 0, errors.New("invalid bond return")
	}

	// The engines multiply by (1 + return), so that is the quantity that
	// must stay finite, not just the return itself.
	if onePlus := 1.0 + r; math.IsInf(onePlus, 0) {
		if math.Signbit(onePlus) {
			return 0, errors.New("bond return is too small")
		}
		return 0, errors.New("bond return is too large")
	}
	return r, nil
}

// loadRows parses every data row after the header into an unsorted
// tenor list and row-major grid. Errors cite the 1-based row number and
// the month of the offending cell.
func loadRows(lines []string, headerRowNum int, numMonths int) ([]int, []float64, error) {
	var tenors []int
	var grid []float64

	tenorsSeen := make(map[int]bool)

	for idx := headerRowNum; idx < len(lines); idx++ {
		line := lines[idx]
		if isBlankLine(line) {
			continue
		}
		rowNum := idx + 1

		cells := strings.Split(line, ",")

		tenor, err := parseTenor(cells[0])
		if err != nil {
			return nil, nil, csvErrorf("row %d: %s", rowNum, err)
		}
		if tenorsSeen[tenor] {
			return nil, nil, csvErrorf("row %d: duplicate tenor %d", rowNum, tenor)
		}
		tenorsSeen[tenor] = true
		tenors = append(tenors, tenor)

		base := len(grid)
		grid = append(grid, make([]float64, numMonths)...)

		currentMonth := 0
		for _, cell := range cells[1:] {
			if currentMonth >= numMonths {
				return nil, nil, csvErrorf("row %d: too many bond returns, expected %d months", rowNum, numMonths)
			}
			r, err := parseBondReturn(cell)
			if err != nil {
				return nil, nil, csvErrorf("row %d, month %d: %s", rowNum, currentMonth, err)
			}
			grid[base+currentMonth] = r
			currentMonth++
		}

		if currentMonth != numMonths {
			if currentMonth == numMonths-1 {
				return nil, nil, csvErrorf("row %d: missing month %d", rowNum, numMonths-1)
			}
			return nil, nil, csvErrorf("row %d: missing months %d to %d", rowNum, currentMonth, numMonths-1)
		}
	}

	if len(tenors) == 0 {
		return nil, nil, csvErrorf("no bond return data")
	}
	return tenors, grid, nil
}

// sortRows returns the tenor list in ascending order with the grid rows
// permuted in lock-step.
func sortRows(tenors []int, grid []float64, numMonths int) ([]int, []float64, error) {
	indices := make([]int, len(tenors))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(a, b int) bool {
		return tenors[indices[a]] < tenors[indices[b]]
	})

	if shortest := tenors[indices[0]]; numMonths < shortest {
		return nil, nil, csvErrorf("shortest tenor is %d months, but only %d months of data provided",
			shortest, numMonths)
	}

	sortedTenors := make([]int, len(tenors))
	sortedGrid := make([]float64, len(grid))

	for r, src := range indices {
		sortedTenors[r] = tenors[src]
		copy(sortedGrid[r*numMonths:(r+1)*numMonths], grid[src*numMonths:(src+1)*numMonths])
	}

	return sortedTenors, sortedGrid, nil
}
