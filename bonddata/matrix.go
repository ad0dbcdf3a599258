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

package bonddata

import (
	"fmt"
	"math"
)

// Matrix stores holding-period returns organized by tenor and month.
// The grid array is row major - e.g., for tenors 3, 6 and months 0..2,
//
//	       m0    m1    m2
//	t3     .01   .02   .01
//	t6     .04   .05   .06
//
// grid[0] = .01, grid[3] = .04
//
// A Matrix is immutable after construction and safe for shared
// read-only use.
type Matrix struct {
	tenors      []int
	numMonths   int
	grid        []float64
	sourcePath  string
	fingerprint string
}

// Option configures optional Matrix metadata supplied by the loader.
type Option func(*Matrix)

// WithSourcePath records the path of the file the matrix was loaded from.
// The value is an opaque tag; the engines never touch it.
func WithSourcePath(path string) Option {
	return func(m *Matrix) {
		m.sourcePath = path
	}
}

// WithFingerprint records a content hash of the source file. Used as the
// matrix cache key.
func WithFingerprint(fp string) Option {
	return func(m *Matrix) {
		m.fingerprint = fp
	}
}

// New validates and constructs a Matrix. The grid must be row-major with
// one row per tenor and numMonths columns per row. Tenors must be
// strictly ascending; callers (i.e. the loader) sort before construction.
func New(tenors []int, numMonths int, grid []float64, opts ...Option) (*Matrix, error) {
	if len(tenors) == 0 || numMonths <= 0 {
		return nil, ErrEmpty
	}

	for idx, tenor := range tenors {
		if tenor <= 0 {
			return nil, fmt.Errorf("tenor %d is not positive: %w", tenor, ErrUnsortedTenors)
		}
		if idx > 0 && tenors[idx-1] >= tenor {
			return nil, fmt.Errorf("tenor %d follows %d: %w", tenor, tenors[idx-1], ErrUnsortedTenors)
		}
	}

	if numMonths < tenors[0] {
		return nil, fmt.Errorf("shortest tenor is %d months but only %d months of data: %w",
			tenors[0], numMonths, ErrTooFewMonths)
	}

	if len(grid) != len(tenors)*numMonths {
		return nil, fmt.Errorf("grid has %d entries, want %d: %w",
			len(grid), len(tenors)*numMonths, ErrShapeMismatch)
	}

	// Every entry is multiplied as (1 + r) by the engines; the sum must
	// be finite or overflow detection can no longer trust the sentinel.
	for idx, r := range grid {
		if onePlus := 1.0 + r; math.IsInf(onePlus, 0) || math.IsNaN(onePlus) {
			return nil, fmt.Errorf("return at row %d month %d: %w",
				idx/numMonths, idx%numMonths, ErrNonFiniteReturn)
		}
	}

	m := &Matrix{
		tenors:    append([]int{}, tenors...),
		numMonths: numMonths,
		grid:      append([]float64{}, grid...),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// At returns the holding-period return for the i-th smallest tenor
// purchased at the given month, bounds-checked.
func (m *Matrix) At(row int, month int) (float64, error) {
	if row < 0 || row >= len(m.tenors) {
		return 0, fmt.Errorf("row %d of %d: %w", row, len(m.tenors), ErrOutOfRange)
	}
	if month < 0 || month >= m.numMonths {
		return 0, fmt.Errorf("month %d of %d: %w", month, m.numMonths, ErrOutOfRange)
	}
	return m.grid[row*m.numMonths+month], nil
}

// MustAt is the unchecked accessor used on the optimiser hot path. The
// caller guarantees row and month are in range.
func (m *Matrix) MustAt(row int, month int) float64 {
	return m.grid[row*m.numMonths+month]
}

// NumTenors returns the number of tenor rows.
func (m *Matrix) NumTenors() int {
	return len(m.tenors)
}

// NumMonths returns the horizon length M.
func (m *Matrix) NumMonths() int {
	return m.numMonths
}

// Tenors returns a copy of the ascending tenor list.
func (m *Matrix) Tenors() []int {
	return append([]int{}, m.tenors...)
}

// Tenor returns the tenor at the given row without copying the list.
func (m *Matrix) Tenor(row int) int {
	return m.tenors[row]
}

// MaxTenor returns the longest tenor. Valid because tenors are sorted at
// construction.
func (m *Matrix) MaxTenor() int {
	return m.tenors[len(m.tenors)-1]
}

// MinTenor returns the shortest tenor.
func (m *Matrix) MinTenor() int {
	return m.tenors[0]
}

// SourcePath returns the path of the file this matrix was loaded from,
// or "" when constructed directly.
func (m *Matrix) SourcePath() string {
	return m.sourcePath
}

// Fingerprint returns the content hash of the source file, or "" when
// constructed directly.
func (m *Matrix) Fingerprint() string {
	return m.fingerprint
}
