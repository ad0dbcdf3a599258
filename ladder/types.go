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

package ladder

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeMonth     = errors.New("month cannot be negative")
	ErrNonPositiveLength = errors.New("tenor / wait length must be positive")
	ErrInvalidAction     = errors.New("invalid action")
	ErrNegativeResults   = errors.New("cannot request a negative number of results")
	ErrCorruptDecisions  = errors.New("decision table corrupt during path reconstruction")
)

// Results holds the top-k cumulative return factors reachable at the
// final month, sorted descending, with Paths[r] the action sequence
// that produces CRFs[r].
type Results struct {
	CRFs  []float64
	Paths [][]Action
}

// Len returns the number of ranked results.
func (r *Results) Len() int {
	return len(r.CRFs)
}

// OverflowError reports that a running return product left the finite
// double range. Month is the first month whose candidate was non-finite.
type OverflowError struct {
	Month int
	Above bool
}

func (e *OverflowError) Error() string {
	if e.Above {
		return fmt.Sprintf("return exceeding finite limit (%.3e) possible by month %d",
			math.MaxFloat64, e.Month)
	}
	return fmt.Sprintf("return below finite limit (%.3e) possible by month %d",
		-math.MaxFloat64, e.Month)
}

func overflowError(value float64, month int) *OverflowError {
	return &OverflowError{Month: month, Above: !math.Signbit(value)}
}
