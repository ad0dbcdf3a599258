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
	"math"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"gonum.org/v1/gonum/floats"
)

// Optimal computes only the single best cumulative return factor and
// its buying strategy. It is the scalar special case of TopK and is
// used as an independent cross-check of the merge engine.
func Optimal(data *bonddata.Matrix) (float64, []Action, error) {
	numTenors := data.NumTenors()
	numMonths := data.NumMonths()
	tenors := data.Tenors()

	negInf := math.Inf(-1)

	// bestCRF[m] holds the optimal cumulative return factor at month m;
	// bestTenor[m] the tenor that matured to reach it (0 = wait).
	bestCRF := make([]float64, numMonths+1)
	for i := range bestCRF {
		bestCRF[i] = negInf
	}
	bestCRF[0] = 1.0

	bestTenor := make([]int, numMonths+1)
	for i := range bestTenor {
		bestTenor[i] = unfilled
	}

	cands := make([]float64, 0, numTenors+1)
	candTenors := make([]int, 0, numTenors+1)

	for month := 1; month <= numMonths; month++ {
		cands = cands[:0]
		candTenors = candTenors[:0]

		// Waiting carries the previous month's best forward unchanged.
		cands = append(cands, bestCRF[month-1])
		candTenors = append(candTenors, 0)

		for i := 0; i < numTenors; i++ {
			tenor := tenors[i]
			if month < tenor {
				break
			}
			factor := 1.0 + data.MustAt(i, month-tenor)
			crf := bestCRF[month-tenor] * factor
			if math.IsInf(crf, 0) || math.IsNaN(crf) {
				return 0, nil, overflowError(crf, month)
			}
			cands = append(cands, crf)
			candTenors = append(candTenors, tenor)
		}

		best := floats.MaxIdx(cands)
		bestCRF[month] = cands[best]
		bestTenor[month] = candTenors[best]
	}

	// Walk the tenor chain backwards, merging wait streaks.
	var path []Action
	currentMonth := numMonths
	waitStreak := 0

	for currentMonth > 0 {
		tenor := bestTenor[currentMonth]
		if tenor == unfilled {
			return 0, nil, ErrCorruptDecisions
		}
		if tenor == 0 {
			waitStreak++
			currentMonth--
			continue
		}
		if waitStreak > 0 {
			wait, err := NewWait(currentMonth, waitStreak)
			if err != nil {
				return 0, nil, err
			}
			path = append(path, wait)
			waitStreak = 0
		}
		buy, err := NewBuy(currentMonth-tenor, tenor)
		if err != nil {
			return 0, nil, err
		}
		path = append(path, buy)
		currentMonth -= tenor
	}
	if waitStreak > 0 {
		wait, err := NewWait(0, waitStreak)
		if err != nil {
			return 0, nil, err
		}
		path = append(path, wait)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return bestCRF[numMonths], path, nil
}
