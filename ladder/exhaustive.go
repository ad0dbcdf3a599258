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
	"github.com/ladder-vault/ladder-opt/bonddata"
)

// RankedStrategy is one contiguous buying strategy with its cumulative
// return factor. Paths contain only buys: this mode disallows waiting.
type RankedStrategy struct {
	CRF  float64
	Path []Action
}

// ExtremeResults holds the requested numbers of best and worst
// contiguous strategies and the total count of maximal strategies
// (those that cannot be extended by any further purchase).
type ExtremeResults struct {
	Top             []RankedStrategy
	Bottom          []RankedStrategy
	TotalStrategies int
}

// TopBottom enumerates every contiguous chain of bond purchases by
// depth-first search and keeps the numTop highest and numBottom lowest
// cumulative return factors. Unlike TopK there can be no periods of
// waiting between purchases.
func TopBottom(data *bonddata.Matrix, numTop int, numBottom int) (*ExtremeResults, error) {
	if numTop < 0 || numBottom < 0 {
		return nil, ErrNegativeResults
	}

	res := &ExtremeResults{
		Top:    make([]RankedStrategy, 0, numTop),
		Bottom: make([]RankedStrategy, 0, numBottom),
	}

	if numTop == 0 && numBottom == 0 {
		return res, nil
	}

	path := make([]Action, 0, data.NumMonths()/data.MinTenor())
	recurseStrategies(data, 0, 1.0, path, numTop, numBottom, res)

	return res, nil
}

// recurseStrategies performs the DFS step: try each tenor purchasable
// at the current month, recording the strategy once no further tenor
// fits within the horizon.
func recurseStrategies(
	data *bonddata.Matrix,
	currentMonth int,
	currentCRF float64,
	path []Action,
	numTop int,
	numBottom int,
	res *ExtremeResults,
) {
	numMonths := data.NumMonths()
	shortest := data.MinTenor()

	for i := 0; i < data.NumTenors(); i++ {
		tenor := data.Tenor(i)
		matures := currentMonth + tenor
		// Tenors are ascending; nothing longer fits either.
		if matures > numMonths {
			break
		}

		factor := 1.0 + data.MustAt(i, currentMonth)
		crf := currentCRF * factor
		path = append(path, Action{Kind: ActionBuy, StartMonth: currentMonth, Length: tenor})

		if matures+shortest > numMonths {
			// Maximal: no further purchase fits.
			res.TotalStrategies++
			res.Top = rankInsert(res.Top, crf, path, numTop, true)
			res.Bottom = rankInsert(res.Bottom, crf, path, numBottom, false)
		} else {
			recurseStrategies(data, matures, crf, path, numTop, numBottom, res)
		}

		path = path[:len(path)-1]
	}
}

// rankInsert places a candidate into a capped ranked list, best first
// for top lists and worst first for bottom lists.
func rankInsert(list []RankedStrategy, crf float64, path []Action, limit int, top bool) []RankedStrategy {
	if limit == 0 {
		return list
	}

	pos := len(list)
	for idx := range list {
		better := crf > list[idx].CRF
		if !top {
			better = crf < list[idx].CRF
		}
		if better {
			pos = idx
			break
		}
	}

	if pos >= limit {
		return list
	}

	entry := RankedStrategy{CRF: crf, Path: append([]Action{}, path...)}

	if len(list) < limit {
		list = append(list, RankedStrategy{})
	}
	copy(list[pos+1:], list[pos:])
	list[pos] = entry

	return list
}
