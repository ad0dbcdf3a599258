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
	"container/heap"
	"math"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/rs/zerolog/log"
)

// candidate is one element of the k-way merge: a cumulative return
// factor reachable at the current month, tagged with how it got there.
type candidate struct {
	crf      float64
	tenor    int // 0 = wait, > 0 = bond of that tenor maturing now
	prevRank int // rank within the predecessor month's frontier
	// Carried to avoid recomputation when advancing the list:
	prevMonth int
	factor    float64 // return factor applied to the predecessor CRF
}

// candidateHeap is a max-heap over candidate CRFs.
type candidateHeap []candidate

func (h candidateHeap) Len() int            { return len(h) }
func (h candidateHeap) Less(i, j int) bool  { return h[i].crf > h[j].crf }
func (h candidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// decision records, for one (month, rank) frontier entry, the tenor that
// matured to reach it (0 = wait) and the rank it extends in the
// predecessor month's frontier.
type decision struct {
	tenor    int
	prevRank int
}

const unfilled = -1

// TopK computes the k highest cumulative return factors reachable at
// the final month, each with the action sequence that produces it.
//
// For every month it merges n+1 non-increasing candidate lists (one per
// tenor that can mature at that month, plus waiting) with a max-heap,
// extracting at most k ranks. CRFs are kept in a cyclic window of
// maxTenor+1 rows since no tenor looks back further; decisions are kept
// for the whole horizon because reconstruction walks it backwards.
func TopK(data *bonddata.Matrix, k int) (*Results, error) {
	if k < 0 {
		return nil, ErrNegativeResults
	}

	numTenors := data.NumTenors()
	numMonths := data.NumMonths()
	if k == 0 || numTenors == 0 || numMonths == 0 {
		return &Results{}, nil
	}

	tenors := data.Tenors()

	maxTenor := tenors[numTenors-1]
	window := maxTenor + 1
	if numMonths < maxTenor {
		window = numMonths + 1
	}

	negInf := math.Inf(-1)

	// crfs[row*k+r] is the r-th best CRF in cyclic row `row`.
	crfs := make([]float64, window*k)
	for i := range crfs {
		crfs[i] = negInf
	}

	// decisions[m*k+r] reconstructs the path that reached rank r at
	// month m. This table cannot be windowed.
	decisions := make([]decision, (numMonths+1)*k)
	for i := range decisions {
		decisions[i] = decision{tenor: unfilled, prevRank: unfilled}
	}

	// Base case: the return factor at month 0 is 1, seeded as a wait
	// with no predecessor.
	crfs[0] = 1.0
	decisions[0] = decision{tenor: 0, prevRank: -1}

	// rowIndex maps a month to its physical row in the cyclic buffer.
	rowIndex := make([]int, numMonths+1)
	windowCounter := 1

	resultsFound := 0
	pq := make(candidateHeap, 0, numTenors+1)

	for month := 1; month <= numMonths; month++ {
		rowIndex[month] = windowCounter
		windowCounter++
		if windowCounter == window {
			windowCounter = 0
		}

		// The cyclic slot may hold stale values from month-(window).
		row := rowIndex[month] * k
		for r := 0; r < k; r++ {
			crfs[row+r] = negInf
		}

		// Seed the heap with each list head: waiting plus every tenor
		// that can mature at this month.
		pq = pq[:0]

		prevMonth := month - 1
		pq = append(pq, candidate{
			crf:       crfs[rowIndex[prevMonth]*k],
			tenor:     0,
			prevRank:  0,
			prevMonth: prevMonth,
			factor:    1.0,
		})

		for i := 0; i < numTenors; i++ {
			tenor := tenors[i]
			if month < tenor {
				// Tenors are ascending; nothing longer fits either.
				break
			}
			prevMonth = month - tenor
			factor := 1.0 + data.MustAt(i, prevMonth)
			// The predecessor head is never the sentinel: waiting makes
			// every month reachable from the month-0 seed.
			nextCRF := crfs[rowIndex[prevMonth]*k] * factor
			if math.IsInf(nextCRF, 0) || math.IsNaN(nextCRF) {
				return nil, overflowError(nextCRF, month)
			}
			pq = append(pq, candidate{
				crf:       nextCRF,
				tenor:     tenor,
				prevRank:  0,
				prevMonth: prevMonth,
				factor:    factor,
			})
		}

		heap.Init(&pq)

		// Extract up to k ranks in descending CRF order, advancing the
		// source list of each extracted head.
		rank := 0
		for rank < k && pq.Len() > 0 {
			top := heap.Pop(&pq).(candidate)

			crfs[row+rank] = top.crf
			decisions[month*k+rank] = decision{tenor: top.tenor, prevRank: top.prevRank}
			rank++

			if nextRank := top.prevRank + 1; nextRank < k {
				prevCRF := crfs[rowIndex[top.prevMonth]*k+nextRank]
				// The sentinel marks the end of that month's list.
				if prevCRF != negInf {
					nextCRF := prevCRF * top.factor
					if math.IsInf(nextCRF, 0) || math.IsNaN(nextCRF) {
						return nil, overflowError(nextCRF, month)
					}
					heap.Push(&pq, candidate{
						crf:       nextCRF,
						tenor:     top.tenor,
						prevRank:  nextRank,
						prevMonth: top.prevMonth,
						factor:    top.factor,
					})
				}
			}
		}
		resultsFound = rank
	}

	log.Debug().
		Int("months", numMonths).
		Int("tenors", numTenors).
		Int("requested", k).
		Int("found", resultsFound).
		Msg("frontier computed")

	paths, err := reconstructPaths(decisions, k, numMonths, resultsFound)
	if err != nil {
		return nil, err
	}

	finalRow := rowIndex[numMonths] * k
	finalCRFs := make([]float64, resultsFound)
	copy(finalCRFs, crfs[finalRow:finalRow+resultsFound])

	return &Results{CRFs: finalCRFs, Paths: paths}, nil
}

// reconstructPaths walks the decision table backwards from the final
// month for each produced rank, merging contiguous waits into single
// actions and emitting each path in chronological order.
func reconstructPaths(decisions []decision, k int, numMonths int, resultsFound int) ([][]Action, error) {
	paths := make([][]Action, 0, resultsFound)

	for rank := 0; rank < resultsFound; rank++ {
		var path []Action
		currentMonth := numMonths
		currentRank := rank
		waitStreak := 0

		for currentMonth > 0 {
			d := decisions[currentMonth*k+currentRank]
			if d.tenor == unfilled {
				return nil, ErrCorruptDecisions
			}

			if d.tenor == 0 {
				waitStreak++
				currentMonth--
				currentRank = d.prevRank
				continue
			}

			if waitStreak > 0 {
				wait, err := NewWait(currentMonth, waitStreak)
				if err != nil {
					return nil, err
				}
				path = append(path, wait)
				waitStreak = 0
			}

			buy, err := NewBuy(currentMonth-d.tenor, d.tenor)
			if err != nil {
				return nil, err
			}
			path = append(path, buy)
			currentMonth -= d.tenor
			currentRank = d.prevRank
		}

		if waitStreak > 0 {
			wait, err := NewWait(0, waitStreak)
			if err != nil {
				return nil, err
			}
			path = append(path, wait)
		}

		// Built in reverse; flip to chronological order.
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}

		paths = append(paths, path)
	}

	return paths, nil
}
