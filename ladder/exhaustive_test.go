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

package ladder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ladder-vault/ladder-opt/ladder"
)

var _ = Describe("TopBottom", func() {
	It("rejects negative requests", func() {
		data := mustMatrix([]int{2}, 4, []float64{0.1, 0.1, 0.1, 0.1})
		_, err := ladder.TopBottom(data, -1, 0)
		Expect(err).To(MatchError(ladder.ErrNegativeResults))
	})

	It("returns nothing when nothing is requested", func() {
		data := mustMatrix([]int{2}, 4, []float64{0.1, 0.1, 0.1, 0.1})
		res, err := ladder.TopBottom(data, 0, 0)
		Expect(err).To(BeNil())
		Expect(res.Top).To(BeEmpty())
		Expect(res.Bottom).To(BeEmpty())
		Expect(res.TotalStrategies).To(Equal(0))
	})

	Context("with two tenors over six months", func() {
		var res *ladder.ExtremeResults

		BeforeEach(func() {
			grid := []float64{
				0.10, 0, 0, 0.02, 0, 0, // tenor 3
				0.30, 0, 0, 0, 0, 0, // tenor 6
			}
			data := mustMatrix([]int{3, 6}, 6, grid)

			var err error
			res, err = ladder.TopBottom(data, 2, 1)
			Expect(err).To(BeNil())
		})

		It("counts only maximal contiguous strategies", func() {
			// b3,b3 and b6; a lone b3 can still be extended so it does
			// not count.
			Expect(res.TotalStrategies).To(Equal(2))
		})

		It("ranks the top results descending", func() {
			Expect(res.Top).To(HaveLen(2))
			Expect(res.Top[0].CRF).To(BeNumerically("~", 1.30, 1e-12))
			Expect(ladder.FormatActions(res.Top[0].Path, ",")).To(Equal("b6"))
			Expect(res.Top[1].CRF).To(BeNumerically("~", 1.122, 1e-12))
			Expect(ladder.FormatActions(res.Top[1].Path, ",")).To(Equal("b3,b3"))
		})

		It("ranks the bottom results ascending", func() {
			Expect(res.Bottom).To(HaveLen(1))
			Expect(res.Bottom[0].CRF).To(BeNumerically("~", 1.122, 1e-12))
		})

		It("contains no waits", func() {
			for _, entry := range append(res.Top, res.Bottom...) {
				for _, action := range entry.Path {
					Expect(action.Kind).To(Equal(ladder.ActionBuy))
				}
			}
		})
	})

	It("returns no more entries than there are strategies", func() {
		grid := make([]float64, 8)
		for i := range grid {
			grid[i] = float64(i) / 100.0
		}
		data := mustMatrix([]int{2}, 8, grid)

		// Chains of four 2-month purchases: only one shape, so exactly
		// one maximal strategy exists.
		res, err := ladder.TopBottom(data, 3, 3)
		Expect(err).To(BeNil())
		Expect(res.TotalStrategies).To(Equal(1))
		Expect(res.Top).To(HaveLen(1))
		Expect(res.Bottom).To(HaveLen(1))
	})
})

var _ = Describe("Optimal", func() {
	It("chooses waiting when every return is negative", func() {
		grid := []float64{-0.05, -0.05, -0.05, -0.05}
		data := mustMatrix([]int{2}, 4, grid)

		crf, path, err := ladder.Optimal(data)
		Expect(err).To(BeNil())
		Expect(crf).To(Equal(1.0))
		Expect(ladder.FormatActions(path, ",")).To(Equal("w4"))
	})

	It("compresses interior waits", func() {
		data := mustMatrix([]int{3}, 5, []float64{0.01, 0.02, 0.01, 0.01, 0.01})
		crf, path, err := ladder.Optimal(data)
		Expect(err).To(BeNil())
		Expect(crf).To(BeNumerically("~", 1.02, 1e-12))
		Expect(ladder.FormatActions(path, ",")).To(Equal("w1,b3,w1"))
	})

	It("fails on overflow like the merge engine", func() {
		grid := make([]float64, 2000)
		for i := range grid {
			grid[i] = 1.0
		}
		data := mustMatrix([]int{1}, 2000, grid)

		_, _, err := ladder.Optimal(data)
		var overflow *ladder.OverflowError
		Expect(err).To(BeAssignableToTypeOf(overflow))
	})
})
