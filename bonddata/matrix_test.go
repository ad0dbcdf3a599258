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

package bonddata_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ladder-vault/ladder-opt/bonddata"
)

var _ = Describe("Matrix", func() {
	Context("construction", func() {
		It("rejects an empty tenor list", func() {
			_, err := bonddata.New(nil, 4, nil)
			Expect(err).To(MatchError(bonddata.ErrEmpty))
		})

		It("rejects a zero-month horizon", func() {
			_, err := bonddata.New([]int{2}, 0, nil)
			Expect(err).To(MatchError(bonddata.ErrEmpty))
		})

		It("rejects unsorted tenors", func() {
			_, err := bonddata.New([]int{6, 3}, 6, make([]float64, 12))
			Expect(err).To(MatchError(bonddata.ErrUnsortedTenors))
		})

		It("rejects duplicate tenors", func() {
			_, err := bonddata.New([]int{3, 3}, 6, make([]float64, 12))
			Expect(err).To(MatchError(bonddata.ErrUnsortedTenors))
		})

		It("rejects non-positive tenors", func() {
			_, err := bonddata.New([]int{0, 3}, 6, make([]float64, 12))
			Expect(err).To(MatchError(bonddata.ErrUnsortedTenors))
		})

		It("rejects a grid of the wrong shape", func() {
			_, err := bonddata.New([]int{3}, 6, make([]float64, 5))
			Expect(err).To(MatchError(bonddata.ErrShapeMismatch))
		})

		It("rejects a horizon shorter than the shortest tenor", func() {
			_, err := bonddata.New([]int{3, 6}, 2, make([]float64, 4))
			Expect(err).To(MatchError(bonddata.ErrTooFewMonths))
		})

		It("rejects returns whose factor is not finite", func() {
			grid := []float64{0.01, math.Inf(1), 0.01}
			_, err := bonddata.New([]int{3}, 3, grid)
			Expect(err).To(MatchError(bonddata.ErrNonFiniteReturn))
		})
	})

	Context("with valid data", func() {
		var m *bonddata.Matrix

		BeforeEach(func() {
			var err error
			m = nil
			m, err = bonddata.New([]int{3, 6}, 6, []float64{
				0.01, 0.02, 0.03, 0.04, 0.05, 0.06,
				0.11, 0.12, 0.13, 0.14, 0.15, 0.16,
			}, bonddata.WithSourcePath("returns.csv"), bonddata.WithFingerprint("abc123"))
			Expect(err).To(BeNil())
		})

		It("exposes its dimensions", func() {
			Expect(m.NumTenors()).To(Equal(2))
			Expect(m.NumMonths()).To(Equal(6))
			Expect(m.MinTenor()).To(Equal(3))
			Expect(m.MaxTenor()).To(Equal(6))
			Expect(m.Tenors()).To(Equal([]int{3, 6}))
		})

		It("fetches returns by row and month", func() {
			r, err := m.At(1, 2)
			Expect(err).To(BeNil())
			Expect(r).To(Equal(0.13))
			Expect(m.MustAt(0, 5)).To(Equal(0.06))
		})

		It("bounds-checks row and month", func() {
			_, err := m.At(2, 0)
			Expect(err).To(MatchError(bonddata.ErrOutOfRange))
			_, err = m.At(0, 6)
			Expect(err).To(MatchError(bonddata.ErrOutOfRange))
			_, err = m.At(-1, 0)
			Expect(err).To(MatchError(bonddata.ErrOutOfRange))
		})

		It("carries loader metadata untouched", func() {
			Expect(m.SourcePath()).To(Equal("returns.csv"))
			Expect(m.Fingerprint()).To(Equal("abc123"))
		})

		It("is not aliased by the caller's slices", func() {
			tenors := m.Tenors()
			tenors[0] = 99
			Expect(m.Tenor(0)).To(Equal(3))
		})
	})
})
