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

var _ = Describe("Action", func() {
	Context("construction", func() {
		It("rejects negative start months", func() {
			_, err := ladder.NewBuy(-1, 3)
			Expect(err).To(MatchError(ladder.ErrNegativeMonth))
		})

		It("rejects non-positive tenors", func() {
			_, err := ladder.NewBuy(0, 0)
			Expect(err).To(MatchError(ladder.ErrNonPositiveLength))
		})

		It("rejects non-positive wait lengths", func() {
			_, err := ladder.NewWait(2, -3)
			Expect(err).To(MatchError(ladder.ErrNonPositiveLength))
		})
	})

	Context("rendering", func() {
		It("renders buys in short form", func() {
			buy, err := ladder.NewBuy(3, 6)
			Expect(err).To(BeNil())
			Expect(buy.String()).To(Equal("b6"))
		})

		It("renders waits in short form", func() {
			wait, err := ladder.NewWait(0, 2)
			Expect(err).To(BeNil())
			Expect(wait.String()).To(Equal("w2"))
		})

		It("renders buys verbosely", func() {
			buy, err := ladder.NewBuy(3, 6)
			Expect(err).To(BeNil())
			Expect(buy.Verbose()).To(Equal("Month 3: buy 6-month bond"))
		})

		It("renders multi-month waits verbosely", func() {
			wait, err := ladder.NewWait(4, 2)
			Expect(err).To(BeNil())
			Expect(wait.Verbose()).To(Equal("Month 4: wait for 2 months"))
		})

		It("renders single-month waits verbosely", func() {
			wait, err := ladder.NewWait(4, 1)
			Expect(err).To(BeNil())
			Expect(wait.Verbose()).To(Equal("Month 4: wait for 1 month"))
		})
	})

	Context("round-trip", func() {
		It("parses a short-form list back into the original path", func() {
			original := "b6,w2,b3,w1"
			path, err := ladder.ParseActions(original)
			Expect(err).To(BeNil())
			Expect(ladder.FormatActions(path, ",")).To(Equal(original))
		})

		It("recomputes chronological start months", func() {
			path, err := ladder.ParseActions("b6,w2,b3")
			Expect(err).To(BeNil())
			Expect(path).To(HaveLen(3))
			Expect(path[0].StartMonth).To(Equal(0))
			Expect(path[1].StartMonth).To(Equal(6))
			Expect(path[2].StartMonth).To(Equal(8))
		})

		It("rejects unknown action kinds", func() {
			_, err := ladder.ParseActions("b3,x2")
			Expect(err).To(MatchError(ladder.ErrInvalidAction))
		})

		It("rejects non-positive lengths", func() {
			_, err := ladder.ParseActions("b0")
			Expect(err).To(MatchError(ladder.ErrInvalidAction))
		})

		It("rejects empty entries", func() {
			_, err := ladder.ParseActions("b3,,w1")
			Expect(err).To(MatchError(ladder.ErrInvalidAction))
		})
	})
})
