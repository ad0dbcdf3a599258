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

package output_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/goccy/go-json"
	"github.com/ladder-vault/ladder-opt/ladder"
	"github.com/ladder-vault/ladder-opt/output"
)

// sampleResults holds the best and the best wait-bearing strategies of
// the README worked example, with the CRFs its grid produces.
func sampleResults() *ladder.Results {
	first, err := ladder.ParseActions("b6,b3,b3")
	Expect(err).To(BeNil())
	second, err := ladder.ParseActions("w2,b3,b6,w1")
	Expect(err).To(BeNil())

	return &ladder.Results{
		CRFs:  []float64{1.041002, 1.032494},
		Paths: [][]ladder.Action{first, second},
	}
}

var _ = Describe("Results writer", func() {
	Context("CSV records", func() {
		It("formats rank, percentage, and quoted actions", func() {
			res := sampleResults()
			Expect(output.FormatCSVRow(res, 0)).To(Equal(`1,4.10%,"b6,b3,b3"`))
			Expect(output.FormatCSVRow(res, 1)).To(Equal(`2,3.25%,"w2,b3,b6,w1"`))
		})

		It("writes one record per line", func() {
			var sb strings.Builder
			Expect(output.WriteCSV(&sb, sampleResults())).To(Succeed())
			lines := strings.Split(sb.String(), "\n")
			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(HavePrefix("1,"))
			Expect(lines[1]).To(HavePrefix("2,"))
		})
	})

	Context("unique filenames", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "writer-test")
			Expect(err).To(BeNil())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		It("starts with the base name", func() {
			name, err := output.GenerateFilename(dir)
			Expect(err).To(BeNil())
			Expect(name).To(Equal(filepath.Join(dir, "bond_results.csv")))
		})

		It("suffixes an index once the base exists", func() {
			Expect(os.WriteFile(filepath.Join(dir, "bond_results.csv"), nil, 0600)).To(Succeed())
			name, err := output.GenerateFilename(dir)
			Expect(err).To(BeNil())
			Expect(name).To(Equal(filepath.Join(dir, "bond_results_2.csv")))

			Expect(os.WriteFile(name, nil, 0600)).To(Succeed())
			name, err = output.GenerateFilename(dir)
			Expect(err).To(BeNil())
			Expect(name).To(Equal(filepath.Join(dir, "bond_results_3.csv")))
		})

		It("rejects an inaccessible directory", func() {
			_, err := output.GenerateFilename(filepath.Join(dir, "missing"))
			var dirErr *output.DirectoryError
			Expect(errors.As(err, &dirErr)).To(BeTrue())
		})

		It("exports and reports the path written", func() {
			path, err := output.ExportCSV(dir, sampleResults())
			Expect(err).To(BeNil())

			contents, err := os.ReadFile(path)
			Expect(err).To(BeNil())
			Expect(string(contents)).To(Equal("1,4.10%,\"b6,b3,b3\"\n2,3.25%,\"w2,b3,b6,w1\""))
		})
	})

	Context("terminal rendering", func() {
		It("prints a numbered list", func() {
			var sb strings.Builder
			output.PrintList(&sb, sampleResults(), false)
			Expect(sb.String()).To(Equal("1. 4.10%: b6,b3,b3\n2. 3.25%: w2,b3,b6,w1\n"))
		})

		It("prints verbose actions on request", func() {
			var sb strings.Builder
			output.PrintList(&sb, sampleResults(), true)
			Expect(sb.String()).To(ContainSubstring("Month 0: buy 6-month bond"))
			Expect(sb.String()).To(ContainSubstring("Month 11: wait for 1 month"))
		})

		It("tabulates results with headers", func() {
			table := output.Table(sampleResults())
			Expect(table).To(ContainSubstring("RANK"))
			Expect(table).To(ContainSubstring("4.10%"))
			Expect(table).To(ContainSubstring("b6,b3,b3"))
		})

		It("notes when there are no results", func() {
			Expect(output.Table(&ladder.Results{})).To(Equal("<NO RESULTS>"))
		})
	})

	Context("JSON encoding", func() {
		It("round-trips ranks, returns, and actions", func() {
			var sb strings.Builder
			Expect(output.WriteJSON(&sb, sampleResults())).To(Succeed())

			var decoded []struct {
				Rank          int      `json:"rank"`
				ReturnPercent float64  `json:"returnPercent"`
				Actions       []string `json:"actions"`
			}
			Expect(json.Unmarshal([]byte(sb.String()), &decoded)).To(Succeed())
			Expect(decoded).To(HaveLen(2))
			Expect(decoded[0].Rank).To(Equal(1))
			Expect(decoded[0].ReturnPercent).To(BeNumerically("~", 4.1002, 1e-3))
			Expect(decoded[1].Actions).To(Equal([]string{"w2", "b3", "b6", "w1"}))
		})
	})
})

var _ = Describe("Wrap", func() {
	It("wraps long text at the display width", func() {
		wrapped := output.Wrap("alpha beta gamma delta", 11)
		Expect(wrapped).To(Equal("alpha beta\ngamma delta"))
	})

	It("keeps existing paragraph breaks", func() {
		wrapped := output.Wrap("first paragraph\nsecond", 40)
		Expect(wrapped).To(Equal("first paragraph\nsecond"))
	})

	It("leaves short text alone", func() {
		Expect(output.Wrap("short", 40)).To(Equal("short"))
	})
})
