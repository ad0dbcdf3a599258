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

package common_test

import (
	"runtime"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/ladder-vault/ladder-opt/common"
)

var _ = Describe("GroupDigits", func() {
	It("leaves short numbers alone", func() {
		Expect(common.GroupDigits(0)).To(Equal("0"))
		Expect(common.GroupDigits(999)).To(Equal("999"))
	})

	It("groups thousands", func() {
		Expect(common.GroupDigits(1000)).To(Equal("1,000"))
		Expect(common.GroupDigits(1234567)).To(Equal("1,234,567"))
		Expect(common.GroupDigits(12345678)).To(Equal("12,345,678"))
	})

	It("keeps the sign out of the grouping", func() {
		Expect(common.GroupDigits(-1234567)).To(Equal("-1,234,567"))
		Expect(common.GroupDigits(-999)).To(Equal("-999"))
	})
})

var _ = Describe("Version", func() {
	It("reports the development version without build metadata", func() {
		// commitHash is only injected by the mage build.
		Expect(common.Version()).To(Equal("1.0.0-dev"))
	})

	It("leads the build report with the program and platform", func() {
		report := common.BuildVersionString()
		Expect(report).To(HavePrefix("ladderopt v1.0.0-dev"))
		Expect(report).To(ContainSubstring(runtime.GOOS + "/" + runtime.GOARCH))
		Expect(report).To(ContainSubstring("Built with: " + runtime.Version()))
	})
})

var _ = Describe("Matrix cache", func() {
	BeforeEach(func() {
		viper.Set("cache.local_size", 4)
		common.SetupCache()
	})

	It("returns cached matrices by fingerprint", func() {
		m, err := bonddata.New([]int{2}, 2, []float64{0.01, 0.02},
			bonddata.WithFingerprint("fp-1"))
		Expect(err).To(BeNil())

		common.CacheMatrix(m)
		cached, ok := common.CachedMatrix("fp-1")
		Expect(ok).To(BeTrue())
		Expect(cached).To(BeIdenticalTo(m))
	})

	It("misses unknown fingerprints", func() {
		_, ok := common.CachedMatrix("nope")
		Expect(ok).To(BeFalse())
	})

	It("ignores matrices without a fingerprint", func() {
		m, err := bonddata.New([]int{2}, 2, []float64{0.01, 0.02})
		Expect(err).To(BeNil())
		common.CacheMatrix(m)
		_, ok := common.CachedMatrix("")
		Expect(ok).To(BeFalse())
	})
})
