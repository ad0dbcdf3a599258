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

package common

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Injected by the mage build via ldflags.
var (
	commitHash string
	buildDate  string
)

// baseVersion is the semantic version of ladderopt. Every build reports
// it unchanged; only the build metadata below varies.
const baseVersion = "1.0.0-dev"

// Version returns the version string, tagged with the commit it was
// built from when a commit hash was injected.
func Version() string {
	if commitHash == "" {
		return baseVersion
	}
	return baseVersion + "+" + strings.ToLower(commitHash)
}

// BuildVersionString renders the full "ladderopt version" report:
// version, platform, build metadata, and the module dependencies baked
// into the binary by the Go linker.
func BuildVersionString() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "ladderopt v%s %s/%s\n", Version(), runtime.GOOS, runtime.GOARCH)

	date := buildDate
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(&sb, "\nBuild Date: %s\nBuilt with: %s\n", date, runtime.Version())

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return sb.String()
	}

	sb.WriteString("\nDependencies:\n")
	for _, dep := range bi.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}
		fmt.Fprintf(&sb, "  %s %s\n", mod.Path, mod.Version)
	}

	return sb.String()
}
