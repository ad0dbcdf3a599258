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

package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWrapWidth is the line width used for wrapped help text.
const DefaultWrapWidth = 80

// Wrap greedily word-wraps s to the given display width, measuring by
// rune display width rather than byte length. Existing newlines start a
// fresh line.
func Wrap(s string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out strings.Builder

	for i, paragraph := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}

		lineWidth := 0
		for _, word := range strings.Fields(paragraph) {
			w := runewidth.StringWidth(word)
			switch {
			case lineWidth == 0:
				out.WriteString(word)
				lineWidth = w
			case lineWidth+1+w > width:
				out.WriteByte('\n')
				out.WriteString(word)
				lineWidth = w
			default:
				out.WriteByte(' ')
				out.WriteString(word)
				lineWidth += 1 + w
			}
		}
	}

	return out.String()
}
