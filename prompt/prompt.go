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

// Package prompt implements the interactive line prompts driving the
// optimiser. Readers and writers are injected so the flows are testable
// without a terminal. An empty entry means escape.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEscape is returned when the user backs out of a prompt. It is a
// normal exit condition, not a failure.
var ErrEscape = errors.New("user escaped the prompt")

// Prompter reads line-oriented answers from r and writes prompt text to w.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Writer exposes the prompt output stream for callers that interleave
// their own messages.
func (p *Prompter) Writer() io.Writer {
	return p.w
}

// Line prints the prompt text and reads one trimmed line. EOF on the
// input stream is treated as escape.
func (p *Prompter) Line(promptText string) (string, error) {
	fmt.Fprintln(p.w, promptText)

	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrEscape
		}
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Validated re-prompts until the entry passes valid. An empty entry
// escapes.
func (p *Prompter) Validated(promptText string, valid func(string) bool, invalidMsg string) (string, error) {
	for {
		entry, err := p.Line(promptText)
		if err != nil {
			return "", err
		}
		if entry == "" {
			return "", ErrEscape
		}
		if valid(entry) {
			return entry, nil
		}
		fmt.Fprintln(p.w, invalidMsg)
		fmt.Fprintln(p.w)
	}
}

// PositiveInt prompts for an integer >= 1.
func (p *Prompter) PositiveInt(promptText string) (int, error) {
	entry, err := p.Validated(promptText, func(s string) bool {
		n, convErr := strconv.Atoi(s)
		return convErr == nil && n >= 1
	}, "Entry must be a positive integer")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(entry)
}

// NonNegativeInt prompts for an integer >= 0.
func (p *Prompter) NonNegativeInt(promptText string) (int, error) {
	entry, err := p.Validated(promptText, func(s string) bool {
		n, convErr := strconv.Atoi(s)
		return convErr == nil && n >= 0
	}, "Entry must be a non-negative integer")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(entry)
}

// Entry maps a keyword the user may type to the value it selects.
type Entry[T any] struct {
	Key   string
	Value T
}

// Mapping prompts until the entry matches one of the keys, returning
// the mapped value. An empty entry escapes.
func Mapping[T any](p *Prompter, promptText string, entries []Entry[T], caseSensitive bool) (T, error) {
	var zero T
	for {
		entry, err := p.Line(promptText)
		if err != nil {
			return zero, err
		}
		if entry == "" {
			return zero, ErrEscape
		}
		for _, e := range entries {
			if entry == e.Key || (!caseSensitive && strings.EqualFold(entry, e.Key)) {
				return e.Value, nil
			}
		}
		fmt.Fprintln(p.w, "Invalid entry")
		fmt.Fprintln(p.w)
	}
}

// ConfirmQuit asks the user to confirm leaving the program. Pressing
// ENTER again confirms; anything else returns to the previous prompt.
func (p *Prompter) ConfirmQuit() bool {
	entry, err := p.Line("Press ENTER again to quit; OR enter anything else to go back:")
	if err != nil {
		return true
	}
	return entry == ""
}
