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
	"fmt"
	"strconv"
	"strings"
)

// ActionKind distinguishes buying a bond from waiting.
type ActionKind int

const (
	ActionWait ActionKind = iota
	ActionBuy
)

// Action is one step of a buying strategy: either buy a bond of Length
// months at StartMonth, or wait Length months from StartMonth. Adjacent
// waits are always merged into a single Action.
type Action struct {
	Kind       ActionKind
	StartMonth int
	Length     int
}

// NewBuy constructs a buy action. The tenor is carried in Length.
func NewBuy(startMonth int, tenor int) (Action, error) {
	if startMonth < 0 {
		return Action{}, fmt.Errorf("start month %d: %w", startMonth, ErrNegativeMonth)
	}
	if tenor <= 0 {
		return Action{}, fmt.Errorf("tenor %d: %w", tenor, ErrNonPositiveLength)
	}
	return Action{Kind: ActionBuy, StartMonth: startMonth, Length: tenor}, nil
}

// NewWait constructs a wait action.
func NewWait(startMonth int, length int) (Action, error) {
	if startMonth < 0 {
		return Action{}, fmt.Errorf("start month %d: %w", startMonth, ErrNegativeMonth)
	}
	if length <= 0 {
		return Action{}, fmt.Errorf("wait length %d: %w", length, ErrNonPositiveLength)
	}
	return Action{Kind: ActionWait, StartMonth: startMonth, Length: length}, nil
}

// String renders the short form: b<tenor> for buys, w<length> for waits.
func (a Action) String() string {
	if a.Kind == ActionBuy {
		return fmt.Sprintf("b%d", a.Length)
	}
	return fmt.Sprintf("w%d", a.Length)
}

// Verbose renders the long form, e.g. "Month 3: buy 6-month bond" or
// "Month 3: wait for 2 months".
func (a Action) Verbose() string {
	if a.Kind == ActionBuy {
		return fmt.Sprintf("Month %d: buy %d-month bond", a.StartMonth, a.Length)
	}
	if a.Length == 1 {
		return fmt.Sprintf("Month %d: wait for 1 month", a.StartMonth)
	}
	return fmt.Sprintf("Month %d: wait for %d months", a.StartMonth, a.Length)
}

// FormatActions joins the short forms of a path with the given separator.
func FormatActions(path []Action, sep string) string {
	parts := make([]string, 0, len(path))
	for _, a := range path {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, sep)
}

// FormatActionsVerbose joins the verbose forms of a path with the given
// separator.
func FormatActionsVerbose(path []Action, sep string) string {
	parts := make([]string, 0, len(path))
	for _, a := range path {
		parts = append(parts, a.Verbose())
	}
	return strings.Join(parts, sep)
}

// ParseActions parses a comma-separated short-form action list (e.g.
// "b6,w2,b3") back into a chronological path. Start months are
// recomputed from month 0.
func ParseActions(s string) ([]Action, error) {
	var path []Action
	month := 0

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if len(part) < 2 {
			return nil, fmt.Errorf("%q: %w", part, ErrInvalidAction)
		}

		length, err := strconv.Atoi(part[1:])
		if err != nil || length <= 0 {
			return nil, fmt.Errorf("%q: %w", part, ErrInvalidAction)
		}

		var action Action
		switch part[0] {
		case 'b':
			action, err = NewBuy(month, length)
		case 'w':
			action, err = NewWait(month, length)
		default:
			return nil, fmt.Errorf("%q: %w", part, ErrInvalidAction)
		}
		if err != nil {
			return nil, err
		}

		path = append(path, action)
		month += length
	}

	return path, nil
}
