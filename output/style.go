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
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
)

var (
	colorOnce    sync.Once
	colorEnabled bool
)

// ColorEnabled reports whether styled output is active. Decided once
// per process: colour is off when no_color is configured or stdout is
// not a terminal.
func ColorEnabled() bool {
	colorOnce.Do(func() {
		colorEnabled = !viper.GetBool("no_color") &&
			isatty.IsTerminal(os.Stdout.Fd())
	})
	return colorEnabled
}

func styledf(w io.Writer, code string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if ColorEnabled() {
		fmt.Fprintf(w, "%s%s%s\n", code, msg, ansiReset)
		return
	}
	fmt.Fprintln(w, msg)
}

// Errorf prints an error-styled line.
func Errorf(w io.Writer, format string, args ...interface{}) {
	styledf(w, ansiRed, format, args...)
}

// Warnf prints a warning-styled line.
func Warnf(w io.Writer, format string, args ...interface{}) {
	styledf(w, ansiYellow, format, args...)
}
