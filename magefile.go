//go:build mage

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

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "ladderopt"
	packageName = "."
)

var ldflags = "-X github.com/ladder-vault/ladder-opt/common.commitHash=$COMMIT_HASH " +
	"-X github.com/ladder-vault/ladder-opt/common.buildDate=$BUILD_DATE"

// allow user to override go executable by running as GOEXE=xxx mage ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// Build compiles the ladderopt binary with version metadata.
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(flagEnv(), goexe, "build", "-o", binaryName, "-ldflags", ldflags, "-v", packageName)
}

// Install installs the binary into GOPATH/bin.
func Install() error {
	return sh.RunWith(flagEnv(), goexe, "install", "-ldflags", ldflags, packageName)
}

// Uninstall removes the installed binary.
func Uninstall() error {
	return sh.Run(goexe, "clean", "-i", packageName)
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV(goexe, "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV(goexe, "vet", "./...")
}

// Clean removes build artifacts.
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
}
