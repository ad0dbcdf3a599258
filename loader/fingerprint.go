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

package loader

import (
	"encoding/hex"
	"os"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the blake3 content hash of the file at path,
// after the same path validation LoadCSV applies. Used to look up
// already-parsed matrices before re-parsing.
func Fingerprint(path string) (string, error) {
	resolved, err := validatedPath(path)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return "", csvErrorf("cannot open\n%s", resolved)
	}

	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
