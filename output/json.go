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
	"io"

	"github.com/goccy/go-json"
	"github.com/ladder-vault/ladder-opt/ladder"
)

type resultRecord struct {
	Rank          int      `json:"rank"`
	ReturnPercent float64  `json:"returnPercent"`
	Actions       []string `json:"actions"`
}

// WriteJSON encodes the ranked results as a JSON array of
// rank / percentage return / short-form action records.
func WriteJSON(w io.Writer, res *ladder.Results) error {
	records := make([]resultRecord, 0, res.Len())
	for i := 0; i < res.Len(); i++ {
		actions := make([]string, 0, len(res.Paths[i]))
		for _, a := range res.Paths[i] {
			actions = append(actions, a.String())
		}
		records = append(records, resultRecord{
			Rank:          i + 1,
			ReturnPercent: ReturnPercent(res.CRFs[i]),
			Actions:       actions,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
