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
	lru "github.com/hashicorp/golang-lru"

	"github.com/ladder-vault/ladder-opt/bonddata"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var matrixCache *lru.Cache

// SetupCache initialises the LRU of parsed return matrices. Keys are
// blake3 content fingerprints, so re-entering a path during the prompt
// retry loop skips re-parsing as long as the file is unchanged.
func SetupCache() {
	size := viper.GetInt("cache.local_size")
	if size <= 0 {
		size = 16
	}

	var err error
	matrixCache, err = lru.New(size)
	if err != nil {
		log.Panic().Err(err).Msg("could not create LRU cache")
	}
}

// CacheMatrix stores a parsed matrix under its content fingerprint.
// No-op when the cache is not set up or the matrix has no fingerprint.
func CacheMatrix(m *bonddata.Matrix) {
	if matrixCache == nil || m.Fingerprint() == "" {
		return
	}
	matrixCache.Add(m.Fingerprint(), m)
}

// CachedMatrix fetches a previously parsed matrix by fingerprint.
func CachedMatrix(fingerprint string) (*bonddata.Matrix, bool) {
	if matrixCache == nil || fingerprint == "" {
		return nil, false
	}
	v, ok := matrixCache.Get(fingerprint)
	if !ok {
		return nil, false
	}
	return v.(*bonddata.Matrix), true
}
