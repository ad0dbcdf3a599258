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

package bonddata

import "errors"

var (
	ErrEmpty           = errors.New("bond data must have at least one tenor and one month")
	ErrShapeMismatch   = errors.New("grid size does not match tenors x months")
	ErrTooFewMonths    = errors.New("fewer months of data than the shortest tenor")
	ErrUnsortedTenors  = errors.New("tenors must be strictly ascending")
	ErrNonFiniteReturn = errors.New("return factor is not finite")
	ErrOutOfRange      = errors.New("index out of range")
)
