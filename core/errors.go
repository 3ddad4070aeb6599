// Copyright 2026 Studiolore
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTopic indicates a Topic failed validation.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrInvalidProgressRecord indicates a ProgressRecord failed validation.
	ErrInvalidProgressRecord = errors.New("invalid progress record")

	// ErrInvalidSearchRecord indicates a SearchRecord failed validation.
	ErrInvalidSearchRecord = errors.New("invalid search record")

	// ErrEmptySector indicates the Sector field is empty.
	ErrEmptySector = errors.New("sector cannot be empty")

	// ErrEmptyQuery indicates the Query field is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrZeroLastUpdate indicates a persisted topic is missing its
	// last-update timestamp.
	ErrZeroLastUpdate = errors.New("last update timestamp cannot be zero")

	// ErrInvalidPerformance indicates a performance score outside [0, 1].
	ErrInvalidPerformance = errors.New("performance must be between 0 and 1")
)
