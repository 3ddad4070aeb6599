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

import "fmt"

// ValidateTopic validates a Topic according to domain rules.
//
// Validation rules:
//   - Sector must not be empty
//   - LastUpdate must not be the zero time (every persisted topic carries
//     the instant of its last successful refresh)
//
// NOT validated:
//   - Content (a refresh may legitimately store an empty body)
//   - FurtherReading (empty means no link)
//   - ID (derived from the sector by the storage layer)
func ValidateTopic(topic *Topic) error {
	if topic == nil {
		return fmt.Errorf("%w: topic is nil", ErrInvalidTopic)
	}

	if topic.Sector == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrEmptySector)
	}

	if topic.LastUpdate.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidTopic, ErrZeroLastUpdate)
	}

	return nil
}

// ValidateProgressRecord validates a ProgressRecord according to domain rules.
//
// Validation rules:
//   - Sector must not be empty
//   - Performance must be within [0, 1]
func ValidateProgressRecord(record *ProgressRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidProgressRecord)
	}

	if record.Sector == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProgressRecord, ErrEmptySector)
	}

	if record.Performance < 0 || record.Performance > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidProgressRecord, ErrInvalidPerformance)
	}

	return nil
}

// ValidateSearchRecord validates a SearchRecord according to domain rules.
func ValidateSearchRecord(record *SearchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSearchRecord)
	}

	if record.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSearchRecord, ErrEmptyQuery)
	}

	return nil
}
