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


// Package cache defines the TTL cache facade used for read-through caching
// of external fetches. Every use is either a read-through-miss-populate or
// an unconditional overwrite; no read-modify-write atomicity is assumed.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key is absent or its entry has expired.
// An expired entry is equivalent to an absent one.
var ErrMiss = errors.New("cache miss")

// Cache is a mapping from string key to serialized value with expiration.
// Implementations must be thread-safe for individual point operations.
type Cache interface {
	// Get retrieves the value stored under key.
	// Returns ErrMiss if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given time to live,
	// overwriting any existing entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases resources held by the cache.
	Close() error
}

// Cache key namespaces, kept in one place so they don't spread through the code.

// TopicKey is the cache key for an external refresh payload for a sector.
func TopicKey(sector string) string {
	return "api_" + sector
}

// AcademicKey is the cache key for cached academic resources for a sector.
func AcademicKey(sector string) string {
	return "academic_" + sector
}
