package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// Topic IDs are derived from the sector name; journal records draw
// theirs from database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Topic is the authoritative knowledge body stored for a subject sector.
// The sector name is the unique, case-sensitive key. A missing topic for a
// sector is a normal state, not an error.
type Topic struct {
	Id             ID
	Sector         string
	Content        string    // Free-text knowledge body
	FurtherReading string    // Optional link, empty when none is known
	LastUpdate     time.Time // UTC instant of the last successful refresh
}

// ProgressRecord is a study-progress row for a sector.
// It is a plain audit record with no behavior beyond storage.
type ProgressRecord struct {
	Id            ID
	Sector        string
	LastStudyDate time.Time
	Performance   float64
	Notes         string
	InsertedAt    time.Time
}

// SearchRecord is an audit row for a ranked search query.
type SearchRecord struct {
	Id        ID
	Query     string
	Timestamp time.Time
}

// AcademicResource is a supplementary summary fetched from the
// academic-resource feed. Serialized as JSON on the wire and in the cache.
type AcademicResource struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// SearchResult is a transient ranked hit over the topic corpus.
type SearchResult struct {
	Sector  string
	Content string // Full content; callers may snippet for display
	Score   float64
}

// Answer is the outcome of a topic-content request. Link is empty when the
// topic has no further-reading reference.
type Answer struct {
	Text string
	Link string
}
