package storage

import (
	"context"

	"github.com/studiolore/studyhall/core"
)

// TopicRepository provides durable storage for sector topics.
// Implementations must be thread-safe and support concurrent access; each
// point operation commits independently (no multi-step transactions are
// assumed by callers).
type TopicRepository interface {
	// GetTopic retrieves the topic stored for a sector.
	// Returns ErrNotFound if no topic exists for the sector; callers treat
	// that as a normal outcome, not a failure.
	GetTopic(ctx context.Context, sector string) (*core.Topic, error)

	// UpsertTopic creates or overwrites the topic for its sector.
	// The topic's ID is derived from the sector name, so repeated upserts
	// for the same sector overwrite in place (last writer wins).
	// Returns the stored topic with its ID populated.
	UpsertTopic(ctx context.Context, topic *core.Topic) (*core.Topic, error)

	// ScanTopics returns every stored topic in stable key order.
	// Full scan; acceptable for the corpus sizes this store serves.
	ScanTopics(ctx context.Context) ([]*core.Topic, error)

	// Close closes the repository and releases resources.
	Close() error
}

// JournalRepository provides append-mostly storage for audit records:
// study progress and search history. Rows have no behavior beyond storage.
type JournalRepository interface {
	// AppendProgress appends a study-progress record.
	// Generates the record ID from sequence and sets InsertedAt.
	AppendProgress(ctx context.Context, record *core.ProgressRecord) (*core.ProgressRecord, error)

	// AppendSearch appends a search-history record.
	// Generates the record ID from sequence.
	AppendSearch(ctx context.Context, record *core.SearchRecord) (*core.SearchRecord, error)

	// ProgressBySector retrieves progress records for a sector, in insertion order.
	ProgressBySector(ctx context.Context, sector string) ([]*core.ProgressRecord, error)

	// RecentSearches retrieves the N most recent search records, newest first.
	RecentSearches(ctx context.Context, limit int) ([]*core.SearchRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
