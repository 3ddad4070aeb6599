package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
)

// JournalRepository implements storage.JournalRepository for BadgerDB.
type JournalRepository struct {
	backend     *Backend
	progressSeq *badger.Sequence
	searchSeq   *badger.Sequence
}

var _ storage.JournalRepository = (*JournalRepository)(nil)

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(backend *Backend) (*JournalRepository, error) {
	progressSeq, err := backend.GetSequence(progressIDSeq)
	if err != nil {
		return nil, err
	}

	searchSeq, err := backend.GetSequence(searchIDSeq)
	if err != nil {
		progressSeq.Release()
		return nil, err
	}

	return &JournalRepository{
		backend:     backend,
		progressSeq: progressSeq,
		searchSeq:   searchSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *JournalRepository) Close() error {
	if err := r.progressSeq.Release(); err != nil {
		return err
	}
	return r.searchSeq.Release()
}

// AppendProgress appends a study-progress record.
func (r *JournalRepository) AppendProgress(ctx context.Context, record *core.ProgressRecord) (*core.ProgressRecord, error) {
	if err := core.ValidateProgressRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := nextID(r.progressSeq)
		if err != nil {
			return err
		}
		record.Id = id
		record.InsertedAt = time.Now().UTC()

		key := makeProgressKey(record.Id)
		value := storage.MarshalProgressRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Sector index
		sectorKey := makeProgressSectorKey(core.IDFromContent(record.Sector), record.Id)
		if err := tx.Set(sectorKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return record, err
}

// AppendSearch appends a search-history record.
func (r *JournalRepository) AppendSearch(ctx context.Context, record *core.SearchRecord) (*core.SearchRecord, error) {
	if err := core.ValidateSearchRecord(record); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		id, err := nextID(r.searchSeq)
		if err != nil {
			return err
		}
		record.Id = id
		if record.Timestamp.IsZero() {
			record.Timestamp = time.Now().UTC()
		}

		key := makeSearchKey(record.Id)
		value := storage.MarshalSearchRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Date index
		dateKey := makeSearchDateKey(record.Timestamp, record.Id)
		if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return record, err
}

// ProgressBySector retrieves progress records for a sector, in insertion order.
func (r *JournalRepository) ProgressBySector(ctx context.Context, sector string) ([]*core.ProgressRecord, error) {
	if sector == "" {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ProgressRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialProgressSectorKey(core.IDFromContent(sector))
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := readProgressRecord(tx, makeProgressKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// RecentSearches retrieves the N most recent search records, newest first.
func (r *JournalRepository) RecentSearches(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	var results []*core.SearchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialSearchDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(searchDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := readSearchRecord(tx, makeSearchKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// nextID draws the next non-zero ID from a sequence.
// BadgerDB sequences can return 0 on first call, so we skip it.
func nextID(seq *badger.Sequence) (core.ID, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(next), nil
}

// readProgressRecord reads a progress record from the transaction.
func readProgressRecord(tx *badger.Txn, key []byte) (*core.ProgressRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ProgressRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalProgressRecord(val)
		return unmarshalErr
	})
	return record, err
}

// readSearchRecord reads a search record from the transaction.
func readSearchRecord(tx *badger.Txn, key []byte) (*core.SearchRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SearchRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalSearchRecord(val)
		return unmarshalErr
	})
	return record, err
}
