package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
)

// TopicRepository implements storage.TopicRepository for BadgerDB.
type TopicRepository struct {
	backend *Backend
}

var _ storage.TopicRepository = (*TopicRepository)(nil)

// NewTopicRepository creates a new TopicRepository.
func NewTopicRepository(backend *Backend) (*TopicRepository, error) {
	return &TopicRepository{
		backend: backend,
	}, nil
}

// Close releases resources. TopicRepository has no resources to release.
func (r *TopicRepository) Close() error {
	return nil
}

// GetTopic retrieves the topic stored for a sector.
func (r *TopicRepository) GetTopic(ctx context.Context, sector string) (*core.Topic, error) {
	if sector == "" {
		return nil, storage.ErrInvalidQuery
	}

	var result *core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTopicKey(core.IDFromContent(sector))
		var err error
		result, err = readTopic(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// UpsertTopic creates or overwrites the topic for its sector.
// The content-derived ID keeps the key stable, so concurrent refreshes for
// the same sector resolve to last writer wins.
func (r *TopicRepository) UpsertTopic(ctx context.Context, topic *core.Topic) (*core.Topic, error) {
	if err := core.ValidateTopic(topic); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		topic.Id = core.IDFromContent(topic.Sector)

		key := makeTopicKey(topic.Id)
		value := storage.MarshalTopic(topic)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return topic, err
}

// ScanTopics returns every stored topic in stable key order.
func (r *TopicRepository) ScanTopics(ctx context.Context) ([]*core.Topic, error) {
	var results []*core.Topic
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(topicRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var topic *core.Topic
			err := iter.Item().Value(func(val []byte) error {
				var err error
				topic, err = storage.UnmarshalTopic(val)
				return err
			})
			if err != nil {
				return err
			}
			if topic != nil {
				results = append(results, topic)
			}
		}
		return nil
	}, false)

	return results, err
}

// readTopic reads a topic from the transaction.
func readTopic(tx *badger.Txn, key []byte) (*core.Topic, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var topic *core.Topic
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		topic, unmarshalErr = storage.UnmarshalTopic(val)
		return unmarshalErr
	})
	return topic, err
}
