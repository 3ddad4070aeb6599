package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
)

func TestTopicRepository_UpsertAndGet(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	stored, err := topicRepo.UpsertTopic(ctx, &core.Topic{
		Sector:         "physics",
		Content:        "Newton's laws of motion",
		FurtherReading: "http://example.com/physics",
		LastUpdate:     now,
	})
	require.NoError(t, err)
	assert.Equal(t, core.IDFromContent("physics"), stored.Id)

	got, err := topicRepo.GetTopic(ctx, "physics")
	require.NoError(t, err)
	assert.Equal(t, "physics", got.Sector)
	assert.Equal(t, "Newton's laws of motion", got.Content)
	assert.Equal(t, "http://example.com/physics", got.FurtherReading)
	assert.Equal(t, now, got.LastUpdate)
}

func TestTopicRepository_GetMissing(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = topicRepo.GetTopic(ctx, "unknown")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTopicRepository_GetEmptySector(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	_, err = topicRepo.GetTopic(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestTopicRepository_UpsertOverwrites(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	first := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Microsecond)
	second := time.Now().UTC().Truncate(time.Microsecond)

	_, err = topicRepo.UpsertTopic(ctx, &core.Topic{
		Sector:     "physics",
		Content:    "old content",
		LastUpdate: first,
	})
	require.NoError(t, err)

	_, err = topicRepo.UpsertTopic(ctx, &core.Topic{
		Sector:     "physics",
		Content:    "new content",
		LastUpdate: second,
	})
	require.NoError(t, err)

	got, err := topicRepo.GetTopic(ctx, "physics")
	require.NoError(t, err)
	assert.Equal(t, "new content", got.Content)
	assert.Equal(t, second, got.LastUpdate)

	// Overwrite, not duplicate
	all, err := topicRepo.ScanTopics(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTopicRepository_UpsertInvalid(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = topicRepo.UpsertTopic(ctx, &core.Topic{Content: "orphan", LastUpdate: time.Now()})
	assert.ErrorIs(t, err, core.ErrEmptySector)

	_, err = topicRepo.UpsertTopic(ctx, &core.Topic{Sector: "physics"})
	assert.ErrorIs(t, err, core.ErrZeroLastUpdate)
}

func TestTopicRepository_ScanTopics(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	now := time.Now().UTC()

	sectors := []string{"physics", "chemistry", "biology"}
	for _, sector := range sectors {
		_, err := topicRepo.UpsertTopic(ctx, &core.Topic{
			Sector:     sector,
			Content:    "content for " + sector,
			LastUpdate: now,
		})
		require.NoError(t, err)
	}

	all, err := topicRepo.ScanTopics(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	seen := make(map[string]bool)
	for _, topic := range all {
		seen[topic.Sector] = true
	}
	for _, sector := range sectors {
		assert.True(t, seen[sector], "missing sector %q in scan", sector)
	}

	// Scan order is stable across calls
	again, err := topicRepo.ScanTopics(ctx)
	require.NoError(t, err)
	require.Len(t, again, 3)
	for i := range all {
		assert.Equal(t, all[i].Sector, again[i].Sector)
	}
}

func TestTopicRepository_ScanEmpty(t *testing.T) {
	topicRepo, journalRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		journalRepo.Close()
		topicRepo.Close()
		backend.Close()
	}()

	all, err := topicRepo.ScanTopics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
