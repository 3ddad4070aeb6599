package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiolore/studyhall/ai/mock"
	"github.com/studiolore/studyhall/cache"
	"github.com/studiolore/studyhall/cache/memory"
	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/remote"
	"github.com/studiolore/studyhall/storage"
	"github.com/studiolore/studyhall/storage/badger"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTopicRepo(t *testing.T) storage.TopicRepository {
	t.Helper()

	topics, journal, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		topics.Close()
		journal.Close()
		backend.Close()
	})
	return topics
}

type stubTopicSource struct {
	payload *remote.TopicPayload
	err     error
	calls   int
}

func (s *stubTopicSource) FetchTopic(_ context.Context, _ string) (*remote.TopicPayload, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

type stubAcademicSource struct {
	resources []core.AcademicResource
	err       error
	calls     int
}

func (s *stubAcademicSource) FetchResources(_ context.Context, _ string) ([]core.AcademicResource, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resources, nil
}

type fixture struct {
	retriever *Retriever
	topics    storage.TopicRepository
	cache     *memory.Cache
	topicSrc  *stubTopicSource
	academic  *stubAcademicSource
	answerer  *mock.MockAnswerer
}

func newFixture(t *testing.T, topicSrc *stubTopicSource, academic *stubAcademicSource) *fixture {
	t.Helper()

	topics := newTopicRepo(t)
	c := memory.New()
	answerer := mock.NewMockAnswerer()

	retriever, err := NewRetriever(topics, c, topicSrc, academic, answerer,
		WithClock(func() time.Time { return testNow }),
	)
	require.NoError(t, err)

	return &fixture{
		retriever: retriever,
		topics:    topics,
		cache:     c,
		topicSrc:  topicSrc,
		academic:  academic,
		answerer:  answerer,
	}
}

func storeTopic(t *testing.T, topics storage.TopicRepository, sector, content, link string, lastUpdate time.Time) {
	t.Helper()
	_, err := topics.UpsertTopic(context.Background(), &core.Topic{
		Sector:         sector,
		Content:        content,
		FurtherReading: link,
		LastUpdate:     lastUpdate,
	})
	require.NoError(t, err)
}

func TestRefreshOnAbsentTopic(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{payload: &remote.TopicPayload{
			Content:        "Newton's laws of motion.",
			FurtherReading: "http://x",
		}},
		&stubAcademicSource{},
	)

	answer := f.retriever.TopicContent(context.Background(), "what is physics?", "physics", false)

	assert.Equal(t, mock.DefaultAnswer, answer.Text)
	assert.Equal(t, "http://x", answer.Link)

	stored, err := f.topics.GetTopic(context.Background(), "physics")
	require.NoError(t, err)
	assert.Equal(t, "Newton's laws of motion.", stored.Content)
	assert.True(t, stored.LastUpdate.Equal(testNow))
}

func TestStaleTopicRefreshFailureServesStored(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{err: errors.New("connect timeout")},
		&stubAcademicSource{},
	)
	storeTopic(t, f.topics, "physics", "Old but serviceable notes.", "http://old", testNow.Add(-10*24*time.Hour))

	var seenContext string
	f.answerer.AnswerFunc = func(_ context.Context, contextText, _ string) (string, error) {
		seenContext = contextText
		return "derived answer", nil
	}

	answer := f.retriever.TopicContent(context.Background(), "question", "physics", false)

	assert.Equal(t, 1, f.topicSrc.calls)
	assert.Equal(t, "derived answer", answer.Text)
	assert.Equal(t, "http://old", answer.Link)
	assert.Contains(t, seenContext, "Old but serviceable notes.")
}

func TestFreshnessBoundary(t *testing.T) {
	tests := []struct {
		name      string
		age       time.Duration
		wantFetch int
	}{
		{"exactly at window is fresh", core.DefaultStalenessWindow, 0},
		{"just past window is stale", core.DefaultStalenessWindow + time.Second, 1},
		{"well within window", 24 * time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t,
				&stubTopicSource{payload: &remote.TopicPayload{Content: "fresh content"}},
				&stubAcademicSource{},
			)
			storeTopic(t, f.topics, "physics", "stored content", "", testNow.Add(-tt.age))

			f.retriever.TopicContent(context.Background(), "q", "physics", false)
			assert.Equal(t, tt.wantFetch, f.topicSrc.calls)
		})
	}
}

func TestUnknownSectorNoInformation(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{err: errors.New("upstream down")},
		&stubAcademicSource{},
	)

	answer := f.retriever.TopicContent(context.Background(), "q", "alchemy", false)

	assert.Equal(t, NoInformationAnswer, answer.Text)
	assert.Empty(t, answer.Link)
	assert.Zero(t, f.answerer.CallCount())
}

func TestOfflineIdempotent(t *testing.T) {
	f := newFixture(t, &stubTopicSource{}, &stubAcademicSource{})
	storeTopic(t, f.topics, "physics", "Offline notes.", "http://x", testNow.Add(-30*24*time.Hour))

	first := f.retriever.TopicContent(context.Background(), "q", "physics", true)
	second := f.retriever.TopicContent(context.Background(), "q", "physics", true)

	assert.Equal(t, first, second)
	assert.Zero(t, f.topicSrc.calls)
	assert.Zero(t, f.academic.calls)
}

func TestEnrichmentAppendedAndCached(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{},
		&stubAcademicSource{resources: []core.AcademicResource{
			{Title: "Paper A", Summary: "First summary.", URL: "https://a"},
			{Title: "Paper B", Summary: "Second summary.", URL: "https://b"},
		}},
	)
	storeTopic(t, f.topics, "physics", "Base content.", "", testNow)

	var seenContext string
	f.answerer.AnswerFunc = func(_ context.Context, contextText, _ string) (string, error) {
		seenContext = contextText
		return "ok", nil
	}

	f.retriever.TopicContent(context.Background(), "q", "physics", false)
	assert.Equal(t, "Base content.\nFirst summary.\nSecond summary.", seenContext)

	// Second request within TTL must come from cache.
	f.retriever.TopicContent(context.Background(), "q", "physics", false)
	assert.Equal(t, 1, f.academic.calls)
	assert.Equal(t, "Base content.\nFirst summary.\nSecond summary.", seenContext)
}

func TestEnrichmentFailureDegrades(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{},
		&stubAcademicSource{err: errors.New("feed offline")},
	)
	storeTopic(t, f.topics, "physics", "Base content.", "http://x", testNow)

	answer := f.retriever.TopicContent(context.Background(), "q", "physics", false)

	assert.Equal(t, mock.DefaultAnswer, answer.Text)
	assert.Equal(t, "http://x", answer.Link)
}

func TestRefreshPopulatesCache(t *testing.T) {
	f := newFixture(t,
		&stubTopicSource{payload: &remote.TopicPayload{Content: "fresh", FurtherReading: "http://x"}},
		&stubAcademicSource{},
	)

	f.retriever.TopicContent(context.Background(), "q", "physics", false)

	data, err := f.cache.Get(context.Background(), cache.TopicKey("physics"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fresh")
}

func TestAnswererFailureSurfacesErrorText(t *testing.T) {
	f := newFixture(t, &stubTopicSource{}, &stubAcademicSource{})
	storeTopic(t, f.topics, "physics", "Content.", "http://x", testNow)

	f.answerer.AnswerFunc = func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("model unavailable")
	}

	answer := f.retriever.TopicContent(context.Background(), "q", "physics", false)

	assert.Equal(t, "An error occurred: model unavailable", answer.Text)
	assert.Empty(t, answer.Link)
}

func TestEmptySectorIsError(t *testing.T) {
	f := newFixture(t, &stubTopicSource{}, &stubAcademicSource{})

	answer := f.retriever.TopicContent(context.Background(), "q", "  ", false)

	assert.Contains(t, answer.Text, "An error occurred:")
	assert.Empty(t, answer.Link)
}

func TestNewRetrieverRequiredDependencies(t *testing.T) {
	topics := newTopicRepo(t)
	c := memory.New()
	src := &stubTopicSource{}
	academic := &stubAcademicSource{}
	answerer := mock.NewMockAnswerer()

	_, err := NewRetriever(nil, c, src, academic, answerer)
	assert.ErrorIs(t, err, ErrTopicRepositoryRequired)

	_, err = NewRetriever(topics, nil, src, academic, answerer)
	assert.ErrorIs(t, err, ErrCacheRequired)

	_, err = NewRetriever(topics, c, nil, academic, answerer)
	assert.ErrorIs(t, err, ErrTopicSourceRequired)

	_, err = NewRetriever(topics, c, src, nil, answerer)
	assert.ErrorIs(t, err, ErrAcademicSourceRequired)

	_, err = NewRetriever(topics, c, src, academic, nil)
	assert.ErrorIs(t, err, ErrAnswererRequired)
}
