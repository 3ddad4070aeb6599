package search

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
	"github.com/studiolore/studyhall/storage/badger"
)

// mapScorer scores topics by sector name lookup; unknown sectors score zero.
type mapScorer struct {
	scores map[string]float64
}

func (s mapScorer) Score(_ string, topic *core.Topic, _ Preferences) float64 {
	return s.scores[topic.Sector]
}

// boostScorer reads {"boost": {"<sector>": <weight>}} from preferences
// and adds the weight to a base score of 0.1.
type boostScorer struct {
	gotPrefs []Preferences
}

func (s *boostScorer) Score(_ string, topic *core.Topic, prefs Preferences) float64 {
	s.gotPrefs = append(s.gotPrefs, prefs)

	score := 0.1
	if len(prefs) == 0 {
		return score
	}
	var p struct {
		Boost map[string]float64 `json:"boost"`
	}
	if err := json.Unmarshal(prefs, &p); err != nil {
		return score
	}
	return score + p.Boost[topic.Sector]
}

func seedTopics(t *testing.T, sectors ...string) storage.TopicRepository {
	t.Helper()

	topicRepo, _, _, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { topicRepo.Close() })

	for _, sector := range sectors {
		_, err := topicRepo.UpsertTopic(context.Background(), &core.Topic{
			Sector:     sector,
			Content:    "Notes on " + sector + ".",
			LastUpdate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	return topicRepo
}

func TestRankOrdersByScoreAndExcludesZero(t *testing.T) {
	repo := seedTopics(t, "astronomy", "botany", "chemistry")

	ranker, err := NewRanker(repo, WithScorer(mapScorer{scores: map[string]float64{
		"astronomy": 0.8,
		"botany":    0,
		"chemistry": 0.3,
	}}))
	require.NoError(t, err)

	results, err := ranker.Rank(context.Background(), "anything", nil)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "astronomy", results[0].Sector)
	assert.Equal(t, 0.8, results[0].Score)
	assert.Equal(t, "chemistry", results[1].Sector)
	assert.Equal(t, 0.3, results[1].Score)
}

func TestRankCapsResults(t *testing.T) {
	sectors := make([]string, 0, MaxResults+2)
	for i := 0; i < MaxResults+2; i++ {
		sectors = append(sectors, fmt.Sprintf("sector-%02d", i))
	}
	repo := seedTopics(t, sectors...)

	ranker, err := NewRanker(repo)
	require.NoError(t, err)

	results, err := ranker.Rank(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
}

func TestRankStableOrderOnEqualScores(t *testing.T) {
	repo := seedTopics(t, "zoology", "algebra", "music")

	ranker, err := NewRanker(repo)
	require.NoError(t, err)

	first, err := ranker.Rank(context.Background(), "query one", nil)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), "query one", nil)
	require.NoError(t, err)

	// Constant scorer ties everything; order must match scan order every time.
	assert.Equal(t, first, second)
	topics, err := repo.ScanTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, first, len(topics))
	for i, topic := range topics {
		assert.Equal(t, topic.Sector, first[i].Sector)
	}
}

func TestRankForwardsPreferencesToScorer(t *testing.T) {
	repo := seedTopics(t, "astronomy", "chemistry")

	scorer := &boostScorer{}
	ranker, err := NewRanker(repo, WithScorer(scorer))
	require.NoError(t, err)

	// Without preferences everything ties at the base score.
	baseline, err := ranker.Rank(context.Background(), "elements", nil)
	require.NoError(t, err)
	require.Len(t, baseline, 2)
	assert.Equal(t, baseline[0].Score, baseline[1].Score)
	for _, got := range scorer.gotPrefs {
		assert.Nil(t, got)
	}

	prefs := Preferences(`{"boost":{"chemistry":0.7}}`)
	boosted, err := ranker.Rank(context.Background(), "elements", prefs)
	require.NoError(t, err)

	require.Len(t, boosted, 2)
	assert.Equal(t, "chemistry", boosted[0].Sector)
	assert.Equal(t, 0.8, boosted[0].Score)
	assert.Equal(t, "astronomy", boosted[1].Sector)

	// Every scored topic saw the caller's preferences unmodified.
	require.Len(t, scorer.gotPrefs, 4)
	for _, got := range scorer.gotPrefs[2:] {
		assert.Equal(t, prefs, got)
	}
}

func TestRankEmptyQuery(t *testing.T) {
	repo := seedTopics(t, "astronomy")

	ranker, err := NewRanker(repo)
	require.NoError(t, err)

	_, err = ranker.Rank(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRankEmptyCorpus(t *testing.T) {
	repo := seedTopics(t)

	ranker, err := NewRanker(repo)
	require.NoError(t, err)

	results, err := ranker.Rank(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewRankerRequiresRepository(t *testing.T) {
	_, err := NewRanker(nil)
	assert.ErrorIs(t, err, ErrTopicRepositoryRequired)
}

type recordingMonitor struct {
	started  bool
	scanned  int
	scored   int
	excluded int
	finished int
}

func (m *recordingMonitor) Start(_ string)                       { m.started = true }
func (m *recordingMonitor) AfterScan(n int)                      { m.scanned = n }
func (m *recordingMonitor) TopicScored(_ *core.Topic, _ float64) { m.scored++ }
func (m *recordingMonitor) TopicExcluded(_ *core.Topic)          { m.excluded++ }
func (m *recordingMonitor) Finish(r []core.SearchResult)         { m.finished = len(r) }

func TestRankWithMonitor(t *testing.T) {
	repo := seedTopics(t, "astronomy", "botany")

	ranker, err := NewRanker(repo, WithScorer(mapScorer{scores: map[string]float64{
		"astronomy": 0.9,
	}}))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := ranker.RankWithMonitor(context.Background(), "stars", nil, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, 2, monitor.scanned)
	assert.Equal(t, 1, monitor.scored)
	assert.Equal(t, 1, monitor.excluded)
	assert.Equal(t, len(results), monitor.finished)
}
