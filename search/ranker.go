package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
)

// MaxResults is the maximum number of results a ranked search returns.
const MaxResults = 10

// Ranker provides ranked search over all stored topics.
type Ranker struct {
	topicRepository storage.TopicRepository
	scorer          Scorer
	logger          *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithScorer sets the scoring strategy.
// Default is DefaultScorer().
func WithScorer(scorer Scorer) Option {
	return func(r *Ranker) error {
		if scorer == nil {
			return ErrScorerRequired
		}
		r.scorer = scorer
		return nil
	}
}

// NewRanker creates a new ranker over the given topic repository.
func NewRanker(topicRepository storage.TopicRepository, opts ...Option) (*Ranker, error) {
	if topicRepository == nil {
		return nil, ErrTopicRepositoryRequired
	}

	r := &Ranker{
		topicRepository: topicRepository,
		scorer:          DefaultScorer(),
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rank scores every stored topic against the query and returns up to
// MaxResults matches in descending score order. Zero and negative
// scores are excluded. Equal scores keep the repository's stable scan
// order, so repeated identical queries return identical result lists.
// Preferences are handed through to the scorer unmodified; nil means
// none were supplied.
func (r *Ranker) Rank(ctx context.Context, query string, prefs Preferences) ([]core.SearchResult, error) {
	return r.RankWithMonitor(ctx, query, prefs, nil)
}

// RankWithMonitor ranks with monitoring. The monitor receives callbacks
// at each stage of the search process.
func (r *Ranker) RankWithMonitor(ctx context.Context, query string, prefs Preferences, monitor RankMonitor) ([]core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	topics, err := r.topicRepository.ScanTopics(ctx)
	if err != nil {
		r.logger.Error("error scanning topics for search", "err", err)
		return nil, err
	}
	monitor.AfterScan(len(topics))

	results := make([]core.SearchResult, 0, len(topics))
	for _, topic := range topics {
		score := r.scorer.Score(query, topic, prefs)
		if score <= 0 {
			monitor.TopicExcluded(topic)
			continue
		}
		monitor.TopicScored(topic, score)

		results = append(results, core.SearchResult{
			Sector:  topic.Sector,
			Content: topic.Content,
			Score:   score,
		})
	}

	// Stable sort keeps scan order among equal scores.
	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	monitor.Finish(results)

	r.logger.Debug("ranked search complete", "query", query, "scanned", len(topics), "hits", len(results))
	return results, nil
}
