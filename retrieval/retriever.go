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

package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/studiolore/studyhall/ai"
	"github.com/studiolore/studyhall/cache"
	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/remote"
	"github.com/studiolore/studyhall/storage"
)

// NoInformationAnswer is the fixed response for a sector with no
// stored topic. It is a normal outcome, not an error.
const NoInformationAnswer = "I'm sorry, I don't have information on that sector."

// DefaultCacheTTL is how long refreshed payloads and academic
// summaries stay cached.
const DefaultCacheTTL = time.Hour

// Retriever composes the topic store, cache, remote sources, and
// answerer into the content pipeline.
type Retriever struct {
	topicRepository storage.TopicRepository
	cache           cache.Cache
	topicSource     remote.TopicSource
	academicSource  remote.AcademicSource
	answerer        ai.Answerer
	logger          *slog.Logger
	now             func() time.Time
	window          time.Duration
	cacheTTL        time.Duration
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithClock sets the time source used for freshness decisions and
// stored timestamps. Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Retriever) error {
		if now != nil {
			r.now = now
		}
		return nil
	}
}

// WithStalenessWindow sets how old a stored topic may be before a
// refresh is attempted. Default is core.DefaultStalenessWindow.
func WithStalenessWindow(window time.Duration) Option {
	return func(r *Retriever) error {
		if window > 0 {
			r.window = window
		}
		return nil
	}
}

// WithCacheTTL sets the TTL for cached payloads and summaries.
// Default is DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(r *Retriever) error {
		if ttl > 0 {
			r.cacheTTL = ttl
		}
		return nil
	}
}

// NewRetriever creates a retriever. All five collaborators are required.
func NewRetriever(
	topicRepository storage.TopicRepository,
	c cache.Cache,
	topicSource remote.TopicSource,
	academicSource remote.AcademicSource,
	answerer ai.Answerer,
	opts ...Option,
) (*Retriever, error) {
	if topicRepository == nil {
		return nil, ErrTopicRepositoryRequired
	}
	if c == nil {
		return nil, ErrCacheRequired
	}
	if topicSource == nil {
		return nil, ErrTopicSourceRequired
	}
	if academicSource == nil {
		return nil, ErrAcademicSourceRequired
	}
	if answerer == nil {
		return nil, ErrAnswererRequired
	}

	r := &Retriever{
		topicRepository: topicRepository,
		cache:           c,
		topicSource:     topicSource,
		academicSource:  academicSource,
		answerer:        answerer,
		logger:          slog.Default(),
		now:             time.Now,
		window:          core.DefaultStalenessWindow,
		cacheTTL:        DefaultCacheTTL,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// TopicContent answers a question about a sector. It always produces
// an answer: refresh and enrichment failures degrade to whatever is
// stored, an unknown sector yields NoInformationAnswer, and any other
// failure is surfaced as a textual error answer with no link.
func (r *Retriever) TopicContent(ctx context.Context, question, sector string, offline bool) core.Answer {
	answer, err := r.topicContent(ctx, question, sector, offline)
	if err != nil {
		r.logger.Error("content request failed", "sector", sector, "err", err)
		return core.Answer{Text: fmt.Sprintf("An error occurred: %v", err)}
	}
	return answer
}

func (r *Retriever) topicContent(ctx context.Context, question, sector string, offline bool) (core.Answer, error) {
	if strings.TrimSpace(sector) == "" {
		return core.Answer{}, ErrEmptySector
	}

	if !offline {
		if err := r.maybeRefresh(ctx, sector); err != nil {
			return core.Answer{}, err
		}
	}

	topic, err := r.topicRepository.GetTopic(ctx, sector)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return core.Answer{Text: NoInformationAnswer}, nil
		}
		return core.Answer{}, err
	}

	contextText := topic.Content
	if !offline {
		for _, resource := range r.academicSummaries(ctx, sector) {
			contextText += "\n" + resource.Summary
		}
	}

	text, err := r.answerer.Answer(ctx, contextText, question)
	if err != nil {
		return core.Answer{}, err
	}

	return core.Answer{Text: text, Link: topic.FurtherReading}, nil
}

// maybeRefresh consults the freshness policy and pulls fresh content
// from the external source when the stored topic is stale or absent.
// Source failures are logged and swallowed; the request proceeds with
// whatever is currently stored.
func (r *Retriever) maybeRefresh(ctx context.Context, sector string) error {
	topic, err := r.topicRepository.GetTopic(ctx, sector)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	now := r.now()
	if !core.NeedsRefresh(topic, now, r.window) {
		return nil
	}

	payload, err := r.topicSource.FetchTopic(ctx, sector)
	if err != nil {
		r.logger.Warn("topic refresh failed, serving stored content", "sector", sector, "err", err)
		return nil
	}

	if _, err := r.topicRepository.UpsertTopic(ctx, &core.Topic{
		Sector:         sector,
		Content:        payload.Content,
		FurtherReading: payload.FurtherReading,
		LastUpdate:     now,
	}); err != nil {
		r.logger.Error("failed to store refreshed topic", "sector", sector, "err", err)
		return nil
	}

	if data, err := json.Marshal(payload); err == nil {
		if err := r.cache.Set(ctx, cache.TopicKey(sector), data, r.cacheTTL); err != nil {
			r.logger.Warn("failed to cache refreshed payload", "sector", sector, "err", err)
		}
	}

	r.logger.Info("refreshed topic from external source", "sector", sector)
	return nil
}

// academicSummaries returns enrichment resources for the sector,
// read-through the cache: a miss fetches from the academic source and
// populates the cache. Failures degrade to no enrichment.
func (r *Retriever) academicSummaries(ctx context.Context, sector string) []core.AcademicResource {
	key := cache.AcademicKey(sector)

	if data, err := r.cache.Get(ctx, key); err == nil {
		var resources []core.AcademicResource
		if err := json.Unmarshal(data, &resources); err == nil {
			return resources
		}
		r.logger.Warn("discarding malformed cached summaries", "sector", sector)
	} else if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn("cache read failed for academic summaries", "sector", sector, "err", err)
	}

	resources, err := r.academicSource.FetchResources(ctx, sector)
	if err != nil {
		r.logger.Warn("academic enrichment failed, proceeding without it", "sector", sector, "err", err)
		return nil
	}

	if data, err := json.Marshal(resources); err == nil {
		if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
			r.logger.Warn("failed to cache academic summaries", "sector", sector, "err", err)
		}
	}

	return resources
}
