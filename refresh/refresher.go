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

package refresh

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/remote"
	"github.com/studiolore/studyhall/storage"
)

// Config holds configuration for the bulk refresh operation.
type Config struct {
	// Window is how old a topic may be before it is refreshed.
	Window time.Duration

	// Force refreshes every topic regardless of age.
	Force bool

	// ReportInterval is how often to report progress (number of topics)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per topic fetch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Window:         core.DefaultStalenessWindow,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Refresher re-fetches stale topics from the external source and
// writes them back.
type Refresher struct {
	repo     storage.TopicRepository
	source   remote.TopicSource
	config   *Config
	progress io.Writer
	now      func() time.Time
}

// NewRefresher creates a refresher.
// progress: where to write progress output (typically os.Stderr)
func NewRefresher(repo storage.TopicRepository, source remote.TopicSource, config *Config, progress io.Writer) (*Refresher, error) {
	if repo == nil {
		return nil, ErrTopicRepositoryRequired
	}
	if source == nil {
		return nil, ErrTopicSourceRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Refresher{
		repo:     repo,
		source:   source,
		config:   config,
		progress: progress,
		now:      time.Now,
	}, nil
}

// Run executes the bulk refresh. Every stored topic past the staleness
// window (or every topic, with Force) is re-fetched and overwritten.
// Topics that still fail after retries are skipped and counted, not
// fatal to the run.
func (r *Refresher) Run(ctx context.Context) error {
	topics, err := r.repo.ScanTopics(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan topics: %w", err)
	}

	now := r.now()
	stale := make([]*core.Topic, 0, len(topics))
	for _, topic := range topics {
		if r.config.Force || core.NeedsRefresh(topic, now, r.config.Window) {
			stale = append(stale, topic)
		}
	}

	if len(stale) == 0 {
		fmt.Fprintf(r.progress, "Nothing to refresh (%d topics, all fresh)\n", len(topics))
		return nil
	}

	fmt.Fprintf(r.progress, "Refreshing %d of %d topics\n", len(stale), len(topics))

	tracker := NewProgressTracker(r.progress, len(stale), r.config.ReportInterval)
	tracker.Start()

	failed := 0
	for _, topic := range stale {
		if err := r.refreshOne(ctx, topic.Sector); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			fmt.Fprintf(r.progress, "\nSkipping %q after retries: %v\n", topic.Sector, err)
		}
		tracker.Increment(1)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Refresh complete. %d refreshed, %d failed in %v\n",
		len(stale)-failed, failed, elapsed.Round(time.Second))

	return nil
}

func (r *Refresher) refreshOne(ctx context.Context, sector string) error {
	var payload *remote.TopicPayload

	err := RetryWithBackoff(ctx, func() error {
		var fetchErr error
		payload, fetchErr = r.source.FetchTopic(ctx, sector)
		return fetchErr
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return err
	}

	_, err = r.repo.UpsertTopic(ctx, &core.Topic{
		Sector:         sector,
		Content:        payload.Content,
		FurtherReading: payload.FurtherReading,
		LastUpdate:     r.now(),
	})
	return err
}
