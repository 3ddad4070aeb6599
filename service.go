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

// Package studyhall is a staleness-aware study-content service: it
// stores per-sector topic knowledge, refreshes stale topics from an
// external source, enriches answers with cached academic summaries,
// and serves ranked search over the stored corpus.
//
// The Service owns the storage backend, cache, remote clients, and
// answerer, and hands out retrievers, rankers, and recorders wired to
// them. Construct one Service per process at startup.
package studyhall

import (
	"errors"
	"log/slog"

	"github.com/studiolore/studyhall/ai"
	"github.com/studiolore/studyhall/ai/openai"
	"github.com/studiolore/studyhall/cache"
	"github.com/studiolore/studyhall/cache/memory"
	"github.com/studiolore/studyhall/journal"
	"github.com/studiolore/studyhall/remote"
	"github.com/studiolore/studyhall/retrieval"
	"github.com/studiolore/studyhall/search"
	"github.com/studiolore/studyhall/storage"
	"github.com/studiolore/studyhall/storage/badger"
)

// ErrRemoteSourcesRequired is returned when neither remote clients nor
// a remote configuration to build them is provided.
var ErrRemoteSourcesRequired = errors.New("remote sources or remote config required")

// Service owns the storage backend, cache, remote clients, and
// answerer shared by all requests.
type Service struct {
	backend        *badger.Backend
	topicRepo      storage.TopicRepository
	journalRepo    storage.JournalRepository
	cache          cache.Cache
	topicSource    remote.TopicSource
	academicSource remote.AcademicSource
	answerer       ai.Answerer
	logger         *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig       *ai.Config
	answerer       ai.Answerer
	cache          cache.Cache
	remoteConfig   *remote.Config
	topicSource    remote.TopicSource
	academicSource remote.AcademicSource
}

// WithAIConfig sets the configuration used to build the default
// OpenAI-compatible answerer. Ignored when WithAnswerer is given.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithAnswerer injects an answerer, replacing the default
// OpenAI-compatible one.
func WithAnswerer(answerer ai.Answerer) ServiceOption {
	return func(o *serviceOptions) {
		o.answerer = answerer
	}
}

// WithCache injects a cache backend, replacing the default in-process
// memory cache. Use this to share a Redis cache across processes.
func WithCache(c cache.Cache) ServiceOption {
	return func(o *serviceOptions) {
		o.cache = c
	}
}

// WithRemoteConfig sets the configuration used to build the default
// HTTP remote clients.
func WithRemoteConfig(cfg remote.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.remoteConfig = &cfg
	}
}

// WithSources injects remote sources directly, replacing the default
// HTTP clients.
func WithSources(topicSource remote.TopicSource, academicSource remote.AcademicSource) ServiceOption {
	return func(o *serviceOptions) {
		o.topicSource = topicSource
		o.academicSource = academicSource
	}
}

// NewService opens the storage backend at filePath and wires up the
// shared collaborators.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	topicRepo, err := badger.NewTopicRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	journalRepo, err := badger.NewJournalRepository(backend)
	if err != nil {
		topicRepo.Close()
		backend.Close()
		return nil, err
	}

	c := options.cache
	if c == nil {
		c = memory.New()
	}

	answerer := options.answerer
	if answerer == nil {
		answerer, err = openai.NewAnswerer(options.aiConfig)
		if err != nil {
			journalRepo.Close()
			topicRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	topicSource := options.topicSource
	academicSource := options.academicSource
	if topicSource == nil || academicSource == nil {
		if options.remoteConfig == nil {
			journalRepo.Close()
			topicRepo.Close()
			backend.Close()
			return nil, ErrRemoteSourcesRequired
		}
		if topicSource == nil {
			topicSource, err = remote.NewTopicClient(*options.remoteConfig)
		}
		if err == nil && academicSource == nil {
			academicSource, err = remote.NewAcademicClient(*options.remoteConfig)
		}
		if err != nil {
			journalRepo.Close()
			topicRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:        backend,
		topicRepo:      topicRepo,
		journalRepo:    journalRepo,
		cache:          c,
		topicSource:    topicSource,
		academicSource: academicSource,
		answerer:       answerer,
		logger:         slog.Default(),
	}, nil
}

// Close closes the cache, repositories, and backend.
func (s *Service) Close() error {
	if err := s.cache.Close(); err != nil {
		s.logger.Error("error closing cache", "err", err)
	}

	if err := s.journalRepo.Close(); err != nil {
		s.logger.Error("error closing journal repository", "err", err)
		return err
	}
	if err := s.topicRepo.Close(); err != nil {
		s.logger.Error("error closing topic repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TopicRepository returns the service's topic store.
func (s *Service) TopicRepository() storage.TopicRepository {
	return s.topicRepo
}

// JournalRepository returns the service's progress and search journal.
func (s *Service) JournalRepository() storage.JournalRepository {
	return s.journalRepo
}

// Cache returns the service's TTL cache.
func (s *Service) Cache() cache.Cache {
	return s.cache
}

// NewRetriever creates a topic-content retriever over the service's
// store, cache, remote sources, and answerer.
func (s *Service) NewRetriever(opts ...retrieval.Option) (*retrieval.Retriever, error) {
	return retrieval.NewRetriever(s.topicRepo, s.cache, s.topicSource, s.academicSource, s.answerer, opts...)
}

// NewRanker creates a ranked-search ranker over the service's topic store.
func (s *Service) NewRanker(opts ...search.Option) (*search.Ranker, error) {
	return search.NewRanker(s.topicRepo, opts...)
}

// NewRecorder creates an async journal recorder over the service's
// journal repository. Callers own the recorder and must Release it.
func (s *Service) NewRecorder(opts ...journal.Option) (*journal.Recorder, error) {
	return journal.NewRecorder(s.journalRepo, opts...)
}
