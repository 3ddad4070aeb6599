package journal

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/storage"
)

// Recorder appends study-progress and search-history records
// asynchronously through a worker pool.
type Recorder struct {
	journalRepository storage.JournalRepository
	pool              *ants.Pool
	logger            *slog.Logger
	now               func() time.Time
	released          bool
}

// Option configures a Recorder.
type Option func(*Recorder) error

// WithPoolSize sets the worker pool size for async writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Recorder) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates a recorder over the given journal repository.
func NewRecorder(journalRepository storage.JournalRepository, opts ...Option) (*Recorder, error) {
	if journalRepository == nil {
		return nil, ErrJournalRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		journalRepository: journalRepository,
		pool:              pool,
		logger:            slog.Default(),
		now:               func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		if optErr := opt(r); optErr != nil {
			r.Release()
			return nil, optErr
		}
	}

	return r, nil
}

// RecordProgress submits a study-progress record for async storage.
// The study date is stamped from the recorder's clock at submission.
// Storage failures are logged but never surfaced to the caller.
func (r *Recorder) RecordProgress(sector string, performance float64, notes string) error {
	if r.released {
		return ErrRecorderReleased
	}

	record := &core.ProgressRecord{
		Sector:        sector,
		LastStudyDate: r.now(),
		Performance:   performance,
		Notes:         notes,
	}

	return r.pool.Submit(func() {
		if _, err := r.journalRepository.AppendProgress(context.Background(), record); err != nil {
			r.logger.Error("error recording study progress", "sector", sector, "err", err)
		}
	})
}

// RecordSearch submits a search-history record for async storage.
// Storage failures are logged but never surfaced to the caller.
func (r *Recorder) RecordSearch(query string) error {
	if r.released {
		return ErrRecorderReleased
	}

	record := &core.SearchRecord{
		Query:     query,
		Timestamp: r.now(),
	}

	return r.pool.Submit(func() {
		if _, err := r.journalRepository.AppendSearch(context.Background(), record); err != nil {
			r.logger.Error("error recording search", "query", query, "err", err)
		}
	})
}

// Release releases the worker pool.
// The recorder should not be used after calling Release.
func (r *Recorder) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
	r.released = true
}
