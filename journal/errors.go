package journal

import "errors"

var (
	// ErrJournalRepositoryRequired is returned when a journal repository is not provided.
	ErrJournalRepositoryRequired = errors.New("journal repository required")

	// ErrRecorderReleased is returned when recording after Release.
	ErrRecorderReleased = errors.New("recorder released")
)
