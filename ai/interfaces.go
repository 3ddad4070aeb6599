package ai

import "context"

// Answerer produces a natural-language answer to a question given
// supporting context. Implementations must be thread-safe for
// concurrent use.
type Answerer interface {
	// Answer generates an answer to question using contextText as the
	// sole source of supporting material. The context may include both
	// stored topic content and supplementary academic summaries.
	// Returns an error if generation fails.
	Answer(ctx context.Context, contextText, question string) (string, error)
}
