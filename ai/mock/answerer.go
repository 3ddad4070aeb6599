package mock

import (
	"context"

	"github.com/studiolore/studyhall/ai"
)

// DefaultAnswer is what MockAnswerer returns when no custom behavior
// is injected.
const DefaultAnswer = "Answer based on the context"

// MockAnswerer is a test double for ai.Answerer.
// It allows custom behavior injection via function fields.
type MockAnswerer struct {
	// AnswerFunc is called by Answer if set.
	// If nil, Answer returns DefaultAnswer.
	AnswerFunc func(ctx context.Context, contextText, question string) (string, error)

	callCount int
}

var _ ai.Answerer = (*MockAnswerer)(nil)

// NewMockAnswerer creates a mock answerer with default behavior.
// Returns the concrete type to allow test assertions on call counts.
func NewMockAnswerer() *MockAnswerer {
	return &MockAnswerer{}
}

// Answer returns the injected function's result, or DefaultAnswer.
func (m *MockAnswerer) Answer(ctx context.Context, contextText, question string) (string, error) {
	m.callCount++

	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, contextText, question)
	}
	return DefaultAnswer, nil
}

// CallCount returns the number of times Answer was called.
func (m *MockAnswerer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom function.
func (m *MockAnswerer) Reset() {
	m.callCount = 0
	m.AnswerFunc = nil
}
