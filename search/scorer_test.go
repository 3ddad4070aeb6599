package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studiolore/studyhall/core"
)

func topicWith(sector, content string) *core.Topic {
	return &core.Topic{
		Sector:     sector,
		Content:    content,
		LastUpdate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestConstantScorer(t *testing.T) {
	s := ConstantScorer{Value: 0.5}

	assert.Equal(t, 0.5, s.Score("any query", topicWith("physics", "Newton's laws."), nil))
	assert.Equal(t, 0.5, s.Score("other query", topicWith("botany", ""), nil))
}

func TestWordMatchScorer(t *testing.T) {
	s := WordMatchScorer{}
	topic := topicWith("quantum computing", "Qubits, superposition, and entanglement.")

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"all words match", "quantum superposition", 1.0},
		{"partial match", "quantum cooking", 0.5},
		{"no match", "roman history", 0},
		{"stop words ignored", "the quantum of the qubits", 1.0},
		{"empty query", "   ", 0},
		{"punctuation trimmed", "entanglement!", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Score(tt.query, topic, nil))
		})
	}
}

func TestWordMatchScorerDeterministic(t *testing.T) {
	s := WordMatchScorer{}
	topic := topicWith("astronomy", "Stars and planets.")

	first := s.Score("stars", topic, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Score("stars", topic, nil))
	}
}
