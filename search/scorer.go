package search

import (
	"encoding/json"
	"strings"

	"github.com/studiolore/studyhall/core"
)

// Preferences carries caller-supplied ranking hints as raw JSON. The
// ranker passes it through untouched; interpretation is up to the
// Scorer. Nil means the caller supplied none.
type Preferences = json.RawMessage

// Scorer assigns a relevance score to a topic for a query.
// Implementations must be deterministic: the same query, topic, and
// preferences always produce the same score. Scores of zero or below
// exclude the topic from results.
type Scorer interface {
	Score(query string, topic *core.Topic, prefs Preferences) float64
}

// ConstantScorer scores every topic with the same fixed value.
// It stands in until a real relevance formula is chosen; with it, every
// stored topic matches every query equally.
type ConstantScorer struct {
	Value float64
}

var _ Scorer = ConstantScorer{}

// Score returns the fixed value regardless of query, topic, or preferences.
func (s ConstantScorer) Score(_ string, _ *core.Topic, _ Preferences) float64 {
	return s.Value
}

// DefaultScorer returns the scorer used when none is configured.
func DefaultScorer() Scorer {
	return ConstantScorer{Value: 0.5}
}

// Stop words to filter out when matching query words.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// WordMatchScorer scores a topic by the fraction of filtered query
// words that appear in the topic's sector name or content. A topic
// containing none of the query words scores zero and is excluded.
type WordMatchScorer struct{}

var _ Scorer = WordMatchScorer{}

// Score returns matchedQueryWords / totalQueryWords in [0, 1].
// Preferences are ignored.
func (s WordMatchScorer) Score(query string, topic *core.Topic, _ Preferences) float64 {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return 0
	}

	docWords := tokenizeAndFilter(topic.Sector + " " + topic.Content)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	matched := 0
	for _, qWord := range queryWords {
		if docWordSet[qWord] {
			matched++
		}
	}

	return float64(matched) / float64(len(queryWords))
}
