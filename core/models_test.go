package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("physics"), IDFromContent("physics"))
	})

	t.Run("case sensitive", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("physics"), IDFromContent("Physics"))
	})

	t.Run("distinct sectors produce distinct IDs", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("physics"), IDFromContent("chemistry"))
	})
}

func TestTopicMUSRoundTrip(t *testing.T) {
	topic := Topic{
		Id:             IDFromContent("physics"),
		Sector:         "physics",
		Content:        "Newton's laws of motion describe the relationship between forces and movement.",
		FurtherReading: "http://example.com/physics",
		LastUpdate:     time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC),
	}

	buf := make([]byte, TopicMUS.Size(topic))
	n := TopicMUS.Marshal(topic, buf)
	require.Equal(t, len(buf), n)

	got, n, err := TopicMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, topic, got)
}

func TestTopicMUSZeroLastUpdate(t *testing.T) {
	// Zero time must survive the round trip as zero, not as epoch.
	topic := Topic{Sector: "drafts"}

	buf := make([]byte, TopicMUS.Size(topic))
	TopicMUS.Marshal(topic, buf)

	got, _, err := TopicMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.True(t, got.LastUpdate.IsZero())
}

func TestTopicMUSTruncatedData(t *testing.T) {
	topic := Topic{
		Id:         IDFromContent("physics"),
		Sector:     "physics",
		Content:    "some content",
		LastUpdate: time.Now().UTC(),
	}

	buf := make([]byte, TopicMUS.Size(topic))
	TopicMUS.Marshal(topic, buf)

	_, _, err := TopicMUS.Unmarshal(buf[:len(buf)/2])
	assert.Error(t, err)
}

func TestProgressRecordMUSRoundTrip(t *testing.T) {
	record := ProgressRecord{
		Id:            42,
		Sector:        "chemistry",
		LastStudyDate: time.Date(2026, 1, 3, 19, 0, 0, 0, time.UTC),
		Performance:   0.85,
		Notes:         "struggled with stoichiometry",
		InsertedAt:    time.Date(2026, 1, 3, 19, 5, 0, 0, time.UTC),
	}

	buf := make([]byte, ProgressRecordMUS.Size(record))
	ProgressRecordMUS.Marshal(record, buf)

	got, _, err := ProgressRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestSearchRecordMUSRoundTrip(t *testing.T) {
	record := SearchRecord{
		Id:        7,
		Query:     "gravity",
		Timestamp: time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, SearchRecordMUS.Size(record))
	SearchRecordMUS.Marshal(record, buf)

	got, _, err := SearchRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}
