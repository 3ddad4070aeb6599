package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedsRefresh(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		topic  *Topic
		window time.Duration
		want   bool
	}{
		{
			name:   "absent topic always needs refresh",
			topic:  nil,
			window: DefaultStalenessWindow,
			want:   true,
		},
		{
			name:   "freshly updated topic",
			topic:  &Topic{Sector: "physics", LastUpdate: now},
			window: DefaultStalenessWindow,
			want:   false,
		},
		{
			name:   "aged exactly the window is still fresh",
			topic:  &Topic{Sector: "physics", LastUpdate: now.Add(-DefaultStalenessWindow)},
			window: DefaultStalenessWindow,
			want:   false,
		},
		{
			name:   "one second past the window is stale",
			topic:  &Topic{Sector: "physics", LastUpdate: now.Add(-DefaultStalenessWindow - time.Second)},
			window: DefaultStalenessWindow,
			want:   true,
		},
		{
			name:   "ten days old with default window",
			topic:  &Topic{Sector: "physics", LastUpdate: now.Add(-10 * 24 * time.Hour)},
			window: DefaultStalenessWindow,
			want:   true,
		},
		{
			name:   "custom short window",
			topic:  &Topic{Sector: "physics", LastUpdate: now.Add(-2 * time.Hour)},
			window: time.Hour,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsRefresh(tt.topic, now, tt.window))
		})
	}
}
