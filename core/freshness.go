package core

import "time"

// DefaultStalenessWindow is how long a stored topic stays authoritative
// before a refresh from the external feed is attempted.
const DefaultStalenessWindow = 7 * 24 * time.Hour

// NeedsRefresh reports whether the stored topic for a sector should be
// refreshed from the external feed. A nil topic means the sector is unknown
// and always needs a refresh.
//
// The boundary is exclusive: a topic aged exactly the window is still fresh;
// staleness starts one instant past it.
//
// Pure function, no side effects.
func NeedsRefresh(topic *Topic, now time.Time, window time.Duration) bool {
	if topic == nil {
		return true
	}
	return now.Sub(topic.LastUpdate) > window
}
