package roster

import (
	"time"

	. "rcsc-server/internal/models"
)

// DefaultClockSkewThreshold flags submissions whose client-reported time
// diverges from the server insert time by more than five minutes.
const DefaultClockSkewThreshold = 5 * time.Minute

var browserTimeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Suspicious reports whether the row's reported browser time and its
// server timestamp diverge past the threshold. It is a visual signal for
// moderators only; no downstream action is taken on it.
func Suspicious(row Registration, threshold time.Duration) bool {
	if row.BrowserTime == nil || *row.BrowserTime == "" {
		return false
	}

	var reported time.Time
	var err error
	for _, layout := range browserTimeLayouts {
		reported, err = time.Parse(layout, *row.BrowserTime)
		if err == nil {
			break
		}
	}
	if err != nil {
		// unparseable client clocks are flagged too
		return true
	}

	diff := row.CreatedAt.Sub(reported)
	if diff < 0 {
		diff = -diff
	}

	return diff > threshold
}
