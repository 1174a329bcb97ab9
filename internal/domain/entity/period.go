package entity

import "time"

// Period is one availability interval parsed from an item's free-text
// booking description. Both bounds are dates, inclusive.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the period intersects the closed query window.
// A period touching the window boundary counts as overlapping.
func (p Period) Overlaps(start, end time.Time) bool {
	return !p.Start.After(end) && !p.End.Before(start)
}
