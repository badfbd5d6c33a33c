// Package dedupe drops repeated log records by fingerprint.
package dedupe

// Tracker remembers the fingerprints of records already seen in a run.
// Memory grows with the number of distinct records, so it is only used when
// de-duplication was requested.
type Tracker struct {
	seen       map[uint64]struct{}
	duplicates int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[uint64]struct{}),
	}
}

// Track records a fingerprint and reports whether it was already seen.
func (t *Tracker) Track(fingerprint uint64) (duplicate bool) {
	if _, exists := t.seen[fingerprint]; exists {
		t.duplicates++
		return true
	}
	t.seen[fingerprint] = struct{}{}

	return false
}

// Unique returns the number of distinct fingerprints tracked.
func (t *Tracker) Unique() int {
	return len(t.seen)
}

// Duplicates returns how many Track calls hit an already seen fingerprint.
func (t *Tracker) Duplicates() int {
	return t.duplicates
}

// Reset clears all tracked fingerprints, keeping the map allocation.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.duplicates = 0
}
