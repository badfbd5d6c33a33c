package cli

import (
	"github.com/arloliu/logdump/internal/config"
	"github.com/arloliu/logdump/internal/dedupe"
	"github.com/arloliu/logdump/record"
)

// filter decides which records a command sees.
type filter struct {
	minSeverity record.Severity
	hasMin      bool
	tracker     *dedupe.Tracker
}

// newFilter expects a validated config.
func newFilter(cfg config.Config) *filter {
	f := &filter{}
	f.minSeverity, f.hasMin, _ = cfg.Severity()
	if cfg.Unique {
		f.tracker = dedupe.NewTracker()
	}

	return f
}

func (f *filter) keep(e record.LogEntry) bool {
	if f.hasMin && !e.Severity.AtLeast(f.minSeverity) {
		return false
	}
	if f.tracker != nil && f.tracker.Track(e.Fingerprint()) {
		return false
	}

	return true
}
