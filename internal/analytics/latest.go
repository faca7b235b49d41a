package analytics

import "sync"

// LatestReport keeps the newest report applied by a polling consumer.
// Polls run on a fixed interval and may complete out of order; Apply
// discards any report whose sequence number is not newer than the one
// already held, so a slow poll can never overwrite fresher data.
type LatestReport struct {
	mu     sync.Mutex
	report *Report
}

// Apply stores the report if it is newer than the current one. It reports
// whether the report was applied.
func (l *LatestReport) Apply(r *Report) bool {
	if r == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.report != nil && r.Seq <= l.report.Seq {
		return false
	}
	l.report = r
	return true
}

// Get returns the newest applied report, or nil if none has been applied.
func (l *LatestReport) Get() *Report {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.report
}
