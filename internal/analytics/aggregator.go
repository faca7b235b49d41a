// Package analytics joins click events to sessions and rolls them up for the
// admin dashboard.
package analytics

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// Filter selects the session set a report covers. Empty fields match all
// sessions; ExcludeBlogClicks drops blog clicks from the click total.
type Filter struct {
	Country           string
	Source            string
	ExcludeBlogClicks bool
}

// CategoryRollup aggregates one session's clicks that share a result name.
type CategoryRollup struct {
	Name             string `json:"name"`
	TotalClicks      int    `json:"total_clicks"`
	UniqueClicks     int    `json:"unique_clicks"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// SessionDetail is one session joined with its click rows and rollups.
type SessionDetail struct {
	domain.Session
	Clicks       []domain.ClickEvent `json:"clicks"`
	TotalClicks  int                 `json:"total_clicks"`
	UniqueClicks int                 `json:"unique_clicks"`
	Categories   []CategoryRollup    `json:"categories"`
}

// Report is one aggregation pass. Seq increases monotonically across
// reports from the same Aggregator; consumers use it to discard results
// from polls that completed out of order.
type Report struct {
	Seq      uint64             `json:"seq"`
	Summary  repository.Summary `json:"summary"`
	Sessions []SessionDetail    `json:"sessions"`
}

// Aggregator produces on-demand analytics reports.
type Aggregator struct {
	sessions *repository.SessionRepository
	clicks   *repository.ClickRepository
	stats    *repository.AnalyticsRepository
	seq      atomic.Uint64
	logger   logger.Logger
}

// New creates an Aggregator.
func New(
	sessions *repository.SessionRepository,
	clicks *repository.ClickRepository,
	stats *repository.AnalyticsRepository,
	log logger.Logger,
) *Aggregator {
	return &Aggregator{
		sessions: sessions,
		clicks:   clicks,
		stats:    stats,
		logger:   log,
	}
}

// Report joins the filtered sessions with their click rows and computes the
// summary totals. Sessions arrive most-recent-first; each session's click
// rows are ordered by descending click count.
func (a *Aggregator) Report(ctx context.Context, filter Filter) (*Report, error) {
	sessionFilter := repository.SessionFilter{
		Country: filter.Country,
		Source:  filter.Source,
	}

	summary, err := a.stats.Summarize(ctx, sessionFilter, filter.ExcludeBlogClicks)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	sessions, err := a.sessions.List(ctx, sessionFilter)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	clicks, err := a.clicks.ListForSessions(ctx, sessionFilter)
	if err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}

	bySession := make(map[string][]domain.ClickEvent, len(sessions))
	for _, c := range clicks {
		bySession[c.SessionID] = append(bySession[c.SessionID], c)
	}

	details := make([]SessionDetail, 0, len(sessions))
	for _, s := range sessions {
		details = append(details, buildDetail(s, bySession[s.SessionID]))
	}

	return &Report{
		Seq:      a.seq.Add(1),
		Summary:  *summary,
		Sessions: details,
	}, nil
}

// buildDetail attaches click rows to a session and computes its rollups.
func buildDetail(s domain.Session, clicks []domain.ClickEvent) SessionDetail {
	detail := SessionDetail{
		Session: s,
		Clicks:  clicks,
	}
	if detail.Clicks == nil {
		detail.Clicks = []domain.ClickEvent{}
	}

	uniqueLinks := make(map[int]struct{}, len(clicks))
	for _, c := range clicks {
		detail.TotalClicks += c.ClickCount
		uniqueLinks[c.LinkID] = struct{}{}
	}
	detail.UniqueClicks = len(uniqueLinks)
	detail.Categories = rollupCategories(clicks)

	return detail
}

// rollupCategories groups a session's clicks by result name. Category order
// follows first appearance, which with click-count-ordered input puts the
// most clicked category first.
func rollupCategories(clicks []domain.ClickEvent) []CategoryRollup {
	rollups := make([]CategoryRollup, 0)
	index := make(map[string]int)
	links := make(map[string]map[int]struct{})

	for _, c := range clicks {
		i, ok := index[c.ResultName]
		if !ok {
			i = len(rollups)
			index[c.ResultName] = i
			rollups = append(rollups, CategoryRollup{Name: c.ResultName})
			links[c.ResultName] = make(map[int]struct{})
		}
		rollups[i].TotalClicks += c.ClickCount
		rollups[i].TimeSpentSeconds += c.TimeSpentSecs
		links[c.ResultName][c.LinkID] = struct{}{}
		rollups[i].UniqueClicks = len(links[c.ResultName])
	}

	return rollups
}

// Clear deletes all sessions and click events. It fails atomically: on
// error nothing was removed and the admin view must keep showing the old
// data.
func (a *Aggregator) Clear(ctx context.Context) error {
	if err := a.stats.ClearAll(ctx); err != nil {
		a.logger.Error("Failed to clear analytics",
			logger.Error(err),
		)
		return err
	}

	a.logger.Info("Analytics cleared")
	return nil
}
