// Package tracker records visitor sessions and per-link click counters.
// Tracking is advisory: failures are logged and must never block page
// rendering or the outbound redirect.
package tracker

import (
	"context"
	"time"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/geo"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// Locator resolves a visitor IP to a best-effort location.
type Locator interface {
	Lookup(ctx context.Context, ip string) geo.Location
}

// Tracker implements session and click bookkeeping over the record store.
// The session identifier is always passed explicitly; there is no ambient
// "current session" state.
type Tracker struct {
	sessions *repository.SessionRepository
	clicks   *repository.ClickRepository
	geo      Locator
	logger   logger.Logger
}

// New creates a Tracker.
func New(
	sessions *repository.SessionRepository,
	clicks *repository.ClickRepository,
	locator Locator,
	log logger.Logger,
) *Tracker {
	return &Tracker{
		sessions: sessions,
		clicks:   clicks,
		geo:      locator,
		logger:   log,
	}
}

// Visit describes one page load by a visitor.
type Visit struct {
	SessionID string
	Page      string
	RemoteIP  string
	UserAgent string
	Referrer  string
	UTMSource string
}

// Click describes one click on a masked link.
type Click struct {
	SessionID   string
	LinkID      int
	ResultName  string
	ResultTitle string
	SearchTerm  string
	IsBlogClick bool
}

// StartSession opens a session for the visit's identifier, or bumps the
// page-view counter when the session already exists. IP, country, traffic
// source, and device class are captured best-effort on the first visit.
func (t *Tracker) StartSession(ctx context.Context, visit Visit) error {
	if err := domain.ValidateSessionID(visit.SessionID); err != nil {
		return err
	}

	loc := t.geo.Lookup(ctx, visit.RemoteIP)

	session := &domain.Session{
		SessionID: visit.SessionID,
		Page:      visit.Page,
		IPAddress: loc.IP,
		Country:   loc.Country,
		Source:    DeriveSource(visit.UTMSource, visit.Referrer),
		Device:    DeriveDevice(visit.UserAgent),
		PageViews: 1,
		StartTime: time.Now(),
	}

	if err := t.sessions.Upsert(ctx, session); err != nil {
		t.logger.Warn("Failed to record session start",
			logger.String("session_id", visit.SessionID),
			logger.Error(err),
		)
		return err
	}

	return nil
}

// EndSession closes the session, computing its floored whole-second
// duration. Closing an already-closed or unknown session is a no-op.
func (t *Tracker) EndSession(ctx context.Context, sessionID string) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}

	if err := t.sessions.Close(ctx, sessionID, time.Now()); err != nil {
		t.logger.Warn("Failed to record session end",
			logger.String("session_id", sessionID),
			logger.Error(err),
		)
		return err
	}

	return nil
}

// TrackClick records one click against the (session, link) counter. The
// store increments atomically, so rapid double-clicks both land.
func (t *Tracker) TrackClick(ctx context.Context, click Click) error {
	if err := domain.ValidateSessionID(click.SessionID); err != nil {
		return err
	}

	event := &domain.ClickEvent{
		SessionID:     click.SessionID,
		LinkID:        click.LinkID,
		ResultName:    click.ResultName,
		ResultTitle:   click.ResultTitle,
		IsBlogClick:   click.IsBlogClick,
		LastClickedAt: time.Now(),
	}
	if click.SearchTerm != "" {
		event.SearchTerm = &click.SearchTerm
	}

	if err := t.clicks.Record(ctx, event); err != nil {
		t.logger.Warn("Failed to record click",
			logger.String("session_id", click.SessionID),
			logger.Int("link_id", click.LinkID),
			logger.Error(err),
		)
		return err
	}

	return nil
}
