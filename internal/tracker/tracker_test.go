package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/geo"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
)

// stubLocator returns a fixed location for every lookup.
type stubLocator struct {
	loc geo.Location
}

func (s *stubLocator) Lookup(_ context.Context, _ string) geo.Location {
	return s.loc
}

func newTestTracker(t *testing.T, loc geo.Location) (*Tracker, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	log := logger.NewNop()
	tr := New(
		repository.NewSessionRepository(db, log),
		repository.NewClickRepository(db, log),
		&stubLocator{loc: loc},
		log,
	)

	return tr, mock, func() { db.Close() }
}

func TestStartSession(t *testing.T) {
	loc := geo.Location{IP: "203.0.113.9", Country: "GB"}
	tr, mock, cleanup := newTestTracker(t, loc)
	defer cleanup()

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			"session_1717000000000_abc", // session_id
			"wr=1",                      // page
			"203.0.113.9",               // ip_address from geo
			"GB",                        // country from geo
			"google",                    // source derived from referrer
			domain.DeviceDesktop,        // device derived from UA
			1,                           // page_views
			sqlmock.AnyArg(),            // start_time
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := tr.StartSession(context.Background(), Visit{
		SessionID: "session_1717000000000_abc",
		Page:      "wr=1",
		RemoteIP:  "203.0.113.9",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0",
		Referrer:  "https://www.google.com/search?q=make+money",
	})
	if err != nil {
		t.Errorf("StartSession() error = %v", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestStartSession_InvalidID(t *testing.T) {
	tr, mock, cleanup := newTestTracker(t, geo.Unknown(""))
	defer cleanup()

	err := tr.StartSession(context.Background(), Visit{SessionID: "bad id!", Page: "wr=1"})
	if !errors.Is(err, domain.ErrInvalidSessionID) {
		t.Errorf("StartSession() error = %v, want %v", err, domain.ErrInvalidSessionID)
	}

	// Nothing must reach the store.
	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unexpected store access: %v", expectErr)
	}
}

func TestEndSession(t *testing.T) {
	tr, mock, cleanup := newTestTracker(t, geo.Unknown(""))
	defer cleanup()

	mock.ExpectExec("UPDATE sessions").
		WithArgs("sess-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := tr.EndSession(context.Background(), "sess-1"); err != nil {
		t.Errorf("EndSession() error = %v", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTrackClick(t *testing.T) {
	tr, mock, cleanup := newTestTracker(t, geo.Unknown(""))
	defer cleanup()

	mock.ExpectExec("INSERT INTO click_events").
		WithArgs("sess-1", 3, "google", "google", "wr=2", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := tr.TrackClick(context.Background(), Click{
		SessionID:   "sess-1",
		LinkID:      3,
		ResultName:  "google",
		ResultTitle: "google",
		SearchTerm:  "wr=2",
	})
	if err != nil {
		t.Errorf("TrackClick() error = %v", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestTrackClick_EmptySearchTermStoredAsNull(t *testing.T) {
	tr, mock, cleanup := newTestTracker(t, geo.Unknown(""))
	defer cleanup()

	mock.ExpectExec("INSERT INTO click_events").
		WithArgs("sess-1", 1, "n", "t", nil, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := tr.TrackClick(context.Background(), Click{
		SessionID:   "sess-1",
		LinkID:      1,
		ResultName:  "n",
		ResultTitle: "t",
		IsBlogClick: true,
	})
	if err != nil {
		t.Errorf("TrackClick() error = %v", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
