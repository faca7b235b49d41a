package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"github.com/fastmoney/fastmoney/internal/geo"
	"github.com/fastmoney/fastmoney/internal/handler"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
	"github.com/fastmoney/fastmoney/internal/resolver"
	"github.com/fastmoney/fastmoney/internal/tracker"
)

func setupRedirectRouter(t *testing.T, loc geo.Location) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	locator := &fixedLocator{loc: loc}

	results := repository.NewResultRepository(db, log)
	links := repository.NewLinkRepository(db, log)
	tr := tracker.New(
		repository.NewSessionRepository(db, log),
		repository.NewClickRepository(db, log),
		locator,
		log,
	)

	h := handler.NewRedirectHandler(results, resolver.New(links, log), tr, locator, log)
	r := gin.New()
	r.GET("/go/:lid", h.HandleRedirect)

	return r, mock, func() { db.Close() }
}

func webResultRow() *sqlmock.Rows {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "name", "link", "title", "description", "logo_url",
		"is_sponsored", "page", "lid", "created_at", "updated_at",
	}).AddRow("id-1", "Backgrounds", "https://google.com", "google", "", "", true, "wr=1", 1, now, now)
}

func TestHandleRedirect_CountryOverride(t *testing.T) {
	r, mock, cleanup := setupRedirectRouter(t, geo.Location{IP: "203.0.113.9", Country: "GB"})
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM web_results WHERE lid").
		WithArgs(1).
		WillReturnRows(webResultRow())
	mock.ExpectQuery("SELECT result_id, country, url").
		WithArgs("id-1", "GB").
		WillReturnRows(sqlmock.NewRows([]string{"result_id", "country", "url"}).
			AddRow("id-1", "GB", "https://example.co.uk/offer"))

	req := httptest.NewRequest(http.MethodGet, "/go/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.co.uk/offer" {
		t.Errorf("Location = %q, want the country override", loc)
	}
}

func TestHandleRedirect_WorldwideVisitorFallsThrough(t *testing.T) {
	r, mock, cleanup := setupRedirectRouter(t, geo.Unknown("203.0.113.9"))
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM web_results WHERE lid").
		WithArgs(1).
		WillReturnRows(webResultRow())
	// An unknown country goes straight to the worldwide fallback.
	mock.ExpectQuery("SELECT result_id, url FROM worldwide_links").
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows([]string{"result_id", "url"}))

	req := httptest.NewRequest(http.MethodGet, "/go/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "https://google.com" {
		t.Errorf("Location = %q, want the canonical link", loc)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestHandleRedirect_UnknownLid(t *testing.T) {
	r, mock, cleanup := setupRedirectRouter(t, geo.Unknown(""))
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM web_results WHERE lid").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodGet, "/go/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleRedirect_InvalidLid(t *testing.T) {
	r, _, cleanup := setupRedirectRouter(t, geo.Unknown(""))
	defer cleanup()

	for _, lid := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/go/"+lid, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("lid %q: status = %d, want %d", lid, w.Code, http.StatusBadRequest)
		}
	}
}
