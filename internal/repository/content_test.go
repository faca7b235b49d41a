//nolint:testpackage // Testing internal SQL requires same package access
package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

func newContentRepo(t *testing.T) (*ContentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return NewContentRepository(db, logger.NewNop()), mock, func() { db.Close() }
}

func TestContentRepository_GetLanding(t *testing.T) {
	repo, mock, cleanup := newContentRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT title, description FROM landing_content").
		WillReturnRows(sqlmock.NewRows([]string{"title", "description"}).
			AddRow("Five Ways to Make Money Online Fast", "Transitioning..."))

	content, err := repo.GetLanding(context.Background())
	if err != nil {
		t.Fatalf("GetLanding() error = %v", err)
	}
	if content.Title != "Five Ways to Make Money Online Fast" {
		t.Errorf("GetLanding() title = %q", content.Title)
	}
}

func TestContentRepository_GetLandingEmpty(t *testing.T) {
	repo, mock, cleanup := newContentRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT title, description FROM landing_content").
		WillReturnRows(sqlmock.NewRows([]string{"title", "description"}))

	_, err := repo.GetLanding(context.Background())
	if !IsNotFound(err) {
		t.Errorf("GetLanding() on empty table error = %v, want ErrNotFound", err)
	}
}

func TestContentRepository_SaveLanding(t *testing.T) {
	repo, mock, cleanup := newContentRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO landing_content").
		WithArgs("New Title", "New description").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveLanding(context.Background(), &domain.LandingContent{
		Title:       "New Title",
		Description: "New description",
	})
	if err != nil {
		t.Errorf("SaveLanding() error = %v", err)
	}
}

func TestContentRepository_CreateButtonAssignsSerial(t *testing.T) {
	repo, mock, cleanup := newContentRepo(t)
	defer cleanup()

	mock.ExpectQuery("INSERT INTO search_buttons").
		WithArgs(sqlmock.AnyArg(), "google", "https://google.com", "wr=1", 0).
		WillReturnRows(sqlmock.NewRows([]string{"serial_number"}).AddRow(5))

	button := &domain.SearchButton{Title: "google", Link: "https://google.com", Page: "wr=1"}
	if err := repo.CreateButton(context.Background(), button); err != nil {
		t.Fatalf("CreateButton() error = %v", err)
	}

	if button.SerialNumber != 5 {
		t.Errorf("CreateButton() serial = %d, want 5 (appended after last)", button.SerialNumber)
	}
	if button.ID == "" {
		t.Error("CreateButton() must assign an id")
	}
}

func TestContentRepository_DeleteButtonNotFound(t *testing.T) {
	repo, mock, cleanup := newContentRepo(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM search_buttons").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteButton(context.Background(), "missing"); !IsNotFound(err) {
		t.Errorf("DeleteButton() error = %v, want ErrNotFound", err)
	}
}
