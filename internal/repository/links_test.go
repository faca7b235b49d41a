//nolint:testpackage // Testing internal SQL requires same package access
package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/logger"
)

func newLinkRepo(t *testing.T) (*LinkRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return NewLinkRepository(db, logger.NewNop()), mock, func() { db.Close() }
}

func TestLinkRepository_SetCountryLinkUppercasesCountry(t *testing.T) {
	repo, mock, cleanup := newLinkRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO country_links").
		WithArgs("id-1", "GB", "https://example.co.uk").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetCountryLink(context.Background(), &domain.CountryLink{
		ResultID: "id-1",
		Country:  "gb",
		URL:      "https://example.co.uk",
	})
	if err != nil {
		t.Errorf("SetCountryLink() error = %v", err)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestLinkRepository_GetCountryLinkNotFound(t *testing.T) {
	repo, mock, cleanup := newLinkRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT result_id, country, url").
		WithArgs("id-1", "DE").
		WillReturnRows(sqlmock.NewRows([]string{"result_id", "country", "url"}))

	_, err := repo.GetCountryLink(context.Background(), "id-1", "de")
	if !IsNotFound(err) {
		t.Errorf("GetCountryLink() error = %v, want ErrNotFound", err)
	}
}

func TestLinkRepository_SetWorldwideLinkReplaces(t *testing.T) {
	repo, mock, cleanup := newLinkRepo(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO worldwide_links").
		WithArgs("id-1", "https://example.com/v2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetWorldwideLink(context.Background(), &domain.WorldwideLink{
		ResultID: "id-1",
		URL:      "https://example.com/v2",
	})
	if err != nil {
		t.Errorf("SetWorldwideLink() error = %v", err)
	}
}

func TestLinkRepository_DeleteWorldwideLinkNotFound(t *testing.T) {
	repo, mock, cleanup := newLinkRepo(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM worldwide_links").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteWorldwideLink(context.Background(), "id-1"); !IsNotFound(err) {
		t.Errorf("DeleteWorldwideLink() error = %v, want ErrNotFound", err)
	}
}
