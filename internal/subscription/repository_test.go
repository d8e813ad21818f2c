package subscription

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var testColumns = []string{
	"id", "name", "cost", "cycle", "start_date", "is_trial", "trial_end_date", "status", "url",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testColumns).
		AddRow(int64(1), "Netflix", int64(1549), "monthly", start, false, nil, "active", nil)

	mock.ExpectQuery("INSERT INTO subscriptions").
		WithArgs("Netflix", int64(1549), "monthly", start, false, (*time.Time)(nil), "active", (*string)(nil)).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), Subscription{
		Name:      "Netflix",
		Cost:      1549,
		Cycle:     "monthly",
		StartDate: "2025-01-15T00:00:00Z",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 1 || created.Name != "Netflix" || created.Cost != 1549 {
		t.Fatalf("unexpected subscription: %+v", created)
	}
	if created.StartDate != "2025-01-15T00:00:00Z" {
		t.Fatalf("unexpected start date: %q", created.StartDate)
	}
	if created.TrialEndDate != nil || created.URL != nil {
		t.Fatalf("expected null trial end date and url, got %+v", created)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_CreateWithTrialAndURL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testColumns).
		AddRow(int64(2), "Adobe", int64(5499), "monthly", start, true, trialEnd, "active", "https://adobe.com")

	mock.ExpectQuery("INSERT INTO subscriptions").
		WillReturnRows(rows)

	url := "https://adobe.com"
	end := "2025-03-15T00:00:00Z"
	created, err := repo.Create(context.Background(), Subscription{
		Name:         "Adobe",
		Cost:         5499,
		Cycle:        "monthly",
		StartDate:    "2025-03-01T00:00:00Z",
		IsTrial:      true,
		TrialEndDate: &end,
		Status:       "active",
		URL:          &url,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.TrialEndDate == nil || *created.TrialEndDate != "2025-03-15T00:00:00Z" {
		t.Fatalf("unexpected trial end date: %v", created.TrialEndDate)
	}
	if created.URL == nil || *created.URL != "https://adobe.com" {
		t.Fatalf("unexpected url: %v", created.URL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_CreateBadStartDate(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	if _, err := repo.Create(context.Background(), Subscription{
		Name:      "Netflix",
		Cost:      1549,
		Cycle:     "monthly",
		StartDate: "not-a-date",
		Status:    "active",
	}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testColumns).
		AddRow(int64(7), "Spotify", int64(1099), "monthly", start, false, nil, "active", nil)

	mock.ExpectQuery("SELECT (.+) FROM subscriptions WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	sub, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if sub.ID != 7 || sub.Name != "Spotify" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM subscriptions WHERE id").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), 99); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testColumns).
		AddRow(int64(1), "Netflix", int64(1549), "monthly", start, false, nil, "active", nil).
		AddRow(int64(2), "Spotify", int64(1099), "monthly", start, false, nil, "paused", nil)

	mock.ExpectQuery("SELECT (.+) FROM subscriptions ORDER BY id").
		WillReturnRows(rows)

	subs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0].ID != 1 || subs[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", subs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM subscriptions ORDER BY id").
		WillReturnRows(sqlmock.NewRows(testColumns))

	subs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if subs == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(subs) != 0 {
		t.Fatalf("expected no subscriptions, got %d", len(subs))
	}
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	start := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(testColumns).
		AddRow(int64(1), "Netflix 4K", int64(1999), "monthly", start, false, nil, "active", nil)

	mock.ExpectQuery("UPDATE subscriptions").
		WillReturnRows(rows)

	updated, err := repo.Update(context.Background(), 1, Subscription{
		Name:      "Netflix 4K",
		Cost:      1999,
		Cycle:     "monthly",
		StartDate: "2025-01-15T00:00:00Z",
		Status:    "active",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Netflix 4K" || updated.Cost != 1999 {
		t.Fatalf("unexpected subscription: %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_UpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("UPDATE subscriptions").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Update(context.Background(), 99, Subscription{
		Name:      "Ghost",
		Cycle:     "monthly",
		StartDate: "2025-01-15T00:00:00Z",
		Status:    "active",
	}); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRepository_DeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 99); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
