package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const subscriptionColumns = "id, name, cost, cycle, start_date, is_trial, trial_end_date, status, url"

// Repository handles persistence for subscriptions. Every call borrows a
// connection from the pool for the duration of that single statement.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (Subscription, error) {
	var (
		sub      Subscription
		start    time.Time
		trialEnd sql.NullTime
		url      sql.NullString
	)
	if err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Cost,
		&sub.Cycle,
		&start,
		&sub.IsTrial,
		&trialEnd,
		&sub.Status,
		&url,
	); err != nil {
		return Subscription{}, err
	}

	sub.StartDate = formatInstant(start)
	if trialEnd.Valid {
		s := formatInstant(trialEnd.Time)
		sub.TrialEndDate = &s
	}
	if url.Valid {
		sub.URL = &url.String
	}
	return sub, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseInstant(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// timestampArgs converts the record's instant strings into values the driver
// can bind. The start date is guaranteed non-empty by the create pipeline.
func timestampArgs(sub Subscription) (time.Time, *time.Time, error) {
	start, err := parseInstant(sub.StartDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parse start date: %w", err)
	}

	var trialEnd *time.Time
	if sub.TrialEndDate != nil && *sub.TrialEndDate != "" {
		end, err := parseInstant(*sub.TrialEndDate)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("parse trial end date: %w", err)
		}
		trialEnd = &end
	}
	return start, trialEnd, nil
}

func (r *Repository) List(ctx context.Context) ([]Subscription, error) {
	query := fmt.Sprintf("SELECT %s FROM subscriptions ORDER BY id", subscriptionColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return subs, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Subscription, error) {
	query := fmt.Sprintf("SELECT %s FROM subscriptions WHERE id = $1", subscriptionColumns)

	sub, err := scanSubscription(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("select subscription: %w", err)
	}
	return sub, nil
}

func (r *Repository) Create(ctx context.Context, sub Subscription) (Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO subscriptions (name, cost, cycle, start_date, is_trial, trial_end_date, status, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, subscriptionColumns)

	start, trialEnd, err := timestampArgs(sub)
	if err != nil {
		return Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}

	created, err := scanSubscription(r.db.QueryRowContext(ctx, query,
		sub.Name,
		sub.Cost,
		sub.Cycle,
		start,
		sub.IsTrial,
		trialEnd,
		sub.Status,
		sub.URL,
	))
	if err != nil {
		return Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}
	return created, nil
}

// Update overwrites the full row for an existing id. Merging a partial
// payload into the current record is the caller's job.
func (r *Repository) Update(ctx context.Context, id int64, sub Subscription) (Subscription, error) {
	query := fmt.Sprintf(`
		UPDATE subscriptions
		SET name = $1, cost = $2, cycle = $3, start_date = $4, is_trial = $5, trial_end_date = $6, status = $7, url = $8
		WHERE id = $9
		RETURNING %s`, subscriptionColumns)

	start, trialEnd, err := timestampArgs(sub)
	if err != nil {
		return Subscription{}, fmt.Errorf("update subscription: %w", err)
	}

	updated, err := scanSubscription(r.db.QueryRowContext(ctx, query,
		sub.Name,
		sub.Cost,
		sub.Cycle,
		start,
		sub.IsTrial,
		trialEnd,
		sub.Status,
		sub.URL,
		id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return Subscription{}, err
		}
		return Subscription{}, fmt.Errorf("update subscription: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM subscriptions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
