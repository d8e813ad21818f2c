package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SeedDemoData inserts a handful of sample subscriptions so a fresh install
// has something to show. It is a no-op when the table already has rows.
func SeedDemoData(ctx context.Context, store Store, log *slog.Logger) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: list subscriptions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339Nano)
	inThreeDays := now.AddDate(0, 0, 3).Format(time.RFC3339Nano)
	inTwoWeeks := now.AddDate(0, 0, 14).Format(time.RFC3339Nano)

	samples := []Subscription{
		{Name: "Netflix", Cost: 1549, Cycle: CycleMonthly, StartDate: "2023-01-15T00:00:00Z", Status: StatusActive},
		{Name: "Adobe Creative Cloud", Cost: 5499, Cycle: CycleMonthly, StartDate: nowStr, IsTrial: true, TrialEndDate: &inThreeDays, Status: StatusActive},
		{Name: "Spotify", Cost: 1099, Cycle: CycleMonthly, StartDate: "2022-06-01T00:00:00Z", Status: StatusActive},
		{Name: "Amazon Prime", Cost: 13900, Cycle: CycleYearly, StartDate: nowStr, IsTrial: true, TrialEndDate: &inTwoWeeks, Status: StatusActive},
	}

	for _, sub := range samples {
		if _, err := store.Create(ctx, sub); err != nil {
			return fmt.Errorf("seed %q: %w", sub.Name, err)
		}
	}

	log.Info("seeded demo subscriptions", "count", len(samples))
	return nil
}
