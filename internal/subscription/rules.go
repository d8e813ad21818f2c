package subscription

import (
	"math"
	"time"
)

// MonthlyEquivalent converts a subscription's cost to a per-month rate based
// on its billing cycle. Fractional cents are kept; rounding is up to callers.
func MonthlyEquivalent(sub Subscription) float64 {
	cost := float64(sub.Cost)
	switch sub.Cycle {
	case CycleWeekly:
		return cost * 52.0 / 12.0
	case CycleQuarterly:
		return cost / 3
	case CycleSemiannual:
		return cost / 6
	case CycleYearly:
		return cost / 12
	default:
		return cost
	}
}

// TotalMonthly sums the monthly-equivalent cost of every subscription whose
// status is exactly "active".
func TotalMonthly(subs []Subscription) float64 {
	var total float64
	for _, sub := range subs {
		if sub.Status == StatusActive {
			total += MonthlyEquivalent(sub)
		}
	}
	return total
}

func TotalYearly(subs []Subscription) float64 {
	return TotalMonthly(subs) * 12
}

// TrialDaysLeft returns the number of whole local calendar days from today to
// the trial end date. Negative means the trial already ended. It returns nil
// when the subscription is not a trial or the end date is missing or
// unparseable.
func TrialDaysLeft(sub Subscription) *int {
	return trialDaysLeftAt(sub, time.Now())
}

func trialDaysLeftAt(sub Subscription, now time.Time) *int {
	if !sub.IsTrial || sub.TrialEndDate == nil || *sub.TrialEndDate == "" {
		return nil
	}
	end, err := time.Parse(time.RFC3339, *sub.TrialEndDate)
	if err != nil {
		return nil
	}
	days := calendarDaysBetween(now.Local(), end.Local())
	return &days
}

// calendarDaysBetween counts calendar days from a to b, comparing local
// midnights rather than elapsed hours. Rounding absorbs DST shifts.
func calendarDaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// IsTrialEndingSoon reports whether a trial ends within the next three days.
func IsTrialEndingSoon(sub Subscription) bool {
	days := TrialDaysLeft(sub)
	return days != nil && *days >= 0 && *days <= 3
}

// Summary aggregates the dashboard numbers over a set of subscriptions.
type Summary struct {
	TotalMonthly     float64 `json:"totalMonthly"`
	TotalYearly      float64 `json:"totalYearly"`
	ActiveCount      int     `json:"activeCount"`
	TrialsEndingSoon int     `json:"trialsEndingSoon"`
}

func Summarize(subs []Subscription) Summary {
	summary := Summary{
		TotalMonthly: TotalMonthly(subs),
		TotalYearly:  TotalYearly(subs),
	}
	for _, sub := range subs {
		if sub.Status == StatusActive {
			summary.ActiveCount++
		}
		if IsTrialEndingSoon(sub) {
			summary.TrialsEndingSoon++
		}
	}
	return summary
}
