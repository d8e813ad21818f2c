package subscription

// Billing cycles understood by the cost normalization rules. Any other value
// is treated as monthly.
const (
	CycleWeekly     = "weekly"
	CycleMonthly    = "monthly"
	CycleQuarterly  = "quarterly"
	CycleSemiannual = "semiannual"
	CycleYearly     = "yearly"
)

// StatusActive is the only status the aggregation rules count. The column is
// free text; anything else ("paused", "cancelled") is simply not aggregated.
const StatusActive = "active"

// Subscription mirrors the database schema for the subscriptions table.
// Cost is in minor units (cents). Date fields carry RFC3339 instants; the
// repository converts them to timestamptz at the SQL boundary.
type Subscription struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Cost         int64   `json:"cost"`
	Cycle        string  `json:"cycle"`
	StartDate    string  `json:"startDate"`
	IsTrial      bool    `json:"isTrial"`
	TrialEndDate *string `json:"trialEndDate"`
	Status       string  `json:"status"`
	URL          *string `json:"url"`
}
