package activity

import (
	"time"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
)

// StalenessBand is the visual urgency band for days since last progress.
type StalenessBand string

const (
	BandFresh StalenessBand = "green"
	BandAging StalenessBand = "amber"
	BandStale StalenessBand = "red"
)

// Band thresholds, in calendar days since the last stage advance.
const (
	freshMaxDays = 6
	agingMaxDays = 15
)

// CustomerActivity pairs a customer with its derived activity metrics.
type CustomerActivity struct {
	Customer customer.Customer `json:"customer"`
	// LatestActivity is the most recent of the customer's stage timestamps
	// and note creation times. Nil when neither exists.
	LatestActivity *time.Time `json:"latest_activity,omitempty"`
	// LatestProgress is the most recent stage timestamp. Notes don't count
	// as progress. Nil when no stage timestamp is set.
	LatestProgress *time.Time `json:"latest_progress,omitempty"`
	// DaysSinceProgress is the calendar-day distance from now to
	// LatestProgress. Always nil while the customer is sleeping.
	DaysSinceProgress *int `json:"days_since_progress,omitempty"`
	// StalenessBand is derived from DaysSinceProgress; empty when that is nil.
	StalenessBand StalenessBand `json:"staleness_band,omitempty"`
}
