package activity

import (
	"context"
	"time"
)

// NoteTimes reports the most recent note creation time per customer, across
// every materialized note sheet.
type NoteTimes interface {
	LatestCreatedByCustomer(ctx context.Context) (map[string]time.Time, error)
}
