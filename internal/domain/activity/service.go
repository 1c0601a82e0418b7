package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
)

// Service derives activity and staleness metrics for customers.
type Service struct {
	notes  NoteTimes
	loc    *time.Location
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new activity service.
func NewService(notes NoteTimes, loc *time.Location, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		notes:  notes,
		loc:    loc,
		logger: logger,
	}
	s.now = func() time.Time { return time.Now().In(loc) }
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enrich computes derived activity fields for each customer. Note times for
// all customers come from one batch read.
func (s *Service) Enrich(ctx context.Context, customers []customer.Customer) ([]CustomerActivity, error) {
	noteTimes, err := s.notes.LatestCreatedByCustomer(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading note times: %w", err)
	}

	out := make([]CustomerActivity, len(customers))
	for i, c := range customers {
		noteTime, hasNote := noteTimes[c.ID]
		out[i] = s.derive(c, noteTime, hasNote)
	}
	return out, nil
}

// EnrichOne computes derived activity fields for a single customer.
func (s *Service) EnrichOne(ctx context.Context, c customer.Customer) (CustomerActivity, error) {
	enriched, err := s.Enrich(ctx, []customer.Customer{c})
	if err != nil {
		return CustomerActivity{}, err
	}
	return enriched[0], nil
}

func (s *Service) derive(c customer.Customer, noteTime time.Time, hasNote bool) CustomerActivity {
	ca := CustomerActivity{Customer: c}

	if progress, ok := latestProgress(&c, s.loc); ok {
		ca.LatestProgress = &progress

		if c.Status != customer.StatusSleeping {
			days := calendarDays(progress, s.now(), s.loc)
			ca.DaysSinceProgress = &days
			ca.StalenessBand = band(days)
		}
	}

	latest := ca.LatestProgress
	if hasNote && (latest == nil || noteTime.After(*latest)) {
		ca.LatestActivity = &noteTime
	} else if latest != nil {
		t := *latest
		ca.LatestActivity = &t
	}

	return ca
}

func latestProgress(c *customer.Customer, loc *time.Location) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, stage := range customer.Stages {
		t, ok := customer.ParseTime(c.StageTime(stage), loc)
		if !ok {
			continue
		}
		if !found || t.After(latest) {
			latest = t
			found = true
		}
	}
	return latest, found
}

// calendarDays is the civil-date difference, not elapsed hours / 24: an
// advance at 23:59 is one day old a minute later.
func calendarDays(from, to time.Time, loc *time.Location) int {
	fy, fm, fd := from.In(loc).Date()
	ty, tm, td := to.In(loc).Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, loc)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	return int(end.Sub(start).Hours() / 24)
}

func band(days int) StalenessBand {
	switch {
	case days <= freshMaxDays:
		return BandFresh
	case days <= agingMaxDays:
		return BandAging
	default:
		return BandStale
	}
}
