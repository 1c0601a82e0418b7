package note

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/repoerr"
)

// Service handles follow-up note business logic. The stage-reached gate
// lives here: stages the customer never entered are rejected before any
// remote read or write, which also keeps their sheets unmaterialized.
type Service struct {
	notes     Repository
	customers CustomerSource
	loc       *time.Location
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new note service.
func NewService(notes Repository, customers CustomerSource, loc *time.Location, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		notes:     notes,
		customers: customers,
		loc:       loc,
		logger:    logger,
	}
	s.now = func() time.Time { return time.Now().In(loc) }
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add quick-adds a note for a stage the customer has reached. New notes
// always start not-done.
func (s *Service) Add(ctx context.Context, customerID string, stage customer.Stage, content string) (*Note, error) {
	if customer.StageIndex(stage) < 0 {
		return nil, ErrUnknownStage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !stageReached(c, stage, s.loc) {
		return nil, ErrStageNotReached
	}

	n := &Note{
		ID:         newID(),
		CustomerID: c.ID,
		Content:    content,
		CreatedAt:  customer.FormatTime(s.now()),
	}
	if err := s.notes.Append(ctx, stage, n); err != nil {
		return nil, fmt.Errorf("appending note: %w", err)
	}

	s.logger.Info("note added", "id", n.ID, "customer", c.ID, "stage", stage)
	return n, nil
}

// List returns a customer's notes for one stage, newest first. Stages the
// customer has not reached are rejected without touching the remote store.
func (s *Service) List(ctx context.Context, customerID string, stage customer.Stage) ([]Note, error) {
	if customer.StageIndex(stage) < 0 {
		return nil, ErrUnknownStage
	}

	c, err := s.getCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !stageReached(c, stage, s.loc) {
		return nil, ErrStageNotReached
	}

	notes, err := s.notes.ListByCustomer(ctx, stage, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		ti, iok := customer.ParseTime(notes[i].CreatedAt, s.loc)
		tj, jok := customer.ParseTime(notes[j].CreatedAt, s.loc)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return notes, nil
}

// SetDone toggles a note's done flag, the only mutation notes support.
func (s *Service) SetDone(ctx context.Context, noteID string, done bool) error {
	if err := s.notes.SetDone(ctx, noteID, done); err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("setting note done flag: %w", err)
	}
	s.logger.Info("note done flag set", "id", noteID, "done", done)
	return nil
}

func (s *Service) getCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("getting customer: %w", err)
	}
	return c, nil
}

func stageReached(c *customer.Customer, stage customer.Stage, loc *time.Location) bool {
	for _, reached := range customer.ReachedStages(c, loc) {
		if reached == stage {
			return true
		}
	}
	return false
}

func newID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:4]))
}
