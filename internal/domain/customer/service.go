package customer

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

	"github.com/jqzhang/crmsheet/internal/repoerr"
)

// Service handles customer lifecycle business logic.
type Service struct {
	repo   Repository
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

// NewService creates a new customer service. loc is the fixed civil timezone
// every timestamp is recorded and interpreted in.
func NewService(repo Repository, loc *time.Location, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		loc:    loc,
		logger: logger,
	}
	s.now = func() time.Time { return time.Now().In(loc) }
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateRequest describes a customer creation request.
type CreateRequest struct {
	CompanyName       string
	Address           string
	Contact           string
	Email             string
	Business          string
	PreferredLocation string
	Channel           string
	Requirements      string
	SalesNotes        string
	Salesperson       string
}

// Create validates the request, then appends a new customer in the first
// pipeline stage with the first stage's timestamp set to now.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Customer, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	c := &Customer{
		ID:                newID(),
		CompanyName:       strings.TrimSpace(req.CompanyName),
		Address:           strings.TrimSpace(req.Address),
		Contact:           strings.TrimSpace(req.Contact),
		Email:             strings.TrimSpace(req.Email),
		Business:          strings.TrimSpace(req.Business),
		PreferredLocation: strings.TrimSpace(req.PreferredLocation),
		Channel:           strings.TrimSpace(req.Channel),
		Requirements:      strings.TrimSpace(req.Requirements),
		SalesNotes:        strings.TrimSpace(req.SalesNotes),
		Status:            Status(Stages[0]),
		Salesperson:       strings.TrimSpace(req.Salesperson),
	}
	c.SetStageTime(Stages[0], FormatTime(s.now()))

	if err := s.repo.Append(ctx, c); err != nil {
		return nil, fmt.Errorf("appending customer: %w", err)
	}

	s.logger.Info("customer created", "id", c.ID, "company", c.CompanyName)
	return c, nil
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("getting customer: %w", err)
	}
	return c, nil
}

// List returns customers matching opts. Filtering runs in memory over the
// cached sheet read.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Customer, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	keyword := strings.ToLower(strings.TrimSpace(opts.Keyword))
	out := make([]Customer, 0, len(all))
	for _, c := range all {
		if keyword != "" && !matchesKeyword(&c, keyword) {
			continue
		}
		if len(opts.Statuses) > 0 {
			if !containsStatus(opts.Statuses, c.Status) {
				continue
			}
		} else if c.Status == StatusSleeping {
			continue
		}
		if opts.OnlyOpen && c.Completed() {
			continue
		}
		if len(opts.Salespeople) > 0 && !containsString(opts.Salespeople, c.Salesperson) {
			continue
		}
		if len(opts.Channels) > 0 && !containsString(opts.Channels, c.Channel) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// ListChannels returns the distinct non-empty channels in use, sorted.
func (s *Service) ListChannels(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return distinct(all, func(c Customer) string { return c.Channel }), nil
}

// ListSalespeople returns the distinct non-empty salespeople in use, sorted.
func (s *Service) ListSalespeople(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return distinct(all, func(c Customer) string { return c.Salesperson }), nil
}

// Advance moves a customer to the immediately-next stage and records that
// stage's timestamp if it was never set. Advancing from the terminal stage
// or while sleeping has no available step and is rejected.
func (s *Service) Advance(ctx context.Context, id string) (*Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := AllowedNextSteps(c.Status)
	if len(next) == 0 {
		return nil, ErrNoNextStage
	}
	to := next[0]

	c.Status = Status(to)
	if c.StageTime(to) == "" {
		c.SetStageTime(to, FormatTime(s.now()))
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	s.logger.Info("customer advanced", "id", c.ID, "stage", to)
	return c, nil
}

// Sleep moves a customer into the sleeping bypass. Timestamps are untouched.
func (s *Service) Sleep(ctx context.Context, id string) (*Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusSleeping {
		return nil, ErrAlreadySleeping
	}

	c.Status = StatusSleeping
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	s.logger.Info("customer set to sleeping", "id", c.ID)
	return c, nil
}

// Wake returns a sleeping customer to the latest stage it reached, judged by
// timestamp recency. A customer with no stage timestamp at all goes back to
// the first stage with that stage's timestamp backfilled to now.
func (s *Service) Wake(ctx context.Context, id string) (*Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != StatusSleeping {
		return nil, ErrNotSleeping
	}

	latest, ok := LatestReachedStage(c, s.loc)
	if !ok {
		latest = Stages[0]
		c.SetStageTime(latest, FormatTime(s.now()))
	}
	c.Status = Status(latest)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	s.logger.Info("customer woken", "id", c.ID, "stage", latest)
	return c, nil
}

func matchesKeyword(c *Customer, keyword string) bool {
	return strings.Contains(strings.ToLower(c.CompanyName), keyword) ||
		strings.Contains(strings.ToLower(c.ID), keyword) ||
		strings.Contains(strings.ToLower(c.Contact), keyword)
}

func containsStatus(list []Status, v Status) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func distinct(customers []Customer, field func(Customer) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range customers {
		v := strings.TrimSpace(field(c))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// newID returns an 8-char uppercase hex token, the id format stored in the
// sheet.
func newID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:4]))
}
