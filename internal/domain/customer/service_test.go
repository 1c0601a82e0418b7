package customer_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/repository"
	"github.com/jqzhang/crmsheet/internal/repository/mocks"
)

var testTime = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo *mocks.CustomerRepository) *customer.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return customer.NewService(repo, time.UTC, logger,
		customer.WithClock(func() time.Time { return testTime }))
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CustomerRepository{}
	repo.On("Append", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo)
	c, err := svc.Create(ctx, customer.CreateRequest{
		CompanyName: "  Acme Corp  ",
		Salesperson: "alice",
		Channel:     "referral",
	})
	require.NoError(t, err)
	require.Len(t, c.ID, 8)
	require.Equal(t, "Acme Corp", c.CompanyName)
	require.Equal(t, customer.Status(customer.StageTouchBase), c.Status)
	require.Equal(t, "2026-03-15 10:00:00", c.StageTime(customer.StageTouchBase))
	repo.AssertExpectations(t)
}

func TestCustomerService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CustomerRepository{}
	svc := newTestService(repo)

	_, err := svc.Create(ctx, customer.CreateRequest{Salesperson: "alice", Channel: "referral"})
	require.ErrorIs(t, err, customer.ErrMissingCompanyName)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestCustomerService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "MISSING1").Return((*customer.Customer)(nil), repository.ErrNotFound)

	svc := newTestService(repo)
	_, err := svc.Get(ctx, "MISSING1")
	require.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestCustomerService_Advance(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.Status(customer.StageTouchBase)}
	c.SetStageTime(customer.StageTouchBase, "2026-03-01 09:00:00")

	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo)
	got, err := svc.Advance(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, customer.Status(customer.StageQualify), got.Status)
	require.Equal(t, "2026-03-15 10:00:00", got.StageTime(customer.StageQualify))
	repo.AssertExpectations(t)
}

func TestCustomerService_AdvanceKeepsExistingTimestamp(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.Status(customer.StageTouchBase)}
	c.SetStageTime(customer.StageQualify, "2026-02-01 09:00:00")

	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo)
	got, err := svc.Advance(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, "2026-02-01 09:00:00", got.StageTime(customer.StageQualify))
}

func TestCustomerService_AdvanceTerminal(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.Status(customer.StageFulfill)}
	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)

	svc := newTestService(repo)
	_, err := svc.Advance(ctx, "AB12CD34")
	require.ErrorIs(t, err, customer.ErrNoNextStage)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCustomerService_SleepAndWake(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.Status(customer.StagePropose)}
	c.SetStageTime(customer.StageTouchBase, "2026-01-01 09:00:00")
	c.SetStageTime(customer.StageQualify, "2026-01-10 09:00:00")
	c.SetStageTime(customer.StagePropose, "2026-02-01 09:00:00")

	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo)

	slept, err := svc.Sleep(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, customer.StatusSleeping, slept.Status)
	require.Equal(t, "2026-02-01 09:00:00", slept.StageTime(customer.StagePropose))

	woken, err := svc.Wake(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, customer.Status(customer.StagePropose), woken.Status)
}

func TestCustomerService_SleepAlreadySleeping(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.StatusSleeping}
	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)

	svc := newTestService(repo)
	_, err := svc.Sleep(ctx, "AB12CD34")
	require.ErrorIs(t, err, customer.ErrAlreadySleeping)
}

func TestCustomerService_WakeNotSleeping(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.Status(customer.StageQualify)}
	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)

	svc := newTestService(repo)
	_, err := svc.Wake(ctx, "AB12CD34")
	require.ErrorIs(t, err, customer.ErrNotSleeping)
}

func TestCustomerService_WakeWithoutTimestampsBackfills(t *testing.T) {
	ctx := context.Background()

	c := &customer.Customer{ID: "AB12CD34", Status: customer.StatusSleeping}
	repo := &mocks.CustomerRepository{}
	repo.On("Get", ctx, "AB12CD34").Return(c, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newTestService(repo)
	woken, err := svc.Wake(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, customer.Status(customer.StageTouchBase), woken.Status)
	require.Equal(t, "2026-03-15 10:00:00", woken.StageTime(customer.StageTouchBase))
}

func TestCustomerService_ListFilters(t *testing.T) {
	ctx := context.Background()

	all := []customer.Customer{
		{ID: "AAAA1111", CompanyName: "Acme Corp", Status: customer.Status(customer.StageQualify), Salesperson: "alice", Channel: "referral"},
		{ID: "BBBB2222", CompanyName: "Beta LLC", Status: customer.StatusSleeping, Salesperson: "bob", Channel: "web"},
		{ID: "CCCC3333", CompanyName: "Gamma Inc", Status: customer.Status(customer.StageFulfill), Salesperson: "alice", Channel: "web"},
	}

	repo := &mocks.CustomerRepository{}
	repo.On("List", ctx).Return(all, nil)
	svc := newTestService(repo)

	// Default: sleeping hidden.
	got, err := svc.List(ctx, customer.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Explicit statuses include sleeping.
	got, err = svc.List(ctx, customer.ListOptions{Statuses: []customer.Status{customer.StatusSleeping}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "BBBB2222", got[0].ID)

	// OnlyOpen hides the fulfilled customer.
	got, err = svc.List(ctx, customer.ListOptions{OnlyOpen: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "AAAA1111", got[0].ID)

	// Keyword matches company name, case-insensitive.
	got, err = svc.List(ctx, customer.ListOptions{Keyword: "acme"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Keyword matches the customer id too.
	got, err = svc.List(ctx, customer.ListOptions{Keyword: "cccc"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	// Salesperson and channel intersect.
	got, err = svc.List(ctx, customer.ListOptions{Salespeople: []string{"alice"}, Channels: []string{"web"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "CCCC3333", got[0].ID)
}

func TestCustomerService_FilterOptions(t *testing.T) {
	ctx := context.Background()

	all := []customer.Customer{
		{ID: "AAAA1111", Channel: "web", Salesperson: "bob"},
		{ID: "BBBB2222", Channel: "referral", Salesperson: "alice"},
		{ID: "CCCC3333", Channel: "web", Salesperson: ""},
	}

	repo := &mocks.CustomerRepository{}
	repo.On("List", ctx).Return(all, nil)
	svc := newTestService(repo)

	channels, err := svc.ListChannels(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"referral", "web"}, channels)

	salespeople, err := svc.ListSalespeople(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, salespeople)
}
