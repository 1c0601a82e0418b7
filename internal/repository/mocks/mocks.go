package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
)

// CustomerRepository is a mock for repository.CustomerRepository.
type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]customer.Customer); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CustomerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CustomerRepository) Append(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// NoteRepository is a mock for repository.NoteRepository.
type NoteRepository struct {
	mock.Mock
}

func (m *NoteRepository) ListByCustomer(ctx context.Context, stage customer.Stage, customerID string) ([]note.Note, error) {
	args := m.Called(ctx, stage, customerID)
	if list, ok := args.Get(0).([]note.Note); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NoteRepository) Append(ctx context.Context, stage customer.Stage, n *note.Note) error {
	args := m.Called(ctx, stage, n)
	return args.Error(0)
}

func (m *NoteRepository) SetDone(ctx context.Context, noteID string, done bool) error {
	args := m.Called(ctx, noteID, done)
	return args.Error(0)
}

func (m *NoteRepository) LatestCreatedByCustomer(ctx context.Context) (map[string]time.Time, error) {
	args := m.Called(ctx)
	if times, ok := args.Get(0).(map[string]time.Time); ok {
		return times, args.Error(1)
	}
	return nil, args.Error(1)
}
