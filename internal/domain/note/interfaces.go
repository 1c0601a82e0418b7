package note

import (
	"context"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
)

// Repository manages per-stage note persistence. Implementations materialize
// a stage's note sheet lazily on first use.
type Repository interface {
	ListByCustomer(ctx context.Context, stage customer.Stage, customerID string) ([]Note, error)
	Append(ctx context.Context, stage customer.Stage, n *Note) error
	SetDone(ctx context.Context, noteID string, done bool) error
}

// CustomerSource looks up the customer a note operation targets.
type CustomerSource interface {
	Get(ctx context.Context, id string) (*customer.Customer, error)
}
