package customer

import "context"

// Repository manages customer persistence in the backing sheet.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	Append(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
}
