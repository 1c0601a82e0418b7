package sheetstore

import (
	"context"
	"fmt"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/repository"
	"github.com/jqzhang/crmsheet/internal/sheets"
)

// CustomerRepository implements repository.CustomerRepository over the main
// customer sheet.
type CustomerRepository struct {
	client *sheets.Client
	sheet  string
}

// NewCustomerRepository creates a repository over the named main sheet.
func NewCustomerRepository(client *sheets.Client, sheet string) *CustomerRepository {
	return &CustomerRepository{client: client, sheet: sheet}
}

// Ensure guarantees the main sheet exists with the expected header. Called
// once at startup.
func (r *CustomerRepository) Ensure(ctx context.Context) error {
	return r.client.EnsureTable(ctx, r.sheet, CustomerColumns)
}

// List returns every customer row that carries an id, in sheet order.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.client.ReadAll(ctx, r.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading customers: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	out := make([]customer.Customer, 0, len(rows)-1)
	for _, row := range rows[1:] {
		c := decodeCustomer(header, row)
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns the customer with the given id.
func (r *CustomerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, _, err := r.find(ctx, id)
	return c, err
}

// Append adds a new customer row after the existing ones.
func (r *CustomerRepository) Append(ctx context.Context, c *customer.Customer) error {
	if err := r.client.AppendRow(ctx, r.sheet, encodeCustomer(c)); err != nil {
		return fmt.Errorf("appending customer row: %w", err)
	}
	return nil
}

// Update locates the customer's row by id and rewrites it whole. No version
// check happens first: two concurrent editors of the same customer silently
// clobber each other, an accepted limitation of the backing store model.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	_, rowNum, err := r.find(ctx, c.ID)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("A%d:%s%d", rowNum, sheets.ColumnLetter(len(CustomerColumns)), rowNum)
	if err := r.client.UpdateRange(ctx, r.sheet, addr, [][]string{encodeCustomer(c)}); err != nil {
		return fmt.Errorf("updating customer row: %w", err)
	}
	return nil
}

// find returns the customer and its 1-based sheet row number.
func (r *CustomerRepository) find(ctx context.Context, id string) (*customer.Customer, int, error) {
	if id == "" {
		return nil, 0, repository.ErrInvalidInput
	}

	rows, err := r.client.ReadAll(ctx, r.sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("reading customers: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, repository.ErrNotFound
	}

	header := rows[0]
	for i, row := range rows[1:] {
		c := decodeCustomer(header, row)
		if c.ID == id {
			return &c, i + 2, nil
		}
	}
	return nil, 0, repository.ErrNotFound
}
