package repository

import (
	"context"
	"time"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
)

// CustomerRepository manages customer rows in the main sheet.
type CustomerRepository interface {
	List(ctx context.Context) ([]customer.Customer, error)
	Get(ctx context.Context, id string) (*customer.Customer, error)
	Append(ctx context.Context, c *customer.Customer) error
	// Update rewrites the customer's row in place. There is no version
	// check: concurrent editors of the same row are last-write-wins.
	Update(ctx context.Context, c *customer.Customer) error
}

// NoteRepository manages note rows across the six per-stage sheets.
type NoteRepository interface {
	ListByCustomer(ctx context.Context, stage customer.Stage, customerID string) ([]note.Note, error)
	Append(ctx context.Context, stage customer.Stage, n *note.Note) error
	// SetDone updates a single done cell, located by the note's row
	// position within its sheet. Only already-materialized sheets are
	// searched.
	SetDone(ctx context.Context, noteID string, done bool) error
	// LatestCreatedByCustomer reports the newest note creation time per
	// customer across every materialized note sheet, in one batch read.
	LatestCreatedByCustomer(ctx context.Context) (map[string]time.Time, error)
}
