package sheetstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
	"github.com/jqzhang/crmsheet/internal/repository"
	"github.com/jqzhang/crmsheet/internal/sheets"
)

// NoteRepository implements repository.NoteRepository over the six per-stage
// note sheets. Sheets are materialized lazily: a stage's sheet is created the
// first time a gated note operation targets it, so stages a customer never
// reached cost no remote reads.
type NoteRepository struct {
	client *sheets.Client
	loc    *time.Location
}

// NewNoteRepository creates a repository over the per-stage note sheets.
func NewNoteRepository(client *sheets.Client, loc *time.Location) *NoteRepository {
	return &NoteRepository{client: client, loc: loc}
}

// ListByCustomer returns a customer's notes for one stage, in sheet order.
func (r *NoteRepository) ListByCustomer(ctx context.Context, stage customer.Stage, customerID string) ([]note.Note, error) {
	sheet, err := r.ensure(ctx, stage)
	if err != nil {
		return nil, err
	}

	rows, err := r.client.ReadAll(ctx, sheet)
	if err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	var out []note.Note
	for _, row := range rows[1:] {
		n := decodeNote(header, row)
		if n.ID == "" || n.CustomerID != customerID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Append adds a note row to the stage's sheet.
func (r *NoteRepository) Append(ctx context.Context, stage customer.Stage, n *note.Note) error {
	sheet, err := r.ensure(ctx, stage)
	if err != nil {
		return err
	}
	if err := r.client.AppendRow(ctx, sheet, encodeNote(n)); err != nil {
		return fmt.Errorf("appending note row: %w", err)
	}
	return nil
}

// SetDone locates the note by id across the materialized note sheets and
// overwrites its single done cell. Unmaterialized sheets are skipped, not
// created.
func (r *NoteRepository) SetDone(ctx context.Context, noteID string, done bool) error {
	if noteID == "" {
		return repository.ErrInvalidInput
	}

	existing, err := r.existingNoteSheets(ctx)
	if err != nil {
		return err
	}

	for _, sheet := range existing {
		rows, err := r.client.ReadAll(ctx, sheet)
		if err != nil {
			return fmt.Errorf("reading notes: %w", err)
		}
		if len(rows) < 2 {
			continue
		}

		header := rows[0]
		idCol := columnIndex(header, colNoteID, 0)
		doneCol := columnIndex(header, colNoteDone, len(NoteColumns)-1)
		for i, row := range rows[1:] {
			if idCol >= len(row) || row[idCol] != noteID {
				continue
			}

			value := ""
			if done {
				value = note.DoneMarker
			}
			addr := fmt.Sprintf("%s%d", sheets.ColumnLetter(doneCol+1), i+2)
			if err := r.client.UpdateRange(ctx, sheet, addr, [][]string{{value}}); err != nil {
				return fmt.Errorf("updating done cell: %w", err)
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

// LatestCreatedByCustomer scans every materialized note sheet in one batch
// read and reports the newest note creation time per customer.
func (r *NoteRepository) LatestCreatedByCustomer(ctx context.Context) (map[string]time.Time, error) {
	existing, err := r.existingNoteSheets(ctx)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]time.Time)
	if len(existing) == 0 {
		return latest, nil
	}

	tables, err := r.client.BatchRead(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("batch reading notes: %w", err)
	}

	for _, rows := range tables {
		if len(rows) < 2 {
			continue
		}
		header := rows[0]
		cidCol := columnIndex(header, colCustomerID, 1)
		createdCol := columnIndex(header, colNoteCreated, 3)
		for _, row := range rows[1:] {
			if cidCol >= len(row) || row[cidCol] == "" {
				continue
			}
			if createdCol >= len(row) {
				continue
			}
			t, ok := customer.ParseTime(row[createdCol], r.loc)
			if !ok {
				continue
			}
			cid := row[cidCol]
			if prev, seen := latest[cid]; !seen || t.After(prev) {
				latest[cid] = t
			}
		}
	}
	return latest, nil
}

func (r *NoteRepository) ensure(ctx context.Context, stage customer.Stage) (string, error) {
	sheet := NoteSheetName(stage)
	if err := r.client.EnsureTable(ctx, sheet, NoteColumns); err != nil {
		return "", fmt.Errorf("ensuring note sheet %q: %w", sheet, err)
	}
	return sheet, nil
}

func (r *NoteRepository) existingNoteSheets(ctx context.Context) ([]string, error) {
	titles, err := r.client.SheetTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}

	byTitle := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		byTitle[t] = struct{}{}
	}

	var out []string
	for _, stage := range customer.Stages {
		sheet := NoteSheetName(stage)
		if _, ok := byTitle[sheet]; ok {
			out = append(out, sheet)
		}
	}
	return out, nil
}

func columnIndex(header []string, name string, fallback int) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return fallback
}
