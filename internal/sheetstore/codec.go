package sheetstore

import (
	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
)

// rowValues maps a raw sheet row to column name → cell text using the
// sheet's own header, then reifies every expected column that the header
// lacks as the empty string. This is the single migrate-on-read shim for
// sheets predating the current schema; decoding works off the result only.
func rowValues(header, row, expected []string) map[string]string {
	vals := make(map[string]string, len(expected))
	for i, col := range header {
		if i < len(row) {
			vals[col] = row[i]
		} else {
			vals[col] = ""
		}
	}
	for _, col := range expected {
		if _, ok := vals[col]; !ok {
			vals[col] = ""
		}
	}
	return vals
}

func decodeCustomer(header, row []string) customer.Customer {
	vals := rowValues(header, row, CustomerColumns)
	c := customer.Customer{
		ID:                vals[colCustomerID],
		CompanyName:       vals[colCompanyName],
		Address:           vals[colAddress],
		Contact:           vals[colContact],
		Email:             vals[colEmail],
		Business:          vals[colBusiness],
		PreferredLocation: vals[colPreferredLocation],
		Channel:           vals[colChannel],
		Requirements:      vals[colRequirements],
		SalesNotes:        vals[colSalesNotes],
		Status:            customer.Status(vals[colCurrentStatus]),
		Salesperson:       vals[colSalesperson],
	}
	for _, stage := range customer.Stages {
		c.SetStageTime(stage, vals[stageTimeColumn(stage)])
	}
	return c
}

func encodeCustomer(c *customer.Customer) []string {
	vals := map[string]string{
		colCustomerID:        c.ID,
		colCompanyName:       c.CompanyName,
		colAddress:           c.Address,
		colContact:           c.Contact,
		colEmail:             c.Email,
		colBusiness:          c.Business,
		colPreferredLocation: c.PreferredLocation,
		colChannel:           c.Channel,
		colRequirements:      c.Requirements,
		colSalesNotes:        c.SalesNotes,
		colCurrentStatus:     string(c.Status),
		colSalesperson:       c.Salesperson,
	}
	for _, stage := range customer.Stages {
		vals[stageTimeColumn(stage)] = c.StageTime(stage)
	}

	row := make([]string, len(CustomerColumns))
	for i, col := range CustomerColumns {
		row[i] = vals[col]
	}
	return row
}

func decodeNote(header, row []string) note.Note {
	vals := rowValues(header, row, NoteColumns)
	return note.Note{
		ID:         vals[colNoteID],
		CustomerID: vals[colCustomerID],
		Content:    vals[colNoteContent],
		CreatedAt:  vals[colNoteCreated],
		Done:       vals[colNoteDone] == note.DoneMarker,
	}
}

func encodeNote(n *note.Note) []string {
	done := ""
	if n.Done {
		done = note.DoneMarker
	}
	return []string{n.ID, n.CustomerID, n.Content, n.CreatedAt, done}
}
