package sheetstore

import "github.com/jqzhang/crmsheet/internal/domain/customer"

// Column names of the main customer sheet. The order is the source of truth
// for row encoding; EnsureTable overwrites a diverging header to match.
const (
	colCustomerID        = "customer_id"
	colCompanyName       = "Company Name"
	colAddress           = "Address"
	colContact           = "Contact"
	colEmail             = "Email"
	colBusiness          = "Business"
	colPreferredLocation = "Preferred Location"
	colChannel           = "Channel"
	colRequirements      = "Requirements"
	colSalesNotes        = "Sales Notes"
	colCurrentStatus     = "Current Status"
	colSalesperson       = "Salesperson"
)

// Column names of the per-stage note sheets.
const (
	colNoteID      = "note_id"
	colNoteContent = "Content"
	colNoteCreated = "Created_time"
	colNoteDone    = "Done"
)

// CustomerColumns is the authoritative main-sheet header: descriptive fields,
// current status, one "<Stage>_time" column per pipeline stage, salesperson.
var CustomerColumns = buildCustomerColumns()

// NoteColumns is the authoritative header of every per-stage note sheet.
var NoteColumns = []string{colNoteID, colCustomerID, colNoteContent, colNoteCreated, colNoteDone}

func buildCustomerColumns() []string {
	cols := []string{
		colCustomerID,
		colCompanyName,
		colAddress,
		colContact,
		colEmail,
		colBusiness,
		colPreferredLocation,
		colChannel,
		colRequirements,
		colSalesNotes,
		colCurrentStatus,
	}
	for _, stage := range customer.Stages {
		cols = append(cols, stageTimeColumn(stage))
	}
	return append(cols, colSalesperson)
}

func stageTimeColumn(stage customer.Stage) string {
	return string(stage) + "_time"
}

// NoteSheetName returns the worksheet holding a stage's notes.
func NoteSheetName(stage customer.Stage) string {
	return string(stage) + "_notes"
}
