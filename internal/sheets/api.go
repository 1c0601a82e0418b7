package sheets

import "context"

// API is the minimal surface of the spreadsheet values and metadata services
// the client needs. Ranges use A1 notation without the sheet prefix; the
// implementation scopes every call to one spreadsheet.
type API interface {
	// Values returns every populated row of a sheet, in order.
	Values(ctx context.Context, sheet string) ([][]string, error)
	// BatchValues returns the rows of several sheets in one round trip,
	// in the order requested.
	BatchValues(ctx context.Context, sheetNames []string) ([][][]string, error)
	// Append adds one row after the last populated row of a sheet.
	Append(ctx context.Context, sheet string, row []string) error
	// Update overwrites the cells addressed by addr (A1 notation within the
	// sheet, e.g. "A2:R2" or "E7") with values.
	Update(ctx context.Context, sheet, addr string, values [][]string) error
	// SheetTitles lists the worksheet titles present in the spreadsheet.
	SheetTitles(ctx context.Context) ([]string, error)
	// AddSheet creates a new worksheet.
	AddSheet(ctx context.Context, title string, rows, cols int64) error
}
