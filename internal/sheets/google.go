package sheets

import (
	"context"
	"fmt"

	gsheets "google.golang.org/api/sheets/v4"
)

// GoogleAPI implements API against the Google Sheets v4 service, scoped to a
// single spreadsheet.
type GoogleAPI struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewGoogleAPI creates a Google Sheets backed API for one spreadsheet.
func NewGoogleAPI(svc *gsheets.Service, spreadsheetID string) *GoogleAPI {
	return &GoogleAPI{svc: svc, spreadsheetID: spreadsheetID}
}

func (g *GoogleAPI) Values(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, quoteSheet(sheet)).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return toStringRows(resp.Values), nil
}

func (g *GoogleAPI) BatchValues(ctx context.Context, sheetNames []string) ([][][]string, error) {
	ranges := make([]string, len(sheetNames))
	for i, name := range sheetNames {
		ranges[i] = quoteSheet(name)
	}
	resp, err := g.svc.Spreadsheets.Values.BatchGet(g.spreadsheetID).
		Ranges(ranges...).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	out := make([][][]string, len(resp.ValueRanges))
	for i, vr := range resp.ValueRanges {
		if vr == nil {
			continue
		}
		out[i] = toStringRows(vr.Values)
	}
	return out, nil
}

func (g *GoogleAPI) Append(ctx context.Context, sheet string, row []string) error {
	body := &gsheets.ValueRange{Values: [][]interface{}{toInterfaceRow(row)}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, quoteSheet(sheet), body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *GoogleAPI) Update(ctx context.Context, sheet, addr string, values [][]string) error {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		rows[i] = toInterfaceRow(row)
	}
	body := &gsheets.ValueRange{Values: rows}
	rng := fmt.Sprintf("%s!%s", quoteSheet(sheet), addr)
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

func (g *GoogleAPI) SheetTitles(ctx context.Context) ([]string, error) {
	resp, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh != nil && sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (g *GoogleAPI) AddSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}

func quoteSheet(sheet string) string {
	return "'" + sheet + "'"
}

func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, raw := range values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			if cell != nil {
				row[j] = fmt.Sprint(cell)
			}
		}
		rows[i] = row
	}
	return rows
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
