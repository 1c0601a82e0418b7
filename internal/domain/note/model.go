package note

// DoneMarker is the cell value marking a note done. Not-done is the empty
// string; the flag is binary despite being stored as text.
const DoneMarker = "YES"

// Note is one row of a stage's note sheet. Notes are append-only: content is
// never edited and notes are never deleted, only the done flag toggles.
type Note struct {
	ID         string `json:"note_id"`
	CustomerID string `json:"customer_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	Done       bool   `json:"done"`
}
