package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
	"github.com/jqzhang/crmsheet/internal/sheets"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain and store errors to HTTP statuses. Validation
// and transition problems come back as user-facing messages; retry
// exhaustion against the backing store asks the user to try again later.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound,
			"customer not found or data changed; return to the customer list and retry")
	case errors.Is(err, note.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, customer.ErrMissingCompanyName),
		errors.Is(err, customer.ErrMissingSalesperson),
		errors.Is(err, customer.ErrMissingChannel),
		errors.Is(err, customer.ErrInvalidContact),
		errors.Is(err, note.ErrEmptyContent),
		errors.Is(err, note.ErrUnknownStage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, customer.ErrNoNextStage),
		errors.Is(err, customer.ErrAlreadySleeping),
		errors.Is(err, customer.ErrNotSleeping),
		errors.Is(err, note.ErrStageNotReached):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sheets.ErrRateLimited):
		writeError(w, http.StatusServiceUnavailable,
			"the data store is rate limited right now; try again in a moment")
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
