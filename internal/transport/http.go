package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jqzhang/crmsheet/internal/domain/activity"
	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
)

// Services bundles the domain services the transport exposes.
type Services struct {
	Customers *customer.Service
	Notes     *note.Service
	Activity  *activity.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the HTTP router for the presentation boundary.
func NewRouter(svc Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	srv := &Server{svc: svc, logger: logger}

	r.Get("/health", srv.handleHealth)
	r.Get("/nav", srv.handleNav)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", srv.handleListCustomers)
		r.Post("/", srv.handleCreateCustomer)
		r.Get("/filters", srv.handleFilterOptions)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", srv.handleGetCustomer)
			r.Post("/advance", srv.handleAdvance)
			r.Post("/sleep", srv.handleSleep)
			r.Post("/wake", srv.handleWake)
			r.Get("/notes", srv.handleListNotes)
			r.Post("/notes", srv.handleAddNote)
		})
	})

	r.Post("/notes/{noteID}/done", srv.handleToggleNote)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleNav resolves a deep link into a navigation context, verifying the
// referenced customer still exists.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	nav := ParseNavigation(r.URL.Query())
	if nav.CustomerID != "" {
		if _, err := s.svc.Customers.Get(r.Context(), nav.CustomerID); err != nil {
			s.writeDomainError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, nav)
}

// customerView is a customer with its derived display fields.
type customerView struct {
	activity.CustomerActivity
	AllowedNextSteps []customer.Stage `json:"allowed_next_steps"`
	Completed        bool             `json:"completed"`
}

func newCustomerView(ca activity.CustomerActivity) customerView {
	next := customer.AllowedNextSteps(ca.Customer.Status)
	if next == nil {
		next = []customer.Stage{}
	}
	return customerView{
		CustomerActivity: ca,
		AllowedNextSteps: next,
		Completed:        ca.Customer.Completed(),
	}
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := customer.ListOptions{
		Keyword:     q.Get("kw"),
		Salespeople: q["salesperson"],
		Channels:    q["channel"],
	}
	for _, status := range q["status"] {
		opts.Statuses = append(opts.Statuses, customer.Status(status))
	}
	if openOnly, err := strconv.ParseBool(q.Get("open_only")); err == nil {
		opts.OnlyOpen = openOnly
	}

	customers, err := s.svc.Customers.List(r.Context(), opts)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	enriched, err := s.svc.Activity.Enrich(r.Context(), customers)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	views := make([]customerView, len(enriched))
	for i, ca := range enriched {
		views[i] = newCustomerView(ca)
	}
	writeJSON(w, http.StatusOK, map[string]any{"customers": views})
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	channels, err := s.svc.Customers.ListChannels(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	salespeople, err := s.svc.Customers.ListSalespeople(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"channels":    channels,
		"salespeople": salespeople,
	})
}

type createCustomerRequest struct {
	CompanyName       string `json:"company_name"`
	Address           string `json:"address"`
	Contact           string `json:"contact"`
	Email             string `json:"email"`
	Business          string `json:"business"`
	PreferredLocation string `json:"preferred_location"`
	Channel           string `json:"channel"`
	Requirements      string `json:"requirements"`
	SalesNotes        string `json:"sales_notes"`
	Salesperson       string `json:"salesperson"`
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := s.svc.Customers.Create(r.Context(), customer.CreateRequest{
		CompanyName:       req.CompanyName,
		Address:           req.Address,
		Contact:           req.Contact,
		Email:             req.Email,
		Business:          req.Business,
		PreferredLocation: req.PreferredLocation,
		Channel:           req.Channel,
		Requirements:      req.Requirements,
		SalesNotes:        req.SalesNotes,
		Salesperson:       req.Salesperson,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"customer_id": c.ID,
		"customer":    c,
	})
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Customers.Get(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	enriched, err := s.svc.Activity.EnrichOne(r.Context(), *c)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCustomerView(enriched))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.writeTransition(w, r, s.svc.Customers.Advance)
}

func (s *Server) handleSleep(w http.ResponseWriter, r *http.Request) {
	s.writeTransition(w, r, s.svc.Customers.Sleep)
}

func (s *Server) handleWake(w http.ResponseWriter, r *http.Request) {
	s.writeTransition(w, r, s.svc.Customers.Wake)
}

func (s *Server) writeTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id string) (*customer.Customer, error),
) {
	c, err := op(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	next := customer.AllowedNextSteps(c.Status)
	if next == nil {
		next = []customer.Stage{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customer":           c,
		"allowed_next_steps": next,
	})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	stage := customer.Stage(r.URL.Query().Get("stage"))
	notes, err := s.svc.Notes.List(r.Context(), chi.URLParam(r, "customerID"), stage)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	done := 0
	for _, n := range notes {
		if n.Done {
			done++
		}
	}
	if notes == nil {
		notes = []note.Note{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stage":      stage,
		"notes":      notes,
		"todo_count": len(notes) - done,
		"done_count": done,
	})
}

type addNoteRequest struct {
	Stage   string `json:"stage"`
	Content string `json:"content"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req addNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := s.svc.Notes.Add(r.Context(), chi.URLParam(r, "customerID"), customer.Stage(req.Stage), req.Content)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

type toggleNoteRequest struct {
	Done bool `json:"done"`
}

func (s *Server) handleToggleNote(w http.ResponseWriter, r *http.Request) {
	var req toggleNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.svc.Notes.SetDone(r.Context(), chi.URLParam(r, "noteID"), req.Done); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
