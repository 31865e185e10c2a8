package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListBudgets handles GET /api/budgets.
func (s *Server) ListBudgets(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	budgets, err := st.Budgets.List(r.Context())
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

// GetBudget handles GET /api/budgets/{id}.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	st := stateFrom(r)
	b, err := st.Budgets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CreateBudget handles POST /api/budgets.
func (s *Server) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var b domain.Budget
	if err := decodeBody(r, &b); err != nil {
		writeBodyError(w, err)
		return
	}
	b.ID = ""
	s.saveBudget(w, r, b, http.StatusCreated, "Budget created successfully!")
}

// UpdateBudget handles PUT /api/budgets/{id}.
func (s *Server) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var b domain.Budget
	if err := decodeBody(r, &b); err != nil {
		writeBodyError(w, err)
		return
	}
	b.ID = chi.URLParam(r, "id")
	s.saveBudget(w, r, b, http.StatusOK, "Budget updated successfully!")
}

func (s *Server) saveBudget(w http.ResponseWriter, r *http.Request, b domain.Budget, status int, msg string) {
	st := stateFrom(r)
	saved, err := st.Budgets.Save(r.Context(), b)
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	st.Notify(msg, domain.SeveritySuccess, 0)
	writeJSON(w, status, saved)
}

// DeleteBudget handles DELETE /api/budgets/{id}?confirmed=true.
func (s *Server) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	confirmed, ok := s.bindConfirmed(w, r)
	if !ok {
		return
	}
	st := stateFrom(r)
	if err := st.Budgets.Delete(r.Context(), chi.URLParam(r, "id"), confirmed); err != nil {
		s.fail(w, r, st, err)
		return
	}
	st.Notify("Budget deleted successfully!", domain.SeveritySuccess, 0)
	w.WriteHeader(http.StatusNoContent)
}

// GetConversion handles GET /api/currency/convert?amount=&base=&target=.
func (s *Server) GetConversion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		amount       float64
		base, target string
	)
	if err := runtime.BindQueryParameter("form", true, true, "amount", q, &amount); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("amount must be a number"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "base", q, &base); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid base currency"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "target", q, &target); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("invalid target currency"))
		return
	}
	if base == "" {
		base = "USD"
	}

	st := stateFrom(r)
	conv, err := st.Budgets.Convert(r.Context(), amount, base, target)
	if err != nil {
		s.fail(w, r, st, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}
