package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/log"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	p := parsePeriod(r, time.Now())
	view, cached := s.viewCache.Get(viewCacheKey(p))
	if !cached {
		view = buildDashboardView(s.ledger.Load(r.Context()), p)
		s.viewCache.Set(viewCacheKey(p), view)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, log.FieldPath, r.URL.Path)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	tx, err := parseTransactionForm(r.Form)
	if err == nil {
		_, err = s.ledger.Add(r.Context(), tx)
	}
	switch {
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrNegativeAmount),
		errors.Is(err, core.ErrEmptyCategory):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Transaction save failed", "error", err,
			log.FieldKind, string(tx.Kind), log.FieldCategory, tx.Category)
		http.Error(w, "error saving transaction", http.StatusInternalServerError)
		return
	}

	s.viewCache.Clear()
	http.Redirect(w, r, dashboardURL(core.Period{Year: tx.Date.Year(), Month: tx.Date.Month()}), http.StatusSeeOther)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	p := parsePeriod(r, time.Now())
	ledger := s.ledger.Load(r.Context())
	view := gridView{
		Year:  p.Year,
		Month: p.Month,
		Years: ledger.Years(),
		Rows:  toTxRows(ledger.Filter(p)),
		Kinds: core.Kinds(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "ledger.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Grid template execution failed", "error", err, "template", "ledger.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSaveGrid persists the edited grid. The period fields carried in the
// form identify the filter window that was on screen; rows outside it are
// untouchable from here.
func (s *Server) handleSaveGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, log.FieldPath, r.URL.Path)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	p := parsePeriod(r, time.Now())
	edited, err := parseGridForm(r.Form)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if _, err := s.ledger.SaveEdited(r.Context(), p, edited); err != nil {
		slog.ErrorContext(r.Context(), "Grid save failed", "error", err,
			log.FieldYear, p.Year, log.FieldMonth, p.Month)
		http.Error(w, "error saving ledger", http.StatusInternalServerError)
		return
	}

	s.viewCache.Clear()
	http.Redirect(w, r, "/ledger?"+periodQuery(p), http.StatusSeeOther)
}

func dashboardURL(p core.Period) string {
	return "/?" + periodQuery(p)
}

func periodQuery(p core.Period) string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(p.Year))
	q.Set("month", strconv.Itoa(p.Month))
	return q.Encode()
}
