// internal/reports/handler.go
package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
	"github.com/jeorgesilva/lianes-library/internal/httpx"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the reporting endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/dashboard", h.handleDashboard)
	r.Get("/reports/most-borrowed", h.handleMostBorrowed)
	r.Get("/reports/most-active", h.handleMostActive)
	r.Get("/reports/overdue", h.handleOverdue)
	r.Get("/books/{bookID}/history", h.handleBookHistory)
	r.Get("/borrowers/{personID}/history", h.handleBorrowerHistory)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Dashboard(r.Context()))
}

func (h *Handler) handleMostBorrowed(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.MostBorrowedBooks(r.Context(), limit))
}

func (h *Handler) handleMostActive(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.MostActiveBorrowers(r.Context(), limit))
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	var ref *time.Time
	if raw := r.URL.Query().Get("reference_date"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			httpx.Error(w, apperr.Validationf("invalid reference_date %q, want YYYY-MM-DD", raw))
			return
		}
		ref = &t
	}
	httpx.JSON(w, http.StatusOK, h.service.OverdueLoans(r.Context(), ref))
}

func (h *Handler) handleBookHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookID")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.HistoryForBook(r.Context(), id))
}

func (h *Handler) handleBorrowerHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "personID")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.HistoryForBorrower(r.Context(), id))
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validationf("invalid limit %q", raw)
	}
	return limit, nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid id %q", raw)
	}
	return id, nil
}
