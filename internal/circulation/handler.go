// internal/circulation/handler.go
package circulation

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

// Routes mounts the loan endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/loans", h.handleCreateLoan)
	r.Post("/loans/{loanID}/return", h.handleReturn)
	r.Post("/returns/book", h.handleReturnByBook)
}

func (h *Handler) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID   int64   `json:"book_id"`
		PersonID int64   `json:"person_id"`
		LoanDate *string `json:"loan_date,omitempty"`
		DueDate  *string `json:"due_date,omitempty"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	loanDate, err := parseDate(req.LoanDate, "loan_date")
	if err != nil {
		httpx.Error(w, err)
		return
	}
	dueDate, err := parseDate(req.DueDate, "due_date")
	if err != nil {
		httpx.Error(w, err)
		return
	}

	detail, err := h.service.CreateLoan(r.Context(), CheckoutRequest{
		BookID:   req.BookID,
		PersonID: req.PersonID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, detail)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "loanID")
	loanID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpx.Error(w, apperr.Validationf("invalid loan id %q", raw))
		return
	}

	var req struct {
		ReturnDate *string `json:"return_date,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, err)
			return
		}
	}

	returnDate, err := parseDate(req.ReturnDate, "return_date")
	if err != nil {
		httpx.Error(w, err)
		return
	}

	receipt, err := h.service.ProcessReturn(r.Context(), loanID, returnDate)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, receipt)
}

func (h *Handler) handleReturnByBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BookID     int64   `json:"book_id,omitempty"`
		BookTitle  string  `json:"book_title,omitempty"`
		ReturnDate *string `json:"return_date,omitempty"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	returnDate, err := parseDate(req.ReturnDate, "return_date")
	if err != nil {
		httpx.Error(w, err)
		return
	}

	receipt, err := h.service.ProcessReturnByBook(r.Context(),
		BookRef{ID: req.BookID, Title: req.BookTitle}, returnDate)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, receipt)
}

func parseDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, apperr.Validationf("invalid %s %q, want YYYY-MM-DD", field, *s)
	}
	return &t, nil
}
