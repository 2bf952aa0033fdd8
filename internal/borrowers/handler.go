// internal/borrowers/handler.go
package borrowers

import (
	"net/http"
	"strconv"

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

// Routes mounts the borrower endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/{personID}", h.handleGet)
	r.Patch("/{personID}", h.handleUpdateContact)
	r.Put("/{personID}/status", h.handleSetStatus)
	r.Delete("/{personID}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var nb NewBorrower
	if err := httpx.Decode(r, &nb); err != nil {
		httpx.Error(w, err)
		return
	}

	borrower, err := h.service.CreateBorrower(r.Context(), nb)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, borrower)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := Filter{
		Name:   q.Get("name"),
		Status: Status(q.Get("status")),
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			httpx.Error(w, apperr.Validationf("invalid limit %q", limitStr))
			return
		}
		f.Limit = limit
	}

	out, err := h.service.GetBorrowers(r.Context(), f)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	borrower, err := h.service.GetBorrowerByID(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, borrower)
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	var u ContactUpdate
	if err := httpx.Decode(r, &u); err != nil {
		httpx.Error(w, err)
		return
	}

	borrower, err := h.service.UpdateBorrowerContact(r.Context(), id, u)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, borrower)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	var req struct {
		Status Status `json:"status"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.service.SetBorrowerStatus(r.Context(), id, req.Status); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"result": "updated"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := personID(r)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	if err := h.service.DeleteBorrower(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"result": "removed"})
}

func personID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "personID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validationf("invalid borrower id %q", raw)
	}
	return id, nil
}
