package circulation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeorgesilva/lianes-library/internal/borrowers"
	"github.com/jeorgesilva/lianes-library/internal/catalog"
)

func newTestRouter(store *memStore) http.Handler {
	r := chi.NewRouter()
	NewHandler(newTestService(store)).Routes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCheckoutAndReturnFlow(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "Dune", catalog.StatusAvailable)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
	router := newTestRouter(store)

	rec := postJSON(t, router, "/loans", `{"book_id":1,"person_id":1,"loan_date":"2024-01-01","due_date":"2024-01-15"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"book_title":"Dune"`)

	rec = postJSON(t, router, "/loans/1/return", `{"return_date":"2024-01-20"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_late":true`)
	assert.Contains(t, rec.Body.String(), `"days_late":5`)
}

func TestHandlerCheckoutConflict(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "Dune", catalog.StatusBorrowed)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
	router := newTestRouter(store)

	rec := postJSON(t, router, "/loans", `{"book_id":1,"person_id":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerRejectsBadDate(t *testing.T) {
	router := newTestRouter(newMemStore())

	rec := postJSON(t, router, "/loans", `{"book_id":1,"person_id":1,"loan_date":"01/02/2024"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerReturnByBookTitle(t *testing.T) {
	store := newMemStore()
	store.addBook(1, "The Hobbit", catalog.StatusAvailable)
	store.addBorrower(1, "Liane", "Silva", borrowers.StatusActive)
	router := newTestRouter(store)

	rec := postJSON(t, router, "/loans", `{"book_id":1,"person_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, router, "/returns/book", `{"book_title":"hobbit"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/returns/book", `{"book_title":"hobbit"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
