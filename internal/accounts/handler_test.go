package accounts

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/accounts", NewHandler(svc).Routes)
	return r
}

func TestHandlerRegisterAndLogin(t *testing.T) {
	router := newTestRouter(newTestService(newFakeStore()))

	req := httptest.NewRequest(http.MethodPost, "/accounts/register",
		strings.NewReader(`{"email":"ana@example.com","first_name":"Ana","last_name":"Silva","password":"s3cret-pass"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ana@example.com"`)

	req = httptest.NewRequest(http.MethodPost, "/accounts/login",
		strings.NewReader(`{"email":"ana@example.com","password":"s3cret-pass"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerLoginBadPassword(t *testing.T) {
	svc := newTestService(newFakeStore())
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/accounts/register",
		strings.NewReader(`{"email":"ana@example.com","first_name":"Ana","last_name":"Silva","password":"s3cret-pass"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/accounts/login",
		strings.NewReader(`{"email":"ana@example.com","password":"wrong"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerRateLimitMapsTo429(t *testing.T) {
	svc := &service{
		store:   newFakeStore(),
		limiter: rate.NewLimiter(rate.Every(time.Hour), 1),
		now:     time.Now,
	}
	router := newTestRouter(svc)

	body := `{"email":"ana@example.com","first_name":"Ana","last_name":"Silva","password":"s3cret-pass"}`

	req := httptest.NewRequest(http.MethodPost, "/accounts/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/accounts/login",
		strings.NewReader(`{"email":"ana@example.com","password":"s3cret-pass"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHandlerGetRejectsBadUUID(t *testing.T) {
	router := newTestRouter(newTestService(newFakeStore()))

	req := httptest.NewRequest(http.MethodGet, "/accounts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
