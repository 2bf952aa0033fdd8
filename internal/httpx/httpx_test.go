package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
)

func TestErrorMapsTaxonomyToStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validationf("title is required"), http.StatusBadRequest},
		{apperr.NotFoundf("book id 9 not found"), http.StatusNotFound},
		{apperr.Conflictf("book id 9 is not AVAILABLE"), http.StatusConflict},
		{apperr.RateLimitedf("too many attempts"), http.StatusTooManyRequests},
		{apperr.Storage("query books", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)
		assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestErrorHidesStorageDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperr.Storage("insert loan", errors.New("password=hunter2")))
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestDecodeRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	var v struct{}
	err := Decode(req, &v)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}
