// internal/httpx/httpx.go
package httpx

import (
	"log"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/jeorgesilva/lianes-library/internal/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpx: encode response: %v", err)
	}
}

// Decode parses the request body into v, mapping malformed JSON to a
// validation error.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validationf("invalid request body: %v", err)
	}
	return nil
}

// Error maps the error taxonomy onto response codes. Storage and unknown
// errors are logged and hidden behind a generic message.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindValidation:
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: kind.String()})
	case apperr.KindNotFound:
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error(), Kind: kind.String()})
	case apperr.KindConflict:
		JSON(w, http.StatusConflict, errorBody{Error: err.Error(), Kind: kind.String()})
	case apperr.KindRateLimited:
		JSON(w, http.StatusTooManyRequests, errorBody{Error: err.Error(), Kind: kind.String()})
	default:
		log.Printf("httpx: internal error: %v", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Kind: apperr.KindStorage.String()})
	}
}
