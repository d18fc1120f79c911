// Package respond writes the API's JSON bodies. Every response, including
// those produced by middleware, goes through the same envelope.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/obi/bookshelf-api/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorResponse{Error: message})
}

// DomainError maps the sentinel errors to transport status codes.
// Anything unmapped is a backend failure.
func DomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrPasswordsDoNotMatch):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrBookForbidden):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrBookNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrImageEmpty),
		errors.Is(err, domain.ErrImageTypeNotAllowed),
		errors.Is(err, domain.ErrImageTooLarge):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
