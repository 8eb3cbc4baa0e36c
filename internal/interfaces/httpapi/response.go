package httpapi

import (
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"fantasy-war-room/internal/usecase"
)

const apiVersion = "2.0"

type envelope struct {
	APIVersion string    `json:"apiVersion"`
	Data       any       `json:"data,omitempty"`
	Error      *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{
		APIVersion: apiVersion,
		Error:      &apiError{Code: status, Message: message},
	})
}

// respondUsecaseError maps the usecase sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; internals stay in the logs.
func respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		respondError(w, http.StatusServiceUnavailable, "draft sources unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(payload)
}
