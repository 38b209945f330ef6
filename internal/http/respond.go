package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Aadil-Raja/ecommerce-knives/internal/backend"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleBackendError translates a backend client failure into an HTTP
// response. API errors keep their original status; anything else means the
// backend could not be reached.
func handleBackendError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		code := "backend_error"
		switch {
		case apiErr.NotFound():
			code = "not_found"
		case apiErr.Conflict():
			code = "conflict"
		case apiErr.Unauthorized():
			code = "unauthorized"
		}
		respondError(w, apiErr.StatusCode, code, apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "backend_unreachable", "backend is unreachable")
}
