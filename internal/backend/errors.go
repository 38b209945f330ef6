package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx response from the backend, decoded from its JSON
// error body when one is present. Requests are never retried; callers decide
// what an error means for their view state.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// apiError drains the body and builds an APIError. The backend reports
// failures as {"error": ...} on most routes and {"message": ...} on the
// newsletter ones.
func apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = payload.Message
	}
	return apiErr
}
