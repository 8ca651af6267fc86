package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

// APIError is a structured error returned by the Lybic API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// Is maps the HTTP status to the model sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case model.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case model.ErrNotValid:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case model.ErrAlreadyExists:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// InternalError is returned when the API fails without a structured error,
// usually a reverse proxy answering 5xx with an HTML page.
type InternalError struct {
	StatusCode int
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error occur (status: %d)", e.StatusCode)
}

// NetworkError wraps the errors of requests that didn't get an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newResponseError returns the error of a failed API response.
func newResponseError(statusCode int, contentType string, body []byte) error {
	var eb apiErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && (eb.Message != "" || eb.Code != "") {
		msg := eb.Message
		if msg == "" {
			msg = http.StatusText(statusCode)
		}
		return &APIError{StatusCode: statusCode, Code: eb.Code, Message: msg}
	}

	if statusCode >= 500 {
		return &InternalError{StatusCode: statusCode}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" || strings.Contains(contentType, "html") {
		msg = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}
