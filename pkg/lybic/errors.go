package lybic

import (
	"errors"

	"github.com/lybic/lybic-sdk-go/internal/api"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned on invalid input or when the API rejects a request.
	ErrNotValid = errors.New("not valid")
	// ErrUnknownActionType is returned when an action type is missing or not
	// accepted by the sandbox kind.
	ErrUnknownActionType = errors.New("unknown action type")
	// ErrInvalidActionPayload is returned when an action payload does not match its type.
	ErrInvalidActionPayload = errors.New("invalid action payload")
	// ErrUnsupportedOperation is returned when an operation is not available on the sandbox platform.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// APIError is a structured error returned by the Lybic API.
type APIError = api.APIError

// InternalError is returned when the API fails without a structured error.
type InternalError = api.InternalError

// NetworkError is returned when the API could not be reached.
type NetworkError = api.NetworkError

var errorMappings = []struct {
	internal error
	public   error
}{
	{model.ErrNotFound, ErrNotFound},
	{model.ErrAlreadyExists, ErrAlreadyExists},
	{model.ErrNotValid, ErrNotValid},
	{model.ErrUnknownActionType, ErrUnknownActionType},
	{model.ErrInvalidActionPayload, ErrInvalidActionPayload},
	{model.ErrUnsupportedOperation, ErrUnsupportedOperation},
}

// mapError makes internal errors match the public sentinels with errors.Is
// while keeping the original error chain.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var sentinels []error
	for _, m := range errorMappings {
		if errors.Is(err, m.internal) {
			sentinels = append(sentinels, m.public)
		}
	}
	if len(sentinels) == 0 {
		return err
	}

	return &mappedError{original: err, sentinels: sentinels}
}

type mappedError struct {
	original  error
	sentinels []error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	for _, s := range e.sentinels {
		if target == s {
			return true
		}
	}
	return false
}

func (e *mappedError) Unwrap() error { return e.original }
