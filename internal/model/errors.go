package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrUnknownActionType is returned when an action payload has a type tag that is not registered.
	ErrUnknownActionType = errors.New("unknown action type")
	// ErrInvalidActionPayload is returned when an action payload does not satisfy its variant schema.
	ErrInvalidActionPayload = errors.New("invalid action payload")
	// ErrUnsupportedOperation is returned when an operation is not available for the target platform.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// UnknownActionTypeError is returned by the action dispatcher when the type tag
// is missing or not part of the requested action union.
type UnknownActionTypeError struct {
	Type  string
	Union string
}

func (e *UnknownActionTypeError) Error() string {
	if e.Type == "" {
		return "action type is missing: " + ErrUnknownActionType.Error()
	}
	if e.Union != "" {
		return fmt.Sprintf("action type %q is not a %s action: %s", e.Type, e.Union, ErrUnknownActionType)
	}
	return fmt.Sprintf("action type %q: %s", e.Type, ErrUnknownActionType)
}

func (e *UnknownActionTypeError) Is(target error) bool {
	return target == ErrUnknownActionType
}

// InvalidActionPayloadError is returned when an action payload with a known type
// tag has missing, extra or ill-typed fields.
type InvalidActionPayloadError struct {
	ActionType string
	Fields     []string
	Reason     string
}

func (e *InvalidActionPayloadError) Error() string {
	var b strings.Builder
	if e.ActionType != "" {
		fmt.Fprintf(&b, "%s ", e.ActionType)
	}
	b.WriteString("action")
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " fields [%s]", strings.Join(e.Fields, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	fmt.Fprintf(&b, ": %s", ErrInvalidActionPayload)
	return b.String()
}

func (e *InvalidActionPayloadError) Is(target error) bool {
	return target == ErrInvalidActionPayload || target == ErrNotValid
}
