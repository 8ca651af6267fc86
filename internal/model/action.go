package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ActionFamily groups action variants by the kind of device they drive.
type ActionFamily string

const (
	ActionFamilyCommon   ActionFamily = "common"
	ActionFamilyComputer ActionFamily = "computer"
	ActionFamilyMobile   ActionFamily = "mobile"
	ActionFamilyTouch    ActionFamily = "touch"
	ActionFamilyAndroid  ActionFamily = "android"
	ActionFamilyOS       ActionFamily = "os"
)

// FieldPolicy is the treatment an action variant gives to payload fields
// that are not part of its schema.
type FieldPolicy int

const (
	// FieldPolicyRetain keeps unknown fields and sends them back when serialized.
	FieldPolicyRetain FieldPolicy = iota
	// FieldPolicyStrict rejects payloads with unknown fields.
	FieldPolicyStrict
	// FieldPolicyIgnore drops unknown fields.
	FieldPolicyIgnore
)

func (p FieldPolicy) String() string {
	switch p {
	case FieldPolicyStrict:
		return "strict"
	case FieldPolicyIgnore:
		return "ignore"
	default:
		return "retain"
	}
}

// Action is a single GUI action that can be executed on a sandbox.
//
// The set of actions is closed, all the implementations live in this package
// and are pointers to the *Action structs (e.g *MouseClickAction).
type Action interface {
	// Type returns the wire type tag of the action (e.g "mouse:click").
	Type() string
	// GetCallID returns the correlation token of the action.
	GetCallID() string

	actionBase() *ActionBase
}

// ActionBase has the fields shared by every action variant.
type ActionBase struct {
	// CallID correlates the action with its execution result.
	CallID string `json:"callId,omitempty"`
	// Extra has the unknown payload fields retained by variants without a
	// declared field policy.
	Extra map[string]json.RawMessage `json:"-"`
}

func (b *ActionBase) GetCallID() string       { return b.CallID }
func (b *ActionBase) actionBase() *ActionBase { return b }

// NewCallID returns a new unique action call ID.
func NewCallID() string {
	return uuid.NewString()
}

// EnsureCallID sets a new call ID on the action when it doesn't have one and
// returns the action call ID.
func EnsureCallID(a Action) string {
	b := a.actionBase()
	if b.CallID == "" {
		b.CallID = NewCallID()
	}
	return b.CallID
}

// RenewCallID replaces the action call ID with a new one and returns it.
func RenewCallID(a Action) string {
	b := a.actionBase()
	b.CallID = NewCallID()
	return b.CallID
}

// marshalAction encodes an action variant with its type tag and retained extra fields.
// v must not implement json.Marshaler itself.
func marshalAction(typ string, extra map[string]json.RawMessage, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal %s action: %w", typ, err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("could not marshal %s action: %w", typ, err)
	}

	for k, raw := range extra {
		if _, ok := fields[k]; ok || k == "type" {
			continue
		}
		fields[k] = raw
	}

	tag, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}
	fields["type"] = tag

	return json.Marshal(fields)
}
