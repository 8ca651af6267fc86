package model

import (
	"time"
)

// ActionRecordStatus is the outcome of an executed action.
type ActionRecordStatus string

const (
	ActionRecordStatusDone   ActionRecordStatus = "done"
	ActionRecordStatusFailed ActionRecordStatus = "failed"
)

// ActionRecord is a journal entry of an action executed on a sandbox.
type ActionRecord struct {
	ID         string
	CallID     string
	SandboxID  string
	ActionType string
	// Payload is the JSON encoded action as sent.
	Payload   string
	Status    ActionRecordStatus
	Error     string
	CreatedAt time.Time
}

// ActionRecordFilter filters journal records, zero values match everything.
type ActionRecordFilter struct {
	SandboxID  string
	ActionType string
	// Limit is the maximum number of records returned, newest first.
	Limit int
}
