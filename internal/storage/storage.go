package storage

import (
	"context"

	"github.com/lybic/lybic-sdk-go/internal/model"
)

// ActionJournal is the interface for the local record of executed actions.
type ActionJournal interface {
	// RecordAction stores an action record, the ID and creation time are set when missing.
	RecordAction(ctx context.Context, r model.ActionRecord) (*model.ActionRecord, error)
	GetActionByCallID(ctx context.Context, callID string) (*model.ActionRecord, error)
	// ListActions returns the records matching the filter, newest first.
	ListActions(ctx context.Context, filter model.ActionRecordFilter) ([]model.ActionRecord, error)
}
