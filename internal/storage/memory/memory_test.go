package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/storage/memory"
)

func TestJournal(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, j *memory.Journal) error
		expErr  error
	}{
		"Recording an action should allow getting it by call id.": {
			actions: func(ctx context.Context, t *testing.T, j *memory.Journal) error {
				stored, err := j.RecordAction(ctx, model.ActionRecord{CallID: "c1", SandboxID: "SBX-1", ActionType: "wait"})
				require.NoError(t, err)
				assert.NotEmpty(t, stored.ID)
				assert.False(t, stored.CreatedAt.IsZero())
				assert.Equal(t, model.ActionRecordStatusDone, stored.Status)

				got, err := j.GetActionByCallID(ctx, "c1")
				require.NoError(t, err)
				assert.Equal(t, *stored, *got)
				return nil
			},
		},

		"Getting a missing record should fail.": {
			actions: func(ctx context.Context, t *testing.T, j *memory.Journal) error {
				_, err := j.GetActionByCallID(ctx, "missing")
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Recording a duplicated call id should fail.": {
			actions: func(ctx context.Context, t *testing.T, j *memory.Journal) error {
				_, err := j.RecordAction(ctx, model.ActionRecord{CallID: "c1"})
				require.NoError(t, err)
				_, err = j.RecordAction(ctx, model.ActionRecord{CallID: "c1"})
				return err
			},
			expErr: model.ErrAlreadyExists,
		},

		"Recording without call id should fail.": {
			actions: func(ctx context.Context, t *testing.T, j *memory.Journal) error {
				_, err := j.RecordAction(ctx, model.ActionRecord{SandboxID: "SBX-1"})
				return err
			},
			expErr: model.ErrNotValid,
		},

		"Listing should filter and sort newest first.": {
			actions: func(ctx context.Context, t *testing.T, j *memory.Journal) error {
				for i, r := range []model.ActionRecord{
					{CallID: "c1", SandboxID: "SBX-1", ActionType: "mouse:click"},
					{CallID: "c2", SandboxID: "SBX-2", ActionType: "screenshot"},
					{CallID: "c3", SandboxID: "SBX-1", ActionType: "screenshot"},
				} {
					r.CreatedAt = base.Add(time.Duration(i) * time.Second)
					_, err := j.RecordAction(ctx, r)
					require.NoError(t, err)
				}

				got, err := j.ListActions(ctx, model.ActionRecordFilter{SandboxID: "SBX-1"})
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, "c3", got[0].CallID)
				assert.Equal(t, "c1", got[1].CallID)

				got, err = j.ListActions(ctx, model.ActionRecordFilter{ActionType: "screenshot", Limit: 1})
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "c3", got[0].CallID)
				return nil
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			j, err := memory.NewJournal(memory.JournalConfig{Logger: log.Noop})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, j)
			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
