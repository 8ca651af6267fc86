package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// JournalConfig is the configuration for the memory action journal.
type JournalConfig struct {
	Logger log.Logger
}

func (c *JournalConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.MemoryJournal"})
	return nil
}

// Journal is an in-memory implementation of storage.ActionJournal.
type Journal struct {
	records map[string]model.ActionRecord // By call ID.
	mu      sync.RWMutex
	logger  log.Logger
}

// NewJournal creates a new memory journal.
func NewJournal(cfg JournalConfig) (*Journal, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Journal{
		records: make(map[string]model.ActionRecord),
		logger:  cfg.Logger,
	}, nil
}

func (j *Journal) RecordAction(ctx context.Context, r model.ActionRecord) (*model.ActionRecord, error) {
	if r.CallID == "" {
		return nil, fmt.Errorf("call id is required: %w", model.ErrNotValid)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.records[r.CallID]; ok {
		return nil, fmt.Errorf("action record %s: %w", r.CallID, model.ErrAlreadyExists)
	}

	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.Status == "" {
		r.Status = model.ActionRecordStatusDone
	}

	j.records[r.CallID] = r
	j.logger.Debugf("Recorded action %s (%s) on sandbox %s", r.CallID, r.ActionType, r.SandboxID)

	return &r, nil
}

func (j *Journal) GetActionByCallID(ctx context.Context, callID string) (*model.ActionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	r, ok := j.records[callID]
	if !ok {
		return nil, fmt.Errorf("action record %s: %w", callID, model.ErrNotFound)
	}

	return &r, nil
}

func (j *Journal) ListActions(ctx context.Context, filter model.ActionRecordFilter) ([]model.ActionRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	records := make([]model.ActionRecord, 0, len(j.records))
	for _, r := range j.records {
		if filter.SandboxID != "" && r.SandboxID != filter.SandboxID {
			continue
		}
		if filter.ActionType != "" && r.ActionType != filter.ActionType {
			continue
		}
		records = append(records, r)
	}

	sort.Slice(records, func(a, b int) bool {
		if !records[a].CreatedAt.Equal(records[b].CreatedAt) {
			return records[a].CreatedAt.After(records[b].CreatedAt)
		}
		return records[a].ID > records[b].ID
	})

	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}

	return records, nil
}
