package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/lybic/lybic-sdk-go/internal/log"
	"github.com/lybic/lybic-sdk-go/internal/model"
	"github.com/lybic/lybic-sdk-go/internal/storage/sqlite/migrations"
)

// JournalConfig is the configuration for the SQLite action journal.
type JournalConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *JournalConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLiteJournal"})
	return nil
}

// Journal is a SQLite implementation of storage.ActionJournal.
type Journal struct {
	db     *sql.DB
	logger log.Logger
}

// NewJournal opens (and migrates) the SQLite action journal.
func NewJournal(ctx context.Context, cfg JournalConfig) (*Journal, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Debugf("SQLite journal opened at %s", cfg.DBPath)

	return &Journal{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error { return j.db.Close() }

func (j *Journal) RecordAction(ctx context.Context, r model.ActionRecord) (*model.ActionRecord, error) {
	if r.CallID == "" {
		return nil, fmt.Errorf("call id is required: %w", model.ErrNotValid)
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

	query := `
		INSERT INTO action_records (id, call_id, sandbox_id, action_type, payload, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := j.db.ExecContext(ctx, query,
		r.ID,
		r.CallID,
		r.SandboxID,
		r.ActionType,
		r.Payload,
		r.Status,
		r.Error,
		r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: action_records.") {
			return nil, fmt.Errorf("action record %s: %w", r.CallID, model.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("could not insert action record: %w", err)
	}

	j.logger.Debugf("Recorded action %s (%s) on sandbox %s", r.CallID, r.ActionType, r.SandboxID)
	return &r, nil
}

func (j *Journal) GetActionByCallID(ctx context.Context, callID string) (*model.ActionRecord, error) {
	query := `
		SELECT id, call_id, sandbox_id, action_type, payload, status, error, created_at
		FROM action_records
		WHERE call_id = ?
	`
	r, err := scanRecord(j.db.QueryRowContext(ctx, query, callID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("action record %s: %w", callID, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query action record: %w", err)
	}

	return &r, nil
}

func (j *Journal) ListActions(ctx context.Context, filter model.ActionRecordFilter) ([]model.ActionRecord, error) {
	var (
		conds []string
		args  []any
	)
	if filter.SandboxID != "" {
		conds = append(conds, "sandbox_id = ?")
		args = append(args, filter.SandboxID)
	}
	if filter.ActionType != "" {
		conds = append(conds, "action_type = ?")
		args = append(args, filter.ActionType)
	}

	query := `
		SELECT id, call_id, sandbox_id, action_type, payload, status, error, created_at
		FROM action_records
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query action records: %w", err)
	}
	defer rows.Close()

	var records []model.ActionRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (model.ActionRecord, error) {
	var (
		r         model.ActionRecord
		createdAt int64
	)
	err := s.Scan(
		&r.ID,
		&r.CallID,
		&r.SandboxID,
		&r.ActionType,
		&r.Payload,
		&r.Status,
		&r.Error,
		&createdAt,
	)
	if err != nil {
		return model.ActionRecord{}, err
	}
	r.CreatedAt = time.UnixMilli(createdAt).UTC()

	return r, nil
}
