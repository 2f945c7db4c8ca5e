package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mindflowhq/mindflow/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteStore keeps the whole snapshot as one JSON document in a single
// key/value row. Every save replaces the prior snapshot, so a write is
// either wholly applied or not applied at all.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewSQLiteStore(db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{db: db, logger: logger, now: time.Now}, nil
}

func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the last saved snapshot, or the default initial state when
// the row is absent, empty, or fails to parse. Read failures are logged and
// swallowed; the app must always start in a usable state.
func (s *SQLiteStore) Load(ctx context.Context) model.AppState {
	row := s.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE key = ?`, SnapshotKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("snapshot read failed, starting from default state", "error", err)
		}
		return model.DefaultState(s.now())
	}
	if raw == "" {
		return model.DefaultState(s.now())
	}
	state, err := decodeState([]byte(raw))
	if err != nil {
		s.logger.Warn("snapshot parse failed, starting from default state", "error", err)
		return model.DefaultState(s.now())
	}
	return state
}

// Save serializes the entire state and replaces the stored snapshot.
func (s *SQLiteStore) Save(ctx context.Context, state model.AppState) error {
	raw, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		SnapshotKey, string(raw), s.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
