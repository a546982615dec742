package collaborators

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// sqliteEarningsStore is the alternate local-file-adjacent store: a real
// SQL engine without requiring a Postgres instance, running the same
// query shapes the Postgres store runs, and available as a single-file
// deployment option alongside the default JSON-file store.
type sqliteEarningsStore struct {
	db *sql.DB
}

// NewSQLiteEarningsStore opens (creating if absent) a SQLite-backed
// earnings store at path.
func NewSQLiteEarningsStore(path string) (EarningsStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("collaborators: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers anyway
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS player_earnings (
    email             TEXT PRIMARY KEY,
    hands             INTEGER NOT NULL DEFAULT 0,
    chips_delta       INTEGER NOT NULL DEFAULT 0,
    hands_69_92       INTEGER NOT NULL DEFAULT 0,
    chips_delta_69_92 INTEGER NOT NULL DEFAULT 0
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("collaborators: ensure player_earnings table: %w", err)
	}
	return &sqliteEarningsStore{db: db}, nil
}

func (s *sqliteEarningsStore) Get(ctx context.Context, email string) (EarningsRecord, error) {
	key := normalizeEmail(email)
	rec := EarningsRecord{Email: key}
	row := s.db.QueryRowContext(ctx, `
SELECT hands, chips_delta, hands_69_92, chips_delta_69_92
FROM player_earnings WHERE email = ?`, key)
	err := row.Scan(&rec.Hands, &rec.ChipsDelta, &rec.Hands6992, &rec.ChipsDelta6992)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return EarningsRecord{}, fmt.Errorf("collaborators: get earnings for %s: %w", key, err)
	}
	return rec, nil
}

func (s *sqliteEarningsStore) ApplyUpdates(ctx context.Context, updates []EarningsUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("collaborators: begin earnings tx: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		key := normalizeEmail(u.Email)
		if _, err := tx.ExecContext(ctx, `
INSERT INTO player_earnings (email, hands, chips_delta, hands_69_92, chips_delta_69_92)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (email) DO UPDATE SET
    hands = hands + excluded.hands,
    chips_delta = chips_delta + excluded.chips_delta,
    hands_69_92 = hands_69_92 + excluded.hands_69_92,
    chips_delta_69_92 = chips_delta_69_92 + excluded.chips_delta_69_92
`, key, u.Hands, u.ChipsDelta, u.Hands6992, u.ChipsDelta6992); err != nil {
			return fmt.Errorf("collaborators: apply earnings update for %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *sqliteEarningsStore) Close() error { return s.db.Close() }
