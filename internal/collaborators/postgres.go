package collaborators

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// postgresEarningsStore backs EarningsStore with a Postgres table,
// used once a deployment marker selects remote mode. ApplyUpdates runs
// every increment inside one transaction so a batch is atomic per call.
type postgresEarningsStore struct {
	db *sql.DB
}

// NewPostgresEarningsStore opens dsn, pings it, and creates the earnings
// table if it is absent, mirroring the reference ledger package's
// startup ping/schema check.
func NewPostgresEarningsStore(dsn string) (EarningsStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("collaborators: open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("collaborators: ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS player_earnings (
    email               TEXT PRIMARY KEY,
    hands               BIGINT NOT NULL DEFAULT 0,
    chips_delta         BIGINT NOT NULL DEFAULT 0,
    hands_69_92         BIGINT NOT NULL DEFAULT 0,
    chips_delta_69_92   BIGINT NOT NULL DEFAULT 0
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("collaborators: ensure player_earnings table: %w", err)
	}
	return &postgresEarningsStore{db: db}, nil
}

func (s *postgresEarningsStore) Get(ctx context.Context, email string) (EarningsRecord, error) {
	key := normalizeEmail(email)
	rec := EarningsRecord{Email: key}
	row := s.db.QueryRowContext(ctx, `
SELECT hands, chips_delta, hands_69_92, chips_delta_69_92
FROM player_earnings WHERE email = $1`, key)
	err := row.Scan(&rec.Hands, &rec.ChipsDelta, &rec.Hands6992, &rec.ChipsDelta6992)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return EarningsRecord{}, fmt.Errorf("collaborators: get earnings for %s: %w", key, err)
	}
	return rec, nil
}

func (s *postgresEarningsStore) ApplyUpdates(ctx context.Context, updates []EarningsUpdate) error {
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
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET
    hands = player_earnings.hands + EXCLUDED.hands,
    chips_delta = player_earnings.chips_delta + EXCLUDED.chips_delta,
    hands_69_92 = player_earnings.hands_69_92 + EXCLUDED.hands_69_92,
    chips_delta_69_92 = player_earnings.chips_delta_69_92 + EXCLUDED.chips_delta_69_92
`, key, u.Hands, u.ChipsDelta, u.Hands6992, u.ChipsDelta6992); err != nil {
			return fmt.Errorf("collaborators: apply earnings update for %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *postgresEarningsStore) Close() error { return s.db.Close() }

// postgresAllowList backs AllowList with a Postgres table.
type postgresAllowList struct {
	db *sql.DB
}

// NewPostgresAllowList opens dsn, sharing the same schema-presence
// discipline as NewPostgresEarningsStore.
func NewPostgresAllowList(dsn string) (AllowList, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("collaborators: open postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("collaborators: ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS allowed_emails (
    email TEXT PRIMARY KEY
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("collaborators: ensure allowed_emails table: %w", err)
	}
	return &postgresAllowList{db: db}, nil
}

func (a *postgresAllowList) GetAllowedEmails(ctx context.Context) (map[string]struct{}, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT email FROM allowed_emails`)
	if err != nil {
		return nil, fmt.Errorf("collaborators: list allowed emails: %w", err)
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out[normalizeEmail(email)] = struct{}{}
	}
	return out, rows.Err()
}

func (a *postgresAllowList) Close() error { return a.db.Close() }
