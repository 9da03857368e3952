package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

// Store records hand history in postgres. It implements game.Recorder;
// the engine treats every call as best-effort, so a down database never
// affects play.
type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the history tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS hands (
    id         TEXT PRIMARY KEY,
    table_id   TEXT NOT NULL,
    started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    ended_at   TIMESTAMPTZ,
    winners    TEXT,
    pot        BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS hand_actions (
    id         TEXT PRIMARY KEY,
    hand_id    TEXT NOT NULL REFERENCES hands(id),
    player     TEXT NOT NULL,
    action     TEXT NOT NULL,
    amount     BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS hand_actions_hand_idx ON hand_actions(hand_id);
`)
	return err
}

func (s *Store) CreateHand(ctx context.Context, tableID string) (string, error) {
	id := NewID()
	_, err := s.Pool.Exec(ctx, `INSERT INTO hands (id, table_id) VALUES ($1, $2)`, id, tableID)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) RecordAction(ctx context.Context, handID, player, action string, amount int64) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO hand_actions (id, hand_id, player, action, amount) VALUES ($1, $2, $3, $4, $5)`,
		NewID(), handID, player, action, amount)
	return err
}

func (s *Store) FinishHand(ctx context.Context, handID string, winners []string, pot int64) error {
	_, err := s.Pool.Exec(ctx,
		`UPDATE hands SET ended_at = now(), winners = $2, pot = $3 WHERE id = $1`,
		handID, strings.Join(winners, ","), pot)
	return err
}

// HandSummary is one row of a table's played-hand history.
type HandSummary struct {
	ID        string     `json:"id"`
	TableID   string     `json:"table_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Winners   string     `json:"winners"`
	Pot       int64      `json:"pot"`
}

func (s *Store) ListHands(ctx context.Context, tableID string, limit int) ([]HandSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, table_id, started_at, ended_at, COALESCE(winners, ''), pot
		 FROM hands WHERE table_id = $1 ORDER BY started_at DESC LIMIT $2`,
		tableID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HandSummary{}
	for rows.Next() {
		var h HandSummary
		if err := rows.Scan(&h.ID, &h.TableID, &h.StartedAt, &h.EndedAt, &h.Winners, &h.Pot); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
