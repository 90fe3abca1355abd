package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Postgres-backed Store for deployments that own their
// data instead of renting a hosted document store. Episodes are kept as a
// nested JSONB map rather than the flat wire layout; the two backends are
// not wire-compatible.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the backing table when it does not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS anime_records (
    id         text PRIMARY KEY,
    title      text NOT NULL,
    duration   text NOT NULL DEFAULT '',
    cover      text NOT NULL DEFAULT '',
    genres     jsonb NOT NULL DEFAULT '[]',
    episodes   jsonb NOT NULL DEFAULT '{}',
    updated_at timestamptz NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("postgres: init: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, title, duration, cover, genres, episodes FROM anime_records`)
	if err != nil {
		return nil, fmt.Errorf("postgres: get all: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: get all: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	sortEntries(entries)
	return entries, nil
}

func (s *PostgresStore) GetOne(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	row := s.db.QueryRow(ctx, `
SELECT id, title, duration, cover, genres, episodes FROM anime_records WHERE id = $1`, id)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return e.Record, nil
}

func (s *PostgresStore) Put(ctx context.Context, id string, rec Record) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if len(rec.Episodes) == 0 {
		return ErrNoEpisodes
	}

	genresJSON, _ := json.Marshal(rec.Genres)
	episodesJSON, _ := json.Marshal(rec.Episodes)

	_, err := s.db.Exec(ctx, `
INSERT INTO anime_records (id, title, duration, cover, genres, episodes, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    duration = EXCLUDED.duration,
    cover = EXCLUDED.cover,
    genres = EXCLUDED.genres,
    episodes = EXCLUDED.episodes,
    updated_at = EXCLUDED.updated_at`,
		id, rec.Title, rec.Duration, rec.Cover, genresJSON, episodesJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("postgres: put %s: %w", id, err)
	}
	return nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var (
		e            Entry
		genresJSON   []byte
		episodesJSON []byte
	)
	if err := row.Scan(&e.ID, &e.Record.Title, &e.Record.Duration, &e.Record.Cover, &genresJSON, &episodesJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, pgx.ErrNoRows
		}
		return Entry{}, fmt.Errorf("postgres: scan: %w", err)
	}
	if err := json.Unmarshal(genresJSON, &e.Record.Genres); err != nil {
		return Entry{}, fmt.Errorf("postgres: genres decode: %w", err)
	}
	if err := json.Unmarshal(episodesJSON, &e.Record.Episodes); err != nil {
		return Entry{}, fmt.Errorf("postgres: episodes decode: %w", err)
	}
	return e, nil
}
