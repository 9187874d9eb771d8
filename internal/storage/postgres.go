// Package storage provides the PostgreSQL store behind the scraping
// monitor and the Redis cache for the latest stats rows.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipeparser/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS scraping_logs (
    id BIGSERIAL PRIMARY KEY,
    url TEXT NOT NULL,
    parser_name TEXT NOT NULL,
    logged_at TIMESTAMPTZ NOT NULL,
    duration_ms BIGINT NOT NULL,
    success BOOLEAN NOT NULL,
    validation_result JSONB NOT NULL,
    error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS scraping_logs_parser_idx ON scraping_logs (parser_name, logged_at DESC);

CREATE TABLE IF NOT EXISTS parser_stats (
    id BIGSERIAL PRIMARY KEY,
    parser_name TEXT NOT NULL,
    total_attempts INT NOT NULL,
    success_rate DOUBLE PRECISION NOT NULL,
    average_duration DOUBLE PRECISION NOT NULL,
    common_errors JSONB NOT NULL,
    last_run TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS parser_stats_parser_idx ON parser_stats (parser_name, last_run DESC);
`

// PostgresStore persists scraping logs and stats rows. Both tables are
// append-only; readers take the latest row per parser.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// EnsureSchema creates the tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) AppendScrapingResult(ctx context.Context, r domain.ScrapingResult) error {
	vr, err := json.Marshal(r.ValidationResult)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO scraping_logs (url, parser_name, logged_at, duration_ms, success, validation_result, error)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.URL, r.ParserName, r.Timestamp, r.Duration, r.Success, vr, r.Error)
	return err
}

func (s *PostgresStore) AppendParserStats(ctx context.Context, st domain.ParserStats) error {
	ce, err := json.Marshal(st.CommonErrors)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO parser_stats (parser_name, total_attempts, success_rate, average_duration, common_errors, last_run)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		st.ParserName, st.TotalAttempts, st.SuccessRate, st.AverageDuration, ce, st.LastRun)
	return err
}

func (s *PostgresStore) LatestParserStats(ctx context.Context, parserName string) (*domain.ParserStats, error) {
	var st domain.ParserStats
	var ce []byte
	err := s.db.QueryRow(ctx,
		`SELECT parser_name, total_attempts, success_rate, average_duration, common_errors, last_run
		 FROM parser_stats WHERE parser_name = $1
		 ORDER BY last_run DESC, id DESC LIMIT 1`,
		parserName,
	).Scan(&st.ParserName, &st.TotalAttempts, &st.SuccessRate, &st.AverageDuration, &ce, &st.LastRun)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ce, &st.CommonErrors); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *PostgresStore) RecentScrapingResults(ctx context.Context, limit int, parserName string) ([]domain.ScrapingResult, error) {
	query := `SELECT url, parser_name, logged_at, duration_ms, success, validation_result, error
	          FROM scraping_logs`
	args := []any{}
	if parserName != "" {
		query += ` WHERE parser_name = $1`
		args = append(args, parserName)
	}
	query += fmt.Sprintf(` ORDER BY logged_at DESC, id DESC LIMIT %d`, limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScrapingResult
	for rows.Next() {
		var r domain.ScrapingResult
		var vr []byte
		if err := rows.Scan(&r.URL, &r.ParserName, &r.Timestamp, &r.Duration, &r.Success, &vr, &r.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(vr, &r.ValidationResult); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
