// Package storage implements calls.Repository on Postgres via the pgx
// stdlib driver.
//
// The schema is fixed and migrated externally; this package assumes:
//
//	CREATE TABLE call_records (
//	    id         BIGSERIAL PRIMARY KEY,
//	    phone      VARCHAR(50)  NOT NULL,
//	    status     VARCHAR(50)  NOT NULL DEFAULT 'neutral',
//	    sentiment  VARCHAR(50)  NOT NULL DEFAULT 'neutral',
//	    call_human BOOLEAN      NOT NULL DEFAULT FALSE,
//	    summary    TEXT,
//	    attempt    INTEGER      NOT NULL DEFAULT 1,
//	    duration   INTEGER      NOT NULL DEFAULT 0,
//	    country    VARCHAR(2)   NOT NULL DEFAULT 'ES',
//	    created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
//	);
//	CREATE INDEX ON call_records (country);
//	CREATE INDEX ON call_records (created_at);
package storage

import (
	"context"
	"database/sql"
	"time"

	"call-analytics/internal/calls"
)

const defaultTimeout = 5 * time.Second

// Repo is a Postgres-backed call-record repository. Every statement runs
// under a short timeout so neither ingestion nor aggregation can block
// unboundedly on a sick database.
type Repo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewRepo(db *sql.DB, timeout time.Duration) *Repo {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Repo{db: db, timeout: timeout}
}

func (r *Repo) Append(ctx context.Context, rec calls.CallRecord) (calls.CallRecord, error) {
	const q = `
INSERT INTO call_records (phone, status, sentiment, call_human, summary, attempt, duration, country, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at
`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, q,
		rec.Phone,
		rec.Status,
		rec.Sentiment,
		rec.CallHuman,
		rec.Summary,
		rec.Attempt,
		rec.DurationSeconds,
		rec.Country,
		rec.CreatedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return calls.CallRecord{}, &calls.StorageError{Op: "append", Err: err}
	}
	return rec, nil
}

func (r *Repo) List(ctx context.Context, country string) ([]calls.CallRecord, error) {
	q := `
SELECT id, phone, status, sentiment, call_human, summary, attempt, duration, country, created_at
FROM call_records
`
	args := []any{}
	if country != "" {
		q += "WHERE country = $1\n"
		args = append(args, country)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &calls.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := make([]calls.CallRecord, 0)
	for rows.Next() {
		var rec calls.CallRecord
		var summary sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.Phone,
			&rec.Status,
			&rec.Sentiment,
			&rec.CallHuman,
			&summary,
			&rec.Attempt,
			&rec.DurationSeconds,
			&rec.Country,
			&rec.CreatedAt,
		); err != nil {
			return nil, &calls.StorageError{Op: "list scan", Err: err}
		}
		rec.Summary = summary.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &calls.StorageError{Op: "list rows", Err: err}
	}
	return out, nil
}
