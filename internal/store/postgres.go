package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createVisitorRecords = `
CREATE TABLE IF NOT EXISTS visitor_records (
	seq          BIGSERIAL PRIMARY KEY,
	id           TEXT NOT NULL UNIQUE,
	name         TEXT NOT NULL DEFAULT '',
	email        TEXT NOT NULL DEFAULT '',
	user_type    TEXT NOT NULL DEFAULT '',
	company      TEXT NOT NULL DEFAULT '',
	role         TEXT NOT NULL DEFAULT '',
	answers      TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL DEFAULT '',
	timestamp    TIMESTAMPTZ NOT NULL,
	subject      TEXT NOT NULL DEFAULT '',
	body         TEXT NOT NULL DEFAULT '',
	model_used   TEXT NOT NULL DEFAULT '',
	github_url   TEXT NOT NULL DEFAULT '',
	linkedin_url TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT ''
)`

// Postgres stores records in the visitor_records table, ordered by seq.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createVisitorRecords); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create visitor_records: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]Record, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, user_type, company, role, answers, status, timestamp,
		       subject, body, model_used, github_url, linkedin_url, source
		FROM visitor_records
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query visitor_records: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var r Record
		err := row.Scan(&r.ID, &r.Name, &r.Email, &r.UserType, &r.Company, &r.Role, &r.Answers,
			&r.Status, &r.Timestamp, &r.Subject, &r.Body, &r.ModelUsed,
			&r.GithubURL, &r.LinkedinURL, &r.Source)
		r.Timestamp = r.Timestamp.UTC()
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan visitor_records: %w", err)
	}
	return records, nil
}

func (p *Postgres) Append(ctx context.Context, r Record) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO visitor_records (id, name, email, user_type, company, role, answers, status, timestamp,
		                             subject, body, model_used, github_url, linkedin_url, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		r.ID, r.Name, r.Email, r.UserType, r.Company, r.Role, r.Answers, r.Status, r.Timestamp,
		r.Subject, r.Body, r.ModelUsed, r.GithubURL, r.LinkedinURL, r.Source,
	)
	if err != nil {
		return fmt.Errorf("insert visitor record: %w", err)
	}
	return nil
}

// Update rewrites the mutable columns of the pos-th row in seq order. The
// id and seq never change.
func (p *Postgres) Update(ctx context.Context, pos int, r Record) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE visitor_records
		SET name = $2, email = $3, user_type = $4, company = $5, role = $6, answers = $7,
		    status = $8, timestamp = $9, subject = $10, body = $11, model_used = $12,
		    github_url = $13, linkedin_url = $14, source = $15
		WHERE seq = (SELECT seq FROM visitor_records ORDER BY seq OFFSET $1 LIMIT 1)`,
		pos, r.Name, r.Email, r.UserType, r.Company, r.Role, r.Answers, r.Status, r.Timestamp,
		r.Subject, r.Body, r.ModelUsed, r.GithubURL, r.LinkedinURL, r.Source,
	)
	if err != nil {
		return fmt.Errorf("update visitor record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record position %d not found", pos)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
