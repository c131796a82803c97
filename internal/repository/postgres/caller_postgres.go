package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"calldash/internal/model"
	"calldash/internal/repository"
)

// CallerPostgres is a PostgreSQL implementation of repository.CallerRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CallerPostgres struct {
	db *sql.DB
}

// NewCallerPostgres creates a new CallerPostgres repository.
func NewCallerPostgres(db *sql.DB) *CallerPostgres {
	return &CallerPostgres{db: db}
}

var _ repository.CallerRepository = (*CallerPostgres)(nil)

// selectCaller aggregates tags into one comma separated column so a page is a single query.
const selectCaller = `
	SELECT c.id, c.phone_number, c.display_name, c.organization,
	       c.total_calls, c.total_duration_sec, c.last_call_at, c.created_at,
	       COALESCE((SELECT string_agg(t.tag, ',' ORDER BY t.tag) FROM caller_tags t WHERE t.caller_id = c.id), '') AS tags
	FROM callers c
`

// filterWhere takes organization, tag and search as $1..$3; empty values match everything.
const filterWhere = `
	WHERE ($1 = '' OR c.organization = $1)
	  AND ($2 = '' OR EXISTS (SELECT 1 FROM caller_tags t WHERE t.caller_id = c.id AND t.tag = $2))
	  AND ($3 = '' OR c.phone_number ILIKE '%' || $3 || '%' OR c.display_name ILIKE '%' || $3 || '%')
`

type scanner interface {
	Scan(dest ...any) error
}

func scanCaller(s scanner) (model.Caller, error) {
	var (
		c    model.Caller
		tags string
	)
	if err := s.Scan(
		&c.ID,
		&c.PhoneNumber,
		&c.DisplayName,
		&c.Organization,
		&c.TotalCalls,
		&c.TotalDurationSec,
		&c.LastCallAt,
		&c.CreatedAt,
		&tags,
	); err != nil {
		return model.Caller{}, err
	}
	c.Tags = splitTags(tags)
	if c.TotalCalls > 0 {
		c.AvgDurationSec = float64(c.TotalDurationSec) / float64(c.TotalCalls)
	}
	return c, nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// Create inserts the caller row and its tags in a single transaction.
func (r *CallerPostgres) Create(ctx context.Context, c *model.Caller) (*model.Caller, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qInsert = `
		INSERT INTO callers (id, phone_number, display_name, organization, total_calls, total_duration_sec, last_call_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, phone_number, display_name, organization, total_calls, total_duration_sec, last_call_at, created_at
	`
	var out model.Caller
	if err := tx.QueryRowContext(ctx, qInsert,
		c.ID,
		c.PhoneNumber,
		c.DisplayName,
		c.Organization,
		c.TotalCalls,
		c.TotalDurationSec,
		c.LastCallAt,
		c.CreatedAt,
	).Scan(
		&out.ID,
		&out.PhoneNumber,
		&out.DisplayName,
		&out.Organization,
		&out.TotalCalls,
		&out.TotalDurationSec,
		&out.LastCallAt,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}

	const qTag = `INSERT INTO caller_tags (caller_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, tag := range c.Tags {
		if _, err := tx.ExecContext(ctx, qTag, out.ID, tag); err != nil {
			return nil, fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	out.Tags = append([]string{}, c.Tags...)
	if out.TotalCalls > 0 {
		out.AvgDurationSec = float64(out.TotalDurationSec) / float64(out.TotalCalls)
	}
	return &out, nil
}

// FindByID fetches a single caller by its ID.
func (r *CallerPostgres) FindByID(ctx context.Context, id string) (*model.Caller, error) {
	row := r.db.QueryRowContext(ctx, selectCaller+` WHERE c.id = $1`, id)
	c, err := scanCaller(row)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns callers using LIMIT/OFFSET pagination and a total count, most recent callers first.
func (r *CallerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Caller], error) {
	f := pq.Filter

	var total int
	qCount := `SELECT COUNT(*) FROM callers c` + filterWhere
	if err := r.db.QueryRowContext(ctx, qCount, f.Organization, f.Tag, f.Search).Scan(&total); err != nil {
		return nil, err
	}

	qList := selectCaller + filterWhere + `
		ORDER BY c.last_call_at DESC, c.id DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.QueryContext(ctx, qList, f.Organization, f.Tag, f.Search, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Caller, 0)
	for rows.Next() {
		c, err := scanCaller(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Caller]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a caller by ID. Tags go with it through ON DELETE CASCADE.
func (r *CallerPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM callers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
