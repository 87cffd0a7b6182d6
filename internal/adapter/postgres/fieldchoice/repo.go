// Package fieldchoice implements the lookup-store repository: (field, label,
// machine value) rows backing every dynamic choice list.
package fieldchoice

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides field-choice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new field-choice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByFieldSQL = `
SELECT id, field, english_name, machine_value
FROM field_choices
WHERE field = $1
ORDER BY field, machine_value`

const listAllSQL = `
SELECT id, field, english_name, machine_value
FROM field_choices
ORDER BY field, machine_value`

const insertSQL = `
INSERT INTO field_choices (field, english_name, machine_value)
VALUES ($1, $2, $3)
RETURNING id`

// ListByField returns the choices for one field in stable
// (field, machine_value) order. A missing field_choices table maps to
// domain.ErrStoreUninitialized.
func (r *Repo) ListByField(ctx context.Context, field string) ([]domain.FieldChoice, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByFieldSQL, field)
	if err != nil {
		return nil, postgres.MapError(err, "field choices", field)
	}
	defer rows.Close()

	choices, err := scanChoices(rows)
	if err != nil {
		return nil, postgres.MapError(err, "field choices", field)
	}

	return choices, nil
}

// ListAll returns every lookup row, all fields, in stable
// (field, machine_value) order. Used to build the in-memory choices cache.
func (r *Repo) ListAll(ctx context.Context) ([]domain.FieldChoice, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAllSQL)
	if err != nil {
		return nil, postgres.MapError(err, "field choices", "all")
	}
	defer rows.Close()

	choices, err := scanChoices(rows)
	if err != nil {
		return nil, postgres.MapError(err, "field choices", "all")
	}

	return choices, nil
}

// Insert adds one lookup row. Duplicate machine values violate the global
// unique constraint and surface as domain.ErrAlreadyExists.
func (r *Repo) Insert(ctx context.Context, fc domain.FieldChoice) (domain.FieldChoice, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, insertSQL, fc.Field, fc.EnglishName, fc.MachineValue).Scan(&fc.ID)
	if err != nil {
		return domain.FieldChoice{}, postgres.MapError(err, "field choice", fc.MachineValue)
	}

	return fc, nil
}

func scanChoices(rows pgx.Rows) ([]domain.FieldChoice, error) {
	var choices []domain.FieldChoice
	for rows.Next() {
		var fc domain.FieldChoice
		if err := rows.Scan(&fc.ID, &fc.Field, &fc.EnglishName, &fc.MachineValue); err != nil {
			return nil, fmt.Errorf("scan field choice: %w", err)
		}
		choices = append(choices, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if choices == nil {
		choices = []domain.FieldChoice{}
	}

	return choices, nil
}
