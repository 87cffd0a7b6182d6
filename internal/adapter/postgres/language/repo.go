// Package language implements persistence for the Language and Dialect
// lookup entities.
package language

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides language and dialect persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new language repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListLanguages returns all languages in name order.
func (r *Repo) ListLanguages(ctx context.Context) ([]domain.Language, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT id, name, description
		FROM languages
		ORDER BY name`)
	if err != nil {
		return nil, postgres.MapError(err, "languages", "all")
	}
	defer rows.Close()

	var langs []domain.Language
	for rows.Next() {
		var l domain.Language
		if err := rows.Scan(&l.ID, &l.Name, &l.Description); err != nil {
			return nil, fmt.Errorf("scan language: %w", err)
		}
		langs = append(langs, l)
	}

	return langs, rows.Err()
}

// ListDialects returns all dialects in (language, name) order.
func (r *Repo) ListDialects(ctx context.Context) ([]domain.Dialect, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT id, language_id, name, description
		FROM dialects
		ORDER BY language_id, name`)
	if err != nil {
		return nil, postgres.MapError(err, "dialects", "all")
	}
	defer rows.Close()

	var dialects []domain.Dialect
	for rows.Next() {
		var d domain.Dialect
		if err := rows.Scan(&d.ID, &d.LanguageID, &d.Name, &d.Description); err != nil {
			return nil, fmt.Errorf("scan dialect: %w", err)
		}
		dialects = append(dialects, d)
	}

	return dialects, rows.Err()
}

// CreateLanguage inserts a language.
func (r *Repo) CreateLanguage(ctx context.Context, l domain.Language) (domain.Language, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, `
		INSERT INTO languages (name, description)
		VALUES ($1, $2)
		RETURNING id`, l.Name, l.Description).Scan(&l.ID)
	if err != nil {
		return domain.Language{}, postgres.MapError(err, "language", l.Name)
	}

	return l, nil
}

// CreateDialect inserts a dialect under its language.
func (r *Repo) CreateDialect(ctx context.Context, d domain.Dialect) (domain.Dialect, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, `
		INSERT INTO dialects (language_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id`, d.LanguageID, d.Name, d.Description).Scan(&d.ID)
	if err != nil {
		return domain.Dialect{}, postgres.MapError(err, "dialect", d.Name)
	}

	return d, nil
}
