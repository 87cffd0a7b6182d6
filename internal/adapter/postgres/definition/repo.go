// Package definition implements persistence for free-text gloss notes.
package definition

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides definition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new definition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByGlossSQL = `
SELECT id, gloss_id, text, role, count, published
FROM definitions
WHERE gloss_id = $1
ORDER BY gloss_id, role, count`

const listPublishedSQL = `
SELECT id, gloss_id, text, role, count, published
FROM definitions
WHERE gloss_id = $1 AND published AND role = ANY($2)
ORDER BY gloss_id, role, count`

const createSQL = `
INSERT INTO definitions (gloss_id, text, role, count, published)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

const deleteSQL = `DELETE FROM definitions WHERE id = $1`

// ListByGloss returns all definitions for a gloss, published or not, in
// natural (role, count) order.
func (r *Repo) ListByGloss(ctx context.Context, glossID int64) ([]domain.Definition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByGlossSQL, glossID)
	if err != nil {
		return nil, postgres.MapError(err, "definitions", glossID)
	}
	defer rows.Close()

	defs, err := scanDefinitions(rows)
	if err != nil {
		return nil, postgres.MapError(err, "definitions", glossID)
	}

	return defs, nil
}

// ListPublishedByGloss returns the gloss's published definitions whose role
// is in the allow-list, in natural order.
func (r *Repo) ListPublishedByGloss(ctx context.Context, glossID int64, roles []string) ([]domain.Definition, error) {
	if len(roles) == 0 {
		return []domain.Definition{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listPublishedSQL, glossID, roles)
	if err != nil {
		return nil, postgres.MapError(err, "definitions", glossID)
	}
	defer rows.Close()

	defs, err := scanDefinitions(rows)
	if err != nil {
		return nil, postgres.MapError(err, "definitions", glossID)
	}

	return defs, nil
}

// Create inserts one definition.
func (r *Repo) Create(ctx context.Context, d domain.Definition) (domain.Definition, error) {
	if !d.Role.IsValid() {
		return domain.Definition{}, domain.NewValidationError("role", fmt.Sprintf("unknown role %q", d.Role))
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, createSQL, d.GlossID, d.Text, d.Role, d.Count, d.Published).Scan(&d.ID)
	if err != nil {
		return domain.Definition{}, postgres.MapError(err, "definition", d.GlossID)
	}

	return d, nil
}

// Delete removes a definition by ID. Returns domain.ErrNotFound if 0 rows
// affected.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "definition", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("definition %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanDefinitions(rows pgx.Rows) ([]domain.Definition, error) {
	var defs []domain.Definition
	for rows.Next() {
		var d domain.Definition
		if err := rows.Scan(&d.ID, &d.GlossID, &d.Text, &d.Role, &d.Count, &d.Published); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if defs == nil {
		defs = []domain.Definition{}
	}

	return defs, nil
}
