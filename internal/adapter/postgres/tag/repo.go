// Package tag implements the tagging collaborator: free-text tags attached
// to glosses. Tag absence is an expected state, not an error: resolution
// callers treat a missing tag as "no filtering".
package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// TaggedGlossIDs returns the set of gloss IDs carrying the named tag.
// If the tag is not defined in the system at all, it returns a nil set and
// no error; callers skip filtering in that case.
func (r *Repo) TaggedGlossIDs(ctx context.Context, name string) (map[int64]struct{}, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var tagID int64
	err := querier.QueryRow(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	rows, err := querier.Query(ctx, `SELECT gloss_id FROM gloss_tags WHERE tag_id = $1`, tagID)
	if err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tagged gloss: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "tag", name)
	}

	return ids, nil
}

// TagsForGloss returns the tag names attached to a gloss, name-ordered.
func (r *Repo) TagsForGloss(ctx context.Context, glossID int64) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT t.name
		FROM tags t
		JOIN gloss_tags gt ON gt.tag_id = t.id
		WHERE gt.gloss_id = $1
		ORDER BY t.name`, glossID)
	if err != nil {
		return nil, postgres.MapError(err, "gloss tags", glossID)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "gloss tags", glossID)
	}

	return names, nil
}

// Attach tags a gloss, creating the tag on first use. Idempotent.
func (r *Repo) Attach(ctx context.Context, glossID int64, name string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var tagID int64
	err := querier.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&tagID)
	if err != nil {
		return postgres.MapError(err, "tag", name)
	}

	_, err = querier.Exec(ctx, `
		INSERT INTO gloss_tags (gloss_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (gloss_id, tag_id) DO NOTHING`, glossID, tagID)
	return postgres.MapError(err, "gloss tag", glossID)
}

// Detach removes one tag from a gloss.
func (r *Repo) Detach(ctx context.Context, glossID int64, name string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `
		DELETE FROM gloss_tags gt
		USING tags t
		WHERE gt.tag_id = t.id AND gt.gloss_id = $1 AND t.name = $2`, glossID, name)
	return postgres.MapError(err, "gloss tag", glossID)
}
