// Package relation implements persistence for the three cross-reference edge
// kinds owned by a gloss: gloss-to-gloss relations, morphology definitions,
// and relations to signs in other sign languages.
package relation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides cross-reference persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new relation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Gloss-to-gloss relations
// ---------------------------------------------------------------------------

// CreateRelation inserts a directed source→target edge.
func (r *Repo) CreateRelation(ctx context.Context, rel domain.Relation) (domain.Relation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, `
		INSERT INTO relations (source_id, target_id, role)
		VALUES ($1, $2, $3)
		RETURNING id`, rel.SourceID, rel.TargetID, rel.Role).Scan(&rel.ID)
	if err != nil {
		return domain.Relation{}, postgres.MapError(err, "relation", rel.SourceID)
	}

	return rel, nil
}

// ListBySource returns the edges originating at a gloss, in source order.
func (r *Repo) ListBySource(ctx context.Context, sourceID int64) ([]domain.Relation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT id, source_id, target_id, role
		FROM relations
		WHERE source_id = $1
		ORDER BY source_id, id`, sourceID)
	if err != nil {
		return nil, postgres.MapError(err, "relations", sourceID)
	}
	defer rows.Close()

	var rels []domain.Relation
	for rows.Next() {
		var rel domain.Relation
		if err := rows.Scan(&rel.ID, &rel.SourceID, &rel.TargetID, &rel.Role); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		rels = append(rels, rel)
	}

	return rels, rows.Err()
}

// ---------------------------------------------------------------------------
// Morphology definitions
// ---------------------------------------------------------------------------

// CreateMorphology records a morpheme as a constituent of a parent gloss.
func (r *Repo) CreateMorphology(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, `
		INSERT INTO morphology_definitions (parent_gloss_id, role, morpheme_id)
		VALUES ($1, $2, $3)
		RETURNING id`, md.ParentGlossID, md.Role, md.MorphemeID).Scan(&md.ID)
	if err != nil {
		return domain.MorphologyDefinition{}, postgres.MapError(err, "morphology definition", md.ParentGlossID)
	}

	return md, nil
}

// ListByParent returns the morphological constituents of a gloss.
func (r *Repo) ListByParent(ctx context.Context, parentGlossID int64) ([]domain.MorphologyDefinition, error) {
	return r.listMorphology(ctx, "parent_gloss_id", parentGlossID)
}

// ListByMorpheme returns the glosses this gloss is a constituent of.
func (r *Repo) ListByMorpheme(ctx context.Context, morphemeID int64) ([]domain.MorphologyDefinition, error) {
	return r.listMorphology(ctx, "morpheme_id", morphemeID)
}

func (r *Repo) listMorphology(ctx context.Context, column string, id int64) ([]domain.MorphologyDefinition, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, fmt.Sprintf(`
		SELECT id, parent_gloss_id, role, morpheme_id
		FROM morphology_definitions
		WHERE %s = $1
		ORDER BY id`, column), id)
	if err != nil {
		return nil, postgres.MapError(err, "morphology definitions", id)
	}
	defer rows.Close()

	var defs []domain.MorphologyDefinition
	for rows.Next() {
		var md domain.MorphologyDefinition
		if err := rows.Scan(&md.ID, &md.ParentGlossID, &md.Role, &md.MorphemeID); err != nil {
			return nil, fmt.Errorf("scan morphology definition: %w", err)
		}
		defs = append(defs, md)
	}

	return defs, rows.Err()
}

// ---------------------------------------------------------------------------
// Relations to foreign signs
// ---------------------------------------------------------------------------

// CreateForeign records a correspondence to a sign in another sign language.
func (r *Repo) CreateForeign(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	err := querier.QueryRow(ctx, `
		INSERT INTO relations_to_foreign_signs (gloss_id, loan, other_lang, other_lang_gloss)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, f.GlossID, f.Loan, f.OtherLang, f.OtherLangGloss).Scan(&f.ID)
	if err != nil {
		return domain.RelationToForeignSign{}, postgres.MapError(err, "foreign relation", f.GlossID)
	}

	return f, nil
}

// ListForeignByGloss returns a gloss's foreign-sign notes in natural
// (gloss, loan, other_lang, other_lang_gloss) order.
func (r *Repo) ListForeignByGloss(ctx context.Context, glossID int64) ([]domain.RelationToForeignSign, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, `
		SELECT id, gloss_id, loan, other_lang, other_lang_gloss
		FROM relations_to_foreign_signs
		WHERE gloss_id = $1
		ORDER BY gloss_id, loan, other_lang, other_lang_gloss`, glossID)
	if err != nil {
		return nil, postgres.MapError(err, "foreign relations", glossID)
	}
	defer rows.Close()

	var rels []domain.RelationToForeignSign
	for rows.Next() {
		var f domain.RelationToForeignSign
		if err := rows.Scan(&f.ID, &f.GlossID, &f.Loan, &f.OtherLang, &f.OtherLangGloss); err != nil {
			return nil, fmt.Errorf("scan foreign relation: %w", err)
		}
		rels = append(rels, f)
	}

	return rels, rows.Err()
}
