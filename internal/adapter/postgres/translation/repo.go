// Package translation implements gloss↔keyword association persistence.
// Keyword-joined reads carry a summary of the owning gloss so callers can
// apply visibility and tag filtering without extra round trips.
package translation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides translation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new translation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByKeywordSQL = `
SELECT t.id, t.gloss_id, t.keyword_id, t.index,
       g.id, g.idgloss, g.in_web_dictionary
FROM translations t
JOIN keywords k ON t.keyword_id = k.id
JOIN glosses g ON t.gloss_id = g.id
WHERE k.vocabulary = $1 AND k.text = $2
ORDER BY t.gloss_id, t.index`

const listByKeywordPublishedSQL = `
SELECT t.id, t.gloss_id, t.keyword_id, t.index,
       g.id, g.idgloss, g.in_web_dictionary
FROM translations t
JOIN keywords k ON t.keyword_id = k.id
JOIN glosses g ON t.gloss_id = g.id
WHERE k.vocabulary = $1 AND k.text = $2 AND g.in_web_dictionary
ORDER BY t.gloss_id, t.index`

const listByGlossSQL = `
SELECT t.id, t.gloss_id, t.keyword_id, t.index, k.text
FROM translations t
JOIN keywords k ON t.keyword_id = k.id
WHERE t.gloss_id = $1 AND k.vocabulary = $2
ORDER BY t.gloss_id, t.index`

const createSQL = `
INSERT INTO translations (gloss_id, keyword_id, index)
VALUES ($1, $2, $3)
RETURNING id`

const deleteSQL = `DELETE FROM translations WHERE id = $1`

// ListByKeyword returns all translations whose keyword matches (vocabulary,
// text) in natural (gloss, index) order. With publishedOnly set, only
// translations of web-published glosses are returned.
func (r *Repo) ListByKeyword(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql := listByKeywordSQL
	if publishedOnly {
		sql = listByKeywordPublishedSQL
	}

	rows, err := querier.Query(ctx, sql, vocab, text)
	if err != nil {
		return nil, postgres.MapError(err, "translations", text)
	}
	defer rows.Close()

	translations, err := scanJoined(rows)
	if err != nil {
		return nil, postgres.MapError(err, "translations", text)
	}

	return translations, nil
}

// ListByGloss returns the gloss's translations in one vocabulary, in natural
// order, together with the index-aligned keyword texts.
func (r *Repo) ListByGloss(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByGlossSQL, glossID, vocab)
	if err != nil {
		return nil, nil, postgres.MapError(err, "translations", glossID)
	}
	defer rows.Close()

	var (
		translations []domain.Translation
		words        []string
	)
	for rows.Next() {
		var (
			tr   domain.Translation
			word string
		)
		if err := rows.Scan(&tr.ID, &tr.GlossID, &tr.KeywordID, &tr.Index, &word); err != nil {
			return nil, nil, fmt.Errorf("scan translation: %w", err)
		}
		translations = append(translations, tr)
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, postgres.MapError(err, "translations", glossID)
	}

	return translations, words, nil
}

// Create inserts one translation row.
func (r *Repo) Create(ctx context.Context, glossID, keywordID int64, index int) (*domain.Translation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tr := domain.Translation{GlossID: glossID, KeywordID: keywordID, Index: index}
	if err := querier.QueryRow(ctx, createSQL, glossID, keywordID, index).Scan(&tr.ID); err != nil {
		return nil, postgres.MapError(err, "translation", glossID)
	}

	return &tr, nil
}

// Delete removes a translation by ID. Returns domain.ErrNotFound if 0 rows
// affected.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "translation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("translation %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanJoined(rows pgx.Rows) ([]domain.Translation, error) {
	var translations []domain.Translation
	for rows.Next() {
		var (
			tr domain.Translation
			gs domain.GlossSummary
		)
		if err := rows.Scan(&tr.ID, &tr.GlossID, &tr.KeywordID, &tr.Index,
			&gs.ID, &gs.IDGloss, &gs.InWebDictionary); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		tr.Gloss = &gs
		translations = append(translations, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if translations == nil {
		translations = []domain.Translation{}
	}

	return translations, nil
}
