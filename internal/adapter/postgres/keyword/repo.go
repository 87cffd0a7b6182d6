// Package keyword implements keyword persistence. One table serves both
// vocabularies; rows are keyed by (vocabulary, text).
package keyword

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/finsl/signbank-backend/internal/adapter/postgres"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Repo provides keyword persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new keyword repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByTextSQL = `
SELECT id, vocabulary, text
FROM keywords
WHERE vocabulary = $1 AND text = $2`

const getOrCreateSQL = `
INSERT INTO keywords (vocabulary, text)
VALUES ($1, $2)
ON CONFLICT (vocabulary, text) DO UPDATE SET text = EXCLUDED.text
RETURNING id, vocabulary, text`

const inWebDictionarySQL = `
SELECT EXISTS (
    SELECT 1
    FROM translations t
    JOIN keywords k ON t.keyword_id = k.id
    JOIN glosses g ON t.gloss_id = g.id
    WHERE k.vocabulary = $1 AND k.text = $2 AND g.in_web_dictionary
)`

// GetByText returns the keyword with the given text in the given vocabulary.
func (r *Repo) GetByText(ctx context.Context, vocab domain.Vocabulary, text string) (*domain.Keyword, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var kw domain.Keyword
	err := querier.QueryRow(ctx, getByTextSQL, vocab, text).Scan(&kw.ID, &kw.Vocabulary, &kw.Text)
	if err != nil {
		return nil, postgres.MapError(err, "keyword", text)
	}

	return &kw, nil
}

// GetOrCreate returns the existing keyword or creates it on first use.
// Keyword text is immutable; the conflict branch only re-reads the row.
func (r *Repo) GetOrCreate(ctx context.Context, vocab domain.Vocabulary, text string) (*domain.Keyword, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var kw domain.Keyword
	err := querier.QueryRow(ctx, getOrCreateSQL, vocab, text).Scan(&kw.ID, &kw.Vocabulary, &kw.Text)
	if err != nil {
		return nil, postgres.MapError(err, "keyword", text)
	}

	return &kw, nil
}

// InWebDictionary reports whether any gloss associated with the keyword is
// published in the web dictionary.
func (r *Repo) InWebDictionary(ctx context.Context, vocab domain.Vocabulary, text string) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var ok bool
	if err := querier.QueryRow(ctx, inWebDictionarySQL, vocab, text).Scan(&ok); err != nil {
		return false, postgres.MapError(err, "keyword", text)
	}

	return ok, nil
}
