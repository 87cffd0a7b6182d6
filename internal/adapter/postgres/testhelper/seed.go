package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedGloss inserts a minimal gloss and returns its ID.
func SeedGloss(t *testing.T, pool *pgxpool.Pool, idgloss string, inWebDictionary bool) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO glosses (idgloss, in_web_dictionary)
		VALUES ($1, $2)
		RETURNING id`, idgloss, inWebDictionary).Scan(&id)
	if err != nil {
		t.Fatalf("seed gloss %q: %v", idgloss, err)
	}

	return id
}

// SeedKeyword inserts a keyword and returns its ID.
func SeedKeyword(t *testing.T, pool *pgxpool.Pool, vocabulary, text string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO keywords (vocabulary, text)
		VALUES ($1, $2)
		ON CONFLICT (vocabulary, text) DO UPDATE SET text = EXCLUDED.text
		RETURNING id`, vocabulary, text).Scan(&id)
	if err != nil {
		t.Fatalf("seed keyword %q: %v", text, err)
	}

	return id
}

// SeedTranslation binds a keyword to a gloss at the given index.
func SeedTranslation(t *testing.T, pool *pgxpool.Pool, glossID, keywordID int64, index int) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO translations (gloss_id, keyword_id, index)
		VALUES ($1, $2, $3)
		RETURNING id`, glossID, keywordID, index).Scan(&id)
	if err != nil {
		t.Fatalf("seed translation gloss=%d keyword=%d: %v", glossID, keywordID, err)
	}

	return id
}

// SeedChoice inserts a field choice row.
func SeedChoice(t *testing.T, pool *pgxpool.Pool, field, englishName string, machineValue int) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO field_choices (field, english_name, machine_value)
		VALUES ($1, $2, $3)`, field, englishName, machineValue)
	if err != nil {
		t.Fatalf("seed choice %s/%d: %v", field, machineValue, err)
	}
}

// SeedDefinition inserts a definition row for a gloss.
func SeedDefinition(t *testing.T, pool *pgxpool.Pool, glossID int64, text, role string, count int, published bool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO definitions (gloss_id, text, role, count, published)
		VALUES ($1, $2, $3, $4, $5)`, glossID, text, role, count, published)
	if err != nil {
		t.Fatalf("seed definition gloss=%d: %v", glossID, err)
	}
}

// SeedTag attaches a named tag to a gloss, creating the tag on first use.
func SeedTag(t *testing.T, pool *pgxpool.Pool, glossID int64, name string) {
	t.Helper()

	ctx := context.Background()

	var tagID int64
	err := pool.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&tagID)
	if err != nil {
		t.Fatalf("seed tag %q: %v", name, err)
	}

	if _, err := pool.Exec(ctx, `
		INSERT INTO gloss_tags (gloss_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (gloss_id, tag_id) DO NOTHING`, glossID, tagID); err != nil {
		t.Fatalf("seed gloss tag gloss=%d tag=%q: %v", glossID, name, err)
	}
}
