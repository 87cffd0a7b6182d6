package dictionary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

func translationsFixture(n int) []domain.Translation {
	trs := make([]domain.Translation, 0, n)
	for i := 0; i < n; i++ {
		glossID := int64(100 + i)
		trs = append(trs, domain.Translation{
			ID:      int64(i + 1),
			GlossID: glossID,
			Index:   i,
			Gloss: &domain.GlossSummary{
				ID:              glossID,
				IDGloss:         fmt.Sprintf("GLOSS-%d", i+1),
				InWebDictionary: true,
			},
		})
	}
	return trs
}

func TestResolveKeywordNthMatch(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(3), nil
	}

	for ordinal, wantID := range map[int]int64{1: 1, 2: 2, 3: 3} {
		res, err := svc.ResolveKeyword(editorCtx(), domain.VocabularyFinnish, "hello", ordinal)
		require.NoError(t, err)
		assert.Equal(t, wantID, res.Translation.ID, "ordinal %d", ordinal)
		assert.Equal(t, 3, res.TotalCount)
	}
}

func TestResolveKeywordOrdinalOverflowClampsToLast(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(3), nil
	}

	for _, ordinal := range []int{4, 99, 0, -5} {
		res, err := svc.ResolveKeyword(editorCtx(), domain.VocabularyFinnish, "hello", ordinal)
		require.NoError(t, err)
		assert.Equal(t, int64(3), res.Translation.ID, "ordinal %d", ordinal)
		assert.Equal(t, 3, res.TotalCount)
	}
}

func TestResolveKeywordEmptyIsNotFound(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return []domain.Translation{}, nil
	}

	_, err := svc.ResolveKeyword(editorCtx(), domain.VocabularyEnglish, "missing", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResolveKeywordVisibility(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})

	var gotPublishedOnly bool
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		gotPublishedOnly = publishedOnly
		return translationsFixture(1), nil
	}

	// Full-view capability sees everything.
	_, err := svc.ResolveKeyword(editorCtx(domain.PermSearchGloss), domain.VocabularyFinnish, "hello", 1)
	require.NoError(t, err)
	assert.False(t, gotPublishedOnly)

	// Authenticated without the capability is restricted to published glosses.
	_, err = svc.ResolveKeyword(editorCtx(), domain.VocabularyFinnish, "hello", 1)
	require.NoError(t, err)
	assert.True(t, gotPublishedOnly)
}

func TestResolveKeywordAnonSafeSearchDropsCrude(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{AnonSafeSearch: true})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(3), nil
	}
	d.tags.TaggedGlossIDsFunc = func(ctx context.Context, name string) (map[int64]struct{}, error) {
		assert.Equal(t, domain.TagCrude, name)
		return map[int64]struct{}{101: {}}, nil
	}

	res, err := svc.ResolveKeyword(anonymousCtx(), domain.VocabularyFinnish, "hello", 2)
	require.NoError(t, err)

	// Gloss 101 (second candidate) is filtered out; count reflects it.
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, int64(102), res.Translation.GlossID)
}

func TestResolveKeywordCrudeTagUndefinedIsNoOp(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{AnonSafeSearch: true})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(2), nil
	}
	d.tags.TaggedGlossIDsFunc = func(ctx context.Context, name string) (map[int64]struct{}, error) {
		return nil, nil
	}

	res, err := svc.ResolveKeyword(anonymousCtx(), domain.VocabularyFinnish, "hello", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
}

func TestResolveKeywordSafeSearchSkippedForAuthenticated(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{AnonSafeSearch: true})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(2), nil
	}

	tagCalls := 0
	d.tags.TaggedGlossIDsFunc = func(ctx context.Context, name string) (map[int64]struct{}, error) {
		tagCalls++
		return map[int64]struct{}{100: {}, 101: {}}, nil
	}

	res, err := svc.ResolveKeyword(editorCtx(), domain.VocabularyFinnish, "hello", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	assert.Zero(t, tagCalls)
}

func TestResolveKeywordAllCandidatesCrudeIsNotFound(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{AnonSafeSearch: true})
	d.translations.ListByKeywordFunc = func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
		return translationsFixture(2), nil
	}
	d.tags.TaggedGlossIDsFunc = func(ctx context.Context, name string) (map[int64]struct{}, error) {
		return map[int64]struct{}{100: {}, 101: {}}, nil
	}

	_, err := svc.ResolveKeyword(anonymousCtx(), domain.VocabularyFinnish, "hello", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResolveKeywordInvalidVocabulary(t *testing.T) {
	svc, _ := newTestService(config.DictionaryConfig{})

	_, err := svc.ResolveKeyword(editorCtx(), domain.Vocabulary("swe"), "hej", 1)

	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestKeywordInWebDictionary(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.keywords.InWebDictionaryFunc = func(ctx context.Context, vocab domain.Vocabulary, text string) (bool, error) {
		return text == "known", nil
	}

	ok, err := svc.KeywordInWebDictionary(context.Background(), domain.VocabularyFinnish, "known")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.KeywordInWebDictionary(context.Background(), domain.VocabularyFinnish, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}
