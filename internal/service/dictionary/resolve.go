package dictionary

import (
	"context"
	"fmt"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

// ResolveResult is the outcome of a keyword resolution: the selected
// translation plus the total number of matches visible to the viewer.
type ResolveResult struct {
	Translation domain.Translation
	TotalCount  int
}

// ResolveKeyword resolves "the n-th gloss for word W" in the given
// vocabulary, honoring the viewer's visibility.
//
// Viewers holding the gloss-search capability see every translation; everyone
// else sees only translations of web-published glosses. On top of that,
// anonymous traffic with safe search enabled never sees glosses tagged as
// crude. An ordinal outside [1, total] clamps to the last match so stale deep
// links degrade instead of erroring.
func (s *Service) ResolveKeyword(ctx context.Context, vocab domain.Vocabulary, word string, ordinal int) (*ResolveResult, error) {
	if !vocab.IsValid() {
		return nil, domain.NewValidationError("vocabulary", fmt.Sprintf("unknown vocabulary %q", vocab))
	}

	viewer := ctxutil.ViewerFromCtx(ctx)
	fullView := viewer.Can(domain.PermSearchGloss)

	candidates, err := s.translations.ListByKeyword(ctx, vocab, word, !fullView)
	if err != nil {
		return nil, fmt.Errorf("list translations for %q: %w", word, err)
	}

	if !viewer.Authenticated() && s.cfg.AnonSafeSearch {
		candidates, err = s.dropCrude(ctx, candidates)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("keyword %q: %w", word, domain.ErrNotFound)
	}

	idx := ordinal - 1
	if idx < 0 || idx >= len(candidates) {
		idx = len(candidates) - 1
	}

	return &ResolveResult{
		Translation: candidates[idx],
		TotalCount:  len(candidates),
	}, nil
}

// dropCrude removes candidates whose gloss carries the crude content tag.
// A tag that does not exist in the system disables the filter.
func (s *Service) dropCrude(ctx context.Context, candidates []domain.Translation) ([]domain.Translation, error) {
	crude, err := s.tags.TaggedGlossIDs(ctx, domain.TagCrude)
	if err != nil {
		return nil, fmt.Errorf("crude tag lookup: %w", err)
	}
	if crude == nil {
		return candidates, nil
	}

	filtered := candidates[:0]
	for _, tr := range candidates {
		if _, tagged := crude[tr.GlossID]; !tagged {
			filtered = append(filtered, tr)
		}
	}

	return filtered, nil
}

// KeywordInWebDictionary reports whether the word resolves to at least one
// web-published gloss. Used by the public UI to distinguish "unknown word"
// from "known but unpublished".
func (s *Service) KeywordInWebDictionary(ctx context.Context, vocab domain.Vocabulary, word string) (bool, error) {
	if !vocab.IsValid() {
		return false, domain.NewValidationError("vocabulary", fmt.Sprintf("unknown vocabulary %q", vocab))
	}

	return s.keywords.InWebDictionary(ctx, vocab, word)
}
