package dictionary

import (
	"context"
	"fmt"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/internal/media"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetGloss returns one gloss with its language and dialect associations.
// Unpublished glosses are visible only to viewers with the gloss-search
// capability.
func (s *Service) GetGloss(ctx context.Context, id int64) (*domain.Gloss, error) {
	g, err := s.glosses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.finishRead(ctx, g)
}

// GetGlossByName returns one gloss by its unique headword.
func (s *Service) GetGlossByName(ctx context.Context, idgloss string) (*domain.Gloss, error) {
	g, err := s.glosses.GetByIDGloss(ctx, idgloss)
	if err != nil {
		return nil, err
	}

	return s.finishRead(ctx, g)
}

func (s *Service) finishRead(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !g.InWebDictionary && !viewer.Can(domain.PermSearchGloss) {
		return nil, fmt.Errorf("gloss %d: %w", g.ID, domain.ErrNotFound)
	}

	if err := s.glosses.LoadLanguages(ctx, g); err != nil {
		return nil, fmt.Errorf("load languages: %w", err)
	}
	if err := s.glosses.LoadDialects(ctx, g); err != nil {
		return nil, fmt.Errorf("load dialects: %w", err)
	}

	return g, nil
}

// FindGlosses searches the dictionary. Viewers without the gloss-search
// capability are restricted to web-published entries regardless of the filter.
func (s *Service) FindGlosses(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		published := true
		filter.InWebDictionary = &published
	}

	return s.glosses.Find(ctx, filter)
}

// Translations returns the gloss's keyword associations in one vocabulary, in
// natural order, with the index-aligned keyword texts.
func (s *Service) Translations(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error) {
	if !vocab.IsValid() {
		return nil, nil, domain.NewValidationError("vocabulary", fmt.Sprintf("unknown vocabulary %q", vocab))
	}

	return s.translations.ListByGloss(ctx, glossID, vocab)
}

// Tags returns the free-text tags attached to a gloss.
func (s *Service) Tags(ctx context.Context, glossID int64) ([]string, error) {
	return s.tags.TagsForGloss(ctx, glossID)
}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

// PublishedDefinitions returns the gloss's published definitions whose role
// is in the configured public allow-list, in natural order.
func (s *Service) PublishedDefinitions(ctx context.Context, glossID int64) ([]domain.Definition, error) {
	return s.definitions.ListPublishedByGloss(ctx, glossID, s.cfg.PublicDefinitionRoles)
}

// DefinitionsGrouped returns every definition of the gloss grouped by role,
// each group ordered by count ascending. Editorial view, no publish filter.
func (s *Service) DefinitionsGrouped(ctx context.Context, glossID int64) (map[domain.DefinitionRole][]string, error) {
	defs, err := s.definitions.ListByGloss(ctx, glossID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[domain.DefinitionRole][]string)
	for _, d := range defs {
		grouped[d.Role] = append(grouped[d.Role], d.Text)
	}

	return grouped, nil
}

// ---------------------------------------------------------------------------
// Derived accessors
// ---------------------------------------------------------------------------

// VideoPath returns the storage key of the gloss's sign video.
func (s *Service) VideoPath(g *domain.Gloss) string {
	return media.VideoPath(g.IDGloss, g.ID)
}

// HasVideo reports whether a video file exists for the gloss.
func (s *Service) HasVideo(g *domain.Gloss) bool {
	return s.videos.Has(g.IDGloss, g.ID)
}

// AttributeLabels resolves the gloss's lookup-backed attribute codes to
// display labels. Unset attributes and codes missing from the cache are
// omitted.
func (s *Service) AttributeLabels(g *domain.Gloss) map[string]string {
	labels := make(map[string]string)
	for field, code := range g.AttributeCodes() {
		if code == nil {
			continue
		}
		if label, ok := s.labels.Label(*code); ok {
			labels[field] = label
		}
	}

	return labels
}
