package dictionary

import (
	"context"
	"fmt"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

// CrossReferences bundles every cross-reference kind a gloss owns: edges to
// other glosses, morphological decomposition (both directions), and
// correspondences to signs in other sign languages.
type CrossReferences struct {
	Relations  []domain.Relation
	Morphology []domain.MorphologyDefinition
	AppearsIn  []domain.MorphologyDefinition
	Foreign    []domain.RelationToForeignSign
}

// CrossReferencesFor returns all cross-references of a gloss. Visibility
// follows the gloss itself.
func (s *Service) CrossReferencesFor(ctx context.Context, glossID int64) (*CrossReferences, error) {
	g, err := s.glosses.GetByID(ctx, glossID)
	if err != nil {
		return nil, err
	}

	viewer := ctxutil.ViewerFromCtx(ctx)
	if !g.InWebDictionary && !viewer.Can(domain.PermSearchGloss) {
		return nil, fmt.Errorf("gloss %d: %w", g.ID, domain.ErrNotFound)
	}

	refs := &CrossReferences{}

	if refs.Relations, err = s.relations.ListBySource(ctx, glossID); err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	if refs.Morphology, err = s.relations.ListByParent(ctx, glossID); err != nil {
		return nil, fmt.Errorf("list morphology: %w", err)
	}
	if refs.AppearsIn, err = s.relations.ListByMorpheme(ctx, glossID); err != nil {
		return nil, fmt.Errorf("list morpheme usages: %w", err)
	}
	if refs.Foreign, err = s.relations.ListForeignByGloss(ctx, glossID); err != nil {
		return nil, fmt.Errorf("list foreign relations: %w", err)
	}

	return refs, nil
}

// AddRelation creates a directed gloss-to-gloss edge. Both ends must exist.
func (s *Service) AddRelation(ctx context.Context, rel domain.Relation) (domain.Relation, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return domain.Relation{}, domain.ErrForbidden
	}
	if rel.SourceID == rel.TargetID {
		return domain.Relation{}, domain.NewValidationError("target_id", "relation must point at a different gloss")
	}

	if _, err := s.glosses.GetByID(ctx, rel.TargetID); err != nil {
		return domain.Relation{}, fmt.Errorf("target gloss: %w", err)
	}

	created, err := s.relations.CreateRelation(ctx, rel)
	if err != nil {
		return domain.Relation{}, err
	}

	s.log.Info("relation added", "source_id", created.SourceID, "target_id", created.TargetID)

	return created, nil
}

// AddMorphology records a morpheme as a constituent of a parent gloss.
func (s *Service) AddMorphology(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return domain.MorphologyDefinition{}, domain.ErrForbidden
	}
	if md.ParentGlossID == md.MorphemeID {
		return domain.MorphologyDefinition{}, domain.NewValidationError("morpheme_id", "a gloss cannot be its own morpheme")
	}

	if _, err := s.glosses.GetByID(ctx, md.MorphemeID); err != nil {
		return domain.MorphologyDefinition{}, fmt.Errorf("morpheme gloss: %w", err)
	}

	created, err := s.relations.CreateMorphology(ctx, md)
	if err != nil {
		return domain.MorphologyDefinition{}, err
	}

	s.log.Info("morphology added", "parent_gloss_id", created.ParentGlossID, "morpheme_id", created.MorphemeID)

	return created, nil
}

// AddForeignRelation notes that a gloss corresponds to a sign in another sign
// language.
func (s *Service) AddForeignRelation(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return domain.RelationToForeignSign{}, domain.ErrForbidden
	}
	if f.OtherLang == "" {
		return domain.RelationToForeignSign{}, domain.NewValidationError("other_lang", "must not be empty")
	}

	created, err := s.relations.CreateForeign(ctx, f)
	if err != nil {
		return domain.RelationToForeignSign{}, err
	}

	s.log.Info("foreign relation added", "gloss_id", created.GlossID, "other_lang", created.OtherLang)

	return created, nil
}
