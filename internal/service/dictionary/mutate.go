package dictionary

import (
	"context"
	"fmt"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

// CreateGloss inserts a new entry. Requires the gloss-search capability;
// publishing straight into the web dictionary additionally requires the
// publish capability.
func (s *Service) CreateGloss(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return nil, domain.ErrForbidden
	}
	if g.InWebDictionary && !viewer.Can(domain.PermPublish) {
		return nil, domain.ErrForbidden
	}

	if g.IDGloss == "" {
		return nil, domain.NewValidationError("idgloss", "must not be empty")
	}

	g.CreatedBy = &viewer.UserID
	g.UpdatedBy = &viewer.UserID

	created, err := s.glosses.Create(ctx, g)
	if err != nil {
		return nil, err
	}

	s.log.Info("gloss created", "gloss_id", created.ID, "idgloss", created.IDGloss)

	return created, nil
}

// UpdateGloss rewrites an entry. Locked entries need the lock capability;
// changing the publication flag needs the publish capability.
func (s *Service) UpdateGloss(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return nil, domain.ErrForbidden
	}

	current, err := s.glosses.GetByID(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	if current.Locked && !viewer.Can(domain.PermLockGloss) {
		return nil, fmt.Errorf("gloss %d is locked: %w", g.ID, domain.ErrForbidden)
	}
	if current.InWebDictionary != g.InWebDictionary && !viewer.Can(domain.PermPublish) {
		return nil, domain.ErrForbidden
	}

	g.UpdatedBy = &viewer.UserID

	updated, err := s.glosses.Update(ctx, g)
	if err != nil {
		return nil, err
	}

	s.log.Info("gloss updated", "gloss_id", updated.ID)

	return updated, nil
}

// DeleteGloss removes an entry and everything it owns. Published entries need
// the stronger delete capability.
func (s *Service) DeleteGloss(ctx context.Context, id int64) error {
	viewer := ctxutil.ViewerFromCtx(ctx)

	g, err := s.glosses.GetByID(ctx, id)
	if err != nil {
		return err
	}

	needed := domain.PermDeleteUnpublished
	if g.InWebDictionary {
		needed = domain.PermDeletePublished
	}
	if !viewer.Can(needed) {
		return domain.ErrForbidden
	}

	if err := s.glosses.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("gloss deleted", "gloss_id", id, "idgloss", g.IDGloss)

	return nil
}

// AddTranslation associates a word with a gloss, creating the keyword on
// first use. The new translation's index continues the gloss's sequence in
// that vocabulary.
func (s *Service) AddTranslation(ctx context.Context, glossID int64, vocab domain.Vocabulary, word string) (*domain.Translation, error) {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return nil, domain.ErrForbidden
	}
	if !vocab.IsValid() {
		return nil, domain.NewValidationError("vocabulary", fmt.Sprintf("unknown vocabulary %q", vocab))
	}
	if word == "" {
		return nil, domain.NewValidationError("word", "must not be empty")
	}

	var created *domain.Translation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		kw, err := s.keywords.GetOrCreate(ctx, vocab, word)
		if err != nil {
			return fmt.Errorf("get or create keyword: %w", err)
		}

		existing, _, err := s.translations.ListByGloss(ctx, glossID, vocab)
		if err != nil {
			return fmt.Errorf("list translations: %w", err)
		}

		index := 0
		if n := len(existing); n > 0 {
			index = existing[n-1].Index + 1
		}

		created, err = s.translations.Create(ctx, glossID, kw.ID, index)
		if err != nil {
			return fmt.Errorf("create translation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("translation added", "gloss_id", glossID, "vocabulary", vocab, "word", word)

	return created, nil
}

// RemoveTranslation deletes one gloss↔keyword association.
func (s *Service) RemoveTranslation(ctx context.Context, id int64) error {
	viewer := ctxutil.ViewerFromCtx(ctx)
	if !viewer.Can(domain.PermSearchGloss) {
		return domain.ErrForbidden
	}

	return s.translations.Delete(ctx, id)
}
