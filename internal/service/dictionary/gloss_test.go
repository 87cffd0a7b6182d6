package dictionary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestGetGlossHidesUnpublishedFromPublic(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.glosses.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Gloss, error) {
		return &domain.Gloss{ID: id, IDGloss: "HIDDEN", InWebDictionary: false}, nil
	}

	_, err := svc.GetGloss(anonymousCtx(), 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	g, err := svc.GetGloss(editorCtx(domain.PermSearchGloss), 7)
	require.NoError(t, err)
	assert.Equal(t, "HIDDEN", g.IDGloss)
}

func TestGetGlossLoadsAssociations(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.glosses.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Gloss, error) {
		return &domain.Gloss{ID: id, IDGloss: "TALO", InWebDictionary: true}, nil
	}
	d.glosses.LoadLanguagesFunc = func(ctx context.Context, g *domain.Gloss) error {
		g.Languages = []domain.Language{{ID: 1, Name: "Finnish Sign Language"}}
		return nil
	}
	d.glosses.LoadDialectsFunc = func(ctx context.Context, g *domain.Gloss) error {
		g.Dialects = []domain.Dialect{{ID: 2, LanguageID: 1, Name: "Helsinki"}}
		return nil
	}

	g, err := svc.GetGloss(anonymousCtx(), 1)
	require.NoError(t, err)
	assert.Len(t, g.Languages, 1)
	assert.Len(t, g.Dialects, 1)
}

func TestFindGlossesForcesPublishedForPublic(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})

	var gotFilter gloss.Filter
	d.glosses.FindFunc = func(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error) {
		gotFilter = filter
		return []domain.Gloss{}, 0, nil
	}

	_, _, err := svc.FindGlosses(anonymousCtx(), gloss.Filter{})
	require.NoError(t, err)
	require.NotNil(t, gotFilter.InWebDictionary)
	assert.True(t, *gotFilter.InWebDictionary)

	_, _, err = svc.FindGlosses(editorCtx(domain.PermSearchGloss), gloss.Filter{})
	require.NoError(t, err)
	assert.Nil(t, gotFilter.InWebDictionary)
}

func TestPublishedDefinitionsUsesConfiguredRoles(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{
		PublicDefinitionRoles: []string{"note", "phon"},
	})

	var gotRoles []string
	d.definitions.ListPublishedByGlossFunc = func(ctx context.Context, glossID int64, roles []string) ([]domain.Definition, error) {
		gotRoles = roles
		return []domain.Definition{{ID: 1, GlossID: glossID, Role: domain.DefinitionRoleNote}}, nil
	}

	defs, err := svc.PublishedDefinitions(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, defs, 1)
	assert.Equal(t, []string{"note", "phon"}, gotRoles)
}

func TestDefinitionsGrouped(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.definitions.ListByGlossFunc = func(ctx context.Context, glossID int64) ([]domain.Definition, error) {
		// Repo returns natural (role, count) order.
		return []domain.Definition{
			{Role: domain.DefinitionRoleNote, Count: 1, Text: "first note"},
			{Role: domain.DefinitionRoleNote, Count: 2, Text: "second note"},
			{Role: domain.DefinitionRoleToDo, Count: 1, Text: "check handshape"},
		}, nil
	}

	grouped, err := svc.DefinitionsGrouped(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"first note", "second note"}, grouped[domain.DefinitionRoleNote])
	assert.Equal(t, []string{"check handshape"}, grouped[domain.DefinitionRoleToDo])
}

func TestVideoAccessors(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.videos.HasFunc = func(idgloss string, id int64) bool {
		return idgloss == "AANBELLEN" && id == 42
	}

	g := &domain.Gloss{ID: 42, IDGloss: "AANBELLEN"}
	assert.Equal(t, "glossvideo/AA/AANBELLEN-42.mp4", svc.VideoPath(g))
	assert.True(t, svc.HasVideo(g))
	assert.False(t, svc.HasVideo(&domain.Gloss{ID: 1, IDGloss: "OTHER"}))
}

func TestAttributeLabels(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.labels.LabelFunc = func(code int) (string, bool) {
		if code == 2 {
			return "Two-handed", true
		}
		return "", false
	}

	g := &domain.Gloss{
		Handedness:      intPtr(2),
		StrongHandshape: intPtr(99), // not in cache
	}

	labels := svc.AttributeLabels(g)
	assert.Equal(t, map[string]string{domain.FieldHandedness: "Two-handed"}, labels)
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

func TestCreateGlossRequiresCapability(t *testing.T) {
	svc, _ := newTestService(config.DictionaryConfig{})

	_, err := svc.CreateGloss(editorCtx(), &domain.Gloss{IDGloss: "UUSI"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	g, err := svc.CreateGloss(editorCtx(domain.PermSearchGloss), &domain.Gloss{IDGloss: "UUSI"})
	require.NoError(t, err)
	assert.NotZero(t, g.ID)
}

func TestCreateGlossPublishNeedsPublishCapability(t *testing.T) {
	svc, _ := newTestService(config.DictionaryConfig{})

	_, err := svc.CreateGloss(editorCtx(domain.PermSearchGloss), &domain.Gloss{
		IDGloss:         "UUSI",
		InWebDictionary: true,
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = svc.CreateGloss(editorCtx(domain.PermSearchGloss, domain.PermPublish), &domain.Gloss{
		IDGloss:         "UUSI",
		InWebDictionary: true,
	})
	assert.NoError(t, err)
}

func TestUpdateGlossLockedNeedsLockCapability(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.glosses.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Gloss, error) {
		return &domain.Gloss{ID: id, IDGloss: "LUKITTU", Locked: true}, nil
	}

	_, err := svc.UpdateGloss(editorCtx(domain.PermSearchGloss), &domain.Gloss{ID: 3, IDGloss: "LUKITTU"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = svc.UpdateGloss(editorCtx(domain.PermSearchGloss, domain.PermLockGloss), &domain.Gloss{ID: 3, IDGloss: "LUKITTU"})
	assert.NoError(t, err)
}

func TestDeleteGlossCapabilityDependsOnPublication(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	published := false
	d.glosses.GetByIDFunc = func(ctx context.Context, id int64) (*domain.Gloss, error) {
		return &domain.Gloss{ID: id, IDGloss: "POISTO", InWebDictionary: published}, nil
	}

	err := svc.DeleteGloss(editorCtx(domain.PermDeleteUnpublished), 9)
	assert.NoError(t, err)

	published = true
	err = svc.DeleteGloss(editorCtx(domain.PermDeleteUnpublished), 9)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = svc.DeleteGloss(editorCtx(domain.PermDeletePublished), 9)
	assert.NoError(t, err)
}

func TestAddTranslationContinuesIndexSequence(t *testing.T) {
	svc, d := newTestService(config.DictionaryConfig{})
	d.translations.ListByGlossFunc = func(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error) {
		return []domain.Translation{
			{ID: 1, GlossID: glossID, Index: 0},
			{ID: 2, GlossID: glossID, Index: 1},
		}, []string{"yksi", "kaksi"}, nil
	}

	var gotIndex int
	d.translations.CreateFunc = func(ctx context.Context, glossID, keywordID int64, index int) (*domain.Translation, error) {
		gotIndex = index
		return &domain.Translation{ID: 3, GlossID: glossID, KeywordID: keywordID, Index: index}, nil
	}

	tr, err := svc.AddTranslation(editorCtx(domain.PermSearchGloss), 5, domain.VocabularyFinnish, "kolme")
	require.NoError(t, err)
	assert.Equal(t, 2, gotIndex)
	assert.Equal(t, int64(3), tr.ID)
}

func TestAddTranslationValidation(t *testing.T) {
	svc, _ := newTestService(config.DictionaryConfig{})

	_, err := svc.AddTranslation(editorCtx(domain.PermSearchGloss), 5, domain.Vocabulary("xx"), "sana")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.AddTranslation(editorCtx(domain.PermSearchGloss), 5, domain.VocabularyFinnish, "")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.AddTranslation(editorCtx(), 5, domain.VocabularyFinnish, "sana")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
