package dictionary

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockGlossRepo struct {
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Gloss, error)
	GetByIDGlossFunc  func(ctx context.Context, idgloss string) (*domain.Gloss, error)
	FindFunc          func(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error)
	CreateFunc        func(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	UpdateFunc        func(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	DeleteFunc        func(ctx context.Context, id int64) error
	LoadLanguagesFunc func(ctx context.Context, g *domain.Gloss) error
	LoadDialectsFunc  func(ctx context.Context, g *domain.Gloss) error
}

func (m *mockGlossRepo) GetByID(ctx context.Context, id int64) (*domain.Gloss, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockGlossRepo) GetByIDGloss(ctx context.Context, idgloss string) (*domain.Gloss, error) {
	if m.GetByIDGlossFunc != nil {
		return m.GetByIDGlossFunc(ctx, idgloss)
	}
	return nil, domain.ErrNotFound
}

func (m *mockGlossRepo) Find(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockGlossRepo) Create(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, g)
	}
	g.ID = 1
	return g, nil
}

func (m *mockGlossRepo) Update(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, g)
	}
	return g, nil
}

func (m *mockGlossRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockGlossRepo) LoadLanguages(ctx context.Context, g *domain.Gloss) error {
	if m.LoadLanguagesFunc != nil {
		return m.LoadLanguagesFunc(ctx, g)
	}
	return nil
}

func (m *mockGlossRepo) LoadDialects(ctx context.Context, g *domain.Gloss) error {
	if m.LoadDialectsFunc != nil {
		return m.LoadDialectsFunc(ctx, g)
	}
	return nil
}

type mockTranslationRepo struct {
	ListByKeywordFunc func(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error)
	ListByGlossFunc   func(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error)
	CreateFunc        func(ctx context.Context, glossID, keywordID int64, index int) (*domain.Translation, error)
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (m *mockTranslationRepo) ListByKeyword(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error) {
	if m.ListByKeywordFunc != nil {
		return m.ListByKeywordFunc(ctx, vocab, text, publishedOnly)
	}
	return []domain.Translation{}, nil
}

func (m *mockTranslationRepo) ListByGloss(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error) {
	if m.ListByGlossFunc != nil {
		return m.ListByGlossFunc(ctx, glossID, vocab)
	}
	return nil, nil, nil
}

func (m *mockTranslationRepo) Create(ctx context.Context, glossID, keywordID int64, index int) (*domain.Translation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, glossID, keywordID, index)
	}
	return &domain.Translation{ID: 1, GlossID: glossID, KeywordID: keywordID, Index: index}, nil
}

func (m *mockTranslationRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockKeywordRepo struct {
	GetOrCreateFunc     func(ctx context.Context, vocab domain.Vocabulary, text string) (*domain.Keyword, error)
	InWebDictionaryFunc func(ctx context.Context, vocab domain.Vocabulary, text string) (bool, error)
}

func (m *mockKeywordRepo) GetOrCreate(ctx context.Context, vocab domain.Vocabulary, text string) (*domain.Keyword, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, vocab, text)
	}
	return &domain.Keyword{ID: 1, Vocabulary: vocab, Text: text}, nil
}

func (m *mockKeywordRepo) InWebDictionary(ctx context.Context, vocab domain.Vocabulary, text string) (bool, error) {
	if m.InWebDictionaryFunc != nil {
		return m.InWebDictionaryFunc(ctx, vocab, text)
	}
	return false, nil
}

type mockDefinitionRepo struct {
	ListByGlossFunc          func(ctx context.Context, glossID int64) ([]domain.Definition, error)
	ListPublishedByGlossFunc func(ctx context.Context, glossID int64, roles []string) ([]domain.Definition, error)
}

func (m *mockDefinitionRepo) ListByGloss(ctx context.Context, glossID int64) ([]domain.Definition, error) {
	if m.ListByGlossFunc != nil {
		return m.ListByGlossFunc(ctx, glossID)
	}
	return nil, nil
}

func (m *mockDefinitionRepo) ListPublishedByGloss(ctx context.Context, glossID int64, roles []string) ([]domain.Definition, error) {
	if m.ListPublishedByGlossFunc != nil {
		return m.ListPublishedByGlossFunc(ctx, glossID, roles)
	}
	return nil, nil
}

type mockTagRepo struct {
	TaggedGlossIDsFunc func(ctx context.Context, name string) (map[int64]struct{}, error)
	TagsForGlossFunc   func(ctx context.Context, glossID int64) ([]string, error)
}

func (m *mockTagRepo) TaggedGlossIDs(ctx context.Context, name string) (map[int64]struct{}, error) {
	if m.TaggedGlossIDsFunc != nil {
		return m.TaggedGlossIDsFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockTagRepo) TagsForGloss(ctx context.Context, glossID int64) ([]string, error) {
	if m.TagsForGlossFunc != nil {
		return m.TagsForGlossFunc(ctx, glossID)
	}
	return nil, nil
}

type mockRelationRepo struct {
	CreateRelationFunc     func(ctx context.Context, rel domain.Relation) (domain.Relation, error)
	ListBySourceFunc       func(ctx context.Context, sourceID int64) ([]domain.Relation, error)
	CreateMorphologyFunc   func(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error)
	ListByParentFunc       func(ctx context.Context, parentGlossID int64) ([]domain.MorphologyDefinition, error)
	ListByMorphemeFunc     func(ctx context.Context, morphemeID int64) ([]domain.MorphologyDefinition, error)
	CreateForeignFunc      func(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error)
	ListForeignByGlossFunc func(ctx context.Context, glossID int64) ([]domain.RelationToForeignSign, error)
}

func (m *mockRelationRepo) CreateRelation(ctx context.Context, rel domain.Relation) (domain.Relation, error) {
	if m.CreateRelationFunc != nil {
		return m.CreateRelationFunc(ctx, rel)
	}
	rel.ID = 1
	return rel, nil
}

func (m *mockRelationRepo) ListBySource(ctx context.Context, sourceID int64) ([]domain.Relation, error) {
	if m.ListBySourceFunc != nil {
		return m.ListBySourceFunc(ctx, sourceID)
	}
	return nil, nil
}

func (m *mockRelationRepo) CreateMorphology(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error) {
	if m.CreateMorphologyFunc != nil {
		return m.CreateMorphologyFunc(ctx, md)
	}
	md.ID = 1
	return md, nil
}

func (m *mockRelationRepo) ListByParent(ctx context.Context, parentGlossID int64) ([]domain.MorphologyDefinition, error) {
	if m.ListByParentFunc != nil {
		return m.ListByParentFunc(ctx, parentGlossID)
	}
	return nil, nil
}

func (m *mockRelationRepo) ListByMorpheme(ctx context.Context, morphemeID int64) ([]domain.MorphologyDefinition, error) {
	if m.ListByMorphemeFunc != nil {
		return m.ListByMorphemeFunc(ctx, morphemeID)
	}
	return nil, nil
}

func (m *mockRelationRepo) CreateForeign(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error) {
	if m.CreateForeignFunc != nil {
		return m.CreateForeignFunc(ctx, f)
	}
	f.ID = 1
	return f, nil
}

func (m *mockRelationRepo) ListForeignByGloss(ctx context.Context, glossID int64) ([]domain.RelationToForeignSign, error) {
	if m.ListForeignByGlossFunc != nil {
		return m.ListForeignByGlossFunc(ctx, glossID)
	}
	return nil, nil
}

type mockVideoStore struct {
	HasFunc func(idgloss string, id int64) bool
}

func (m *mockVideoStore) Has(idgloss string, id int64) bool {
	if m.HasFunc != nil {
		return m.HasFunc(idgloss, id)
	}
	return false
}

type mockLabeler struct {
	LabelFunc func(code int) (string, bool)
}

func (m *mockLabeler) Label(code int) (string, bool) {
	if m.LabelFunc != nil {
		return m.LabelFunc(code)
	}
	return "", false
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===========================================================================
// Helpers
// ===========================================================================

type deps struct {
	glosses      *mockGlossRepo
	translations *mockTranslationRepo
	keywords     *mockKeywordRepo
	definitions  *mockDefinitionRepo
	tags         *mockTagRepo
	relations    *mockRelationRepo
	videos       *mockVideoStore
	labels       *mockLabeler
}

func newTestService(cfg config.DictionaryConfig) (*Service, *deps) {
	d := &deps{
		glosses:      &mockGlossRepo{},
		translations: &mockTranslationRepo{},
		keywords:     &mockKeywordRepo{},
		definitions:  &mockDefinitionRepo{},
		tags:         &mockTagRepo{},
		relations:    &mockRelationRepo{},
		videos:       &mockVideoStore{},
		labels:       &mockLabeler{},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(logger, d.glosses, d.translations, d.keywords, d.definitions,
		d.tags, d.relations, d.videos, d.labels, &mockTxManager{}, cfg)

	return svc, d
}

func editorCtx(perms ...string) context.Context {
	return ctxutil.WithViewer(context.Background(), domain.Viewer{
		UserID: uuid.New(),
		Perms:  perms,
	})
}

func anonymousCtx() context.Context {
	return context.Background()
}
