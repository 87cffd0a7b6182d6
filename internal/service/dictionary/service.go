// Package dictionary implements the dictionary business logic: keyword
// resolution, gloss reads with resolved attribute labels, definitions, and
// editorial writes.
package dictionary

import (
	"context"
	"log/slog"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type glossRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Gloss, error)
	GetByIDGloss(ctx context.Context, idgloss string) (*domain.Gloss, error)
	Find(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error)
	Create(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	Update(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	Delete(ctx context.Context, id int64) error
	LoadLanguages(ctx context.Context, g *domain.Gloss) error
	LoadDialects(ctx context.Context, g *domain.Gloss) error
}

type translationRepo interface {
	ListByKeyword(ctx context.Context, vocab domain.Vocabulary, text string, publishedOnly bool) ([]domain.Translation, error)
	ListByGloss(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error)
	Create(ctx context.Context, glossID, keywordID int64, index int) (*domain.Translation, error)
	Delete(ctx context.Context, id int64) error
}

type keywordRepo interface {
	GetOrCreate(ctx context.Context, vocab domain.Vocabulary, text string) (*domain.Keyword, error)
	InWebDictionary(ctx context.Context, vocab domain.Vocabulary, text string) (bool, error)
}

type definitionRepo interface {
	ListByGloss(ctx context.Context, glossID int64) ([]domain.Definition, error)
	ListPublishedByGloss(ctx context.Context, glossID int64, roles []string) ([]domain.Definition, error)
}

// tagRepo is the tagging collaborator. A nil TaggedGlossIDs set means the tag
// is not defined and filtering is skipped.
type tagRepo interface {
	TaggedGlossIDs(ctx context.Context, name string) (map[int64]struct{}, error)
	TagsForGloss(ctx context.Context, glossID int64) ([]string, error)
}

type relationRepo interface {
	CreateRelation(ctx context.Context, rel domain.Relation) (domain.Relation, error)
	ListBySource(ctx context.Context, sourceID int64) ([]domain.Relation, error)
	CreateMorphology(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error)
	ListByParent(ctx context.Context, parentGlossID int64) ([]domain.MorphologyDefinition, error)
	ListByMorpheme(ctx context.Context, morphemeID int64) ([]domain.MorphologyDefinition, error)
	CreateForeign(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error)
	ListForeignByGloss(ctx context.Context, glossID int64) ([]domain.RelationToForeignSign, error)
}

type videoStore interface {
	Has(idgloss string, id int64) bool
}

// labeler resolves machine values to display labels via the choices cache.
type labeler interface {
	Label(code int) (string, bool)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dictionary business logic.
type Service struct {
	log          *slog.Logger
	glosses      glossRepo
	translations translationRepo
	keywords     keywordRepo
	definitions  definitionRepo
	tags         tagRepo
	relations    relationRepo
	videos       videoStore
	labels       labeler
	tx           txManager
	cfg          config.DictionaryConfig
}

// NewService creates a new dictionary service.
func NewService(
	logger *slog.Logger,
	glosses glossRepo,
	translations translationRepo,
	keywords keywordRepo,
	definitions definitionRepo,
	tags tagRepo,
	relations relationRepo,
	videos videoStore,
	labels labeler,
	tx txManager,
	cfg config.DictionaryConfig,
) *Service {
	return &Service{
		log:          logger.With("service", "dictionary"),
		glosses:      glosses,
		translations: translations,
		keywords:     keywords,
		definitions:  definitions,
		tags:         tags,
		relations:    relations,
		videos:       videos,
		labels:       labels,
		tx:           tx,
		cfg:          cfg,
	}
}
