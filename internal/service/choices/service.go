// Package choices serves the dynamic choice lists backing gloss attribute
// enumerations. The lookup store is loaded once at startup into an immutable
// snapshot; reads are O(1) map lookups and a new snapshot replaces the old
// one only on explicit Reload.
package choices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/finsl/signbank-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type choiceRepo interface {
	ListAll(ctx context.Context) ([]domain.FieldChoice, error)
}

type languageRepo interface {
	ListLanguages(ctx context.Context) ([]domain.Language, error)
	ListDialects(ctx context.Context) ([]domain.Dialect, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Choice is one (code, label) pair with the code in string form.
type Choice struct {
	Code  string
	Label string
}

// IntChoice is one (code, label) pair for contexts that compare codes
// numerically.
type IntChoice struct {
	Code  int
	Label string
}

// snapshot is an immutable view of the lookup store. byField slices are
// ordered by ascending machine value.
type snapshot struct {
	byField map[string][]domain.FieldChoice
	labels  map[int]string
}

// Service implements choice-list reads over the cached lookup store.
type Service struct {
	log       *slog.Logger
	repo      choiceRepo
	languages languageRepo
	cache     atomic.Pointer[snapshot]
}

// NewService creates a new choices service with an empty cache. Call Reload
// before serving.
func NewService(logger *slog.Logger, repo choiceRepo, languages languageRepo) *Service {
	s := &Service{
		log:       logger.With("service", "choices"),
		repo:      repo,
		languages: languages,
	}
	s.cache.Store(&snapshot{
		byField: map[string][]domain.FieldChoice{},
		labels:  map[int]string{},
	})
	return s
}

// Reload replaces the cached snapshot with the current store contents.
// An uninitialized store (first run before migrations seed it) is not an
// error; the cache stays empty and every list reads as empty.
func (s *Service) Reload(ctx context.Context) error {
	all, err := s.repo.ListAll(ctx)
	if errors.Is(err, domain.ErrStoreUninitialized) {
		s.log.Warn("choice store not provisioned, serving empty lists")
		s.cache.Store(&snapshot{
			byField: map[string][]domain.FieldChoice{},
			labels:  map[int]string{},
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load choices: %w", err)
	}

	snap := &snapshot{
		byField: make(map[string][]domain.FieldChoice),
		labels:  make(map[int]string, len(all)),
	}
	for _, c := range all {
		snap.byField[c.Field] = append(snap.byField[c.Field], c)
		snap.labels[c.MachineValue] = c.EnglishName
	}

	s.cache.Store(snap)
	s.log.Info("choice lists loaded", "rows", len(all), "fields", len(snap.byField))

	return nil
}

// ChoicesFor returns the field's (code, label) pairs with string-form codes,
// in ascending code order. An unknown field yields an empty list.
func (s *Service) ChoicesFor(field string) []Choice {
	rows := s.cache.Load().byField[field]

	choices := make([]Choice, 0, len(rows))
	for _, c := range rows {
		choices = append(choices, Choice{
			Code:  strconv.Itoa(c.MachineValue),
			Label: c.EnglishName,
		})
	}

	return choices
}

// ChoicesForInt is ChoicesFor with numeric codes.
func (s *Service) ChoicesForInt(field string) []IntChoice {
	rows := s.cache.Load().byField[field]

	choices := make([]IntChoice, 0, len(rows))
	for _, c := range rows {
		choices = append(choices, IntChoice{
			Code:  c.MachineValue,
			Label: c.EnglishName,
		})
	}

	return choices
}

// Label resolves a machine value to its label across all fields. Machine
// values are globally unique, so no field is needed.
func (s *Service) Label(code int) (string, bool) {
	label, ok := s.cache.Load().labels[code]
	return label, ok
}

// LanguageChoices returns (id, name) pairs for all languages.
func (s *Service) LanguageChoices(ctx context.Context) ([]Choice, error) {
	langs, err := s.languages.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	choices := make([]Choice, 0, len(langs))
	for _, l := range langs {
		choices = append(choices, Choice{Code: strconv.FormatInt(l.ID, 10), Label: l.Name})
	}

	return choices, nil
}

// DialectChoices returns (id, name) pairs for all dialects.
func (s *Service) DialectChoices(ctx context.Context) ([]Choice, error) {
	dialects, err := s.languages.ListDialects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dialects: %w", err)
	}

	choices := make([]Choice, 0, len(dialects))
	for _, d := range dialects {
		choices = append(choices, Choice{Code: strconv.FormatInt(d.ID, 10), Label: d.Name})
	}

	return choices, nil
}

// sortedByLabel returns the field's choices ordered by label, ties broken by
// machine value.
func (s *Service) sortedByLabel(field string) []domain.FieldChoice {
	rows := s.cache.Load().byField[field]

	sorted := make([]domain.FieldChoice, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EnglishName != sorted[j].EnglishName {
			return sorted[i].EnglishName < sorted[j].EnglishName
		}
		return sorted[i].MachineValue < sorted[j].MachineValue
	})

	return sorted
}
