package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/finsl/signbank-backend/internal/adapter/postgres/gloss"
	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/internal/service/dictionary"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

type glossService interface {
	GetGloss(ctx context.Context, id int64) (*domain.Gloss, error)
	FindGlosses(ctx context.Context, filter gloss.Filter) ([]domain.Gloss, int, error)
	CreateGloss(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	UpdateGloss(ctx context.Context, g *domain.Gloss) (*domain.Gloss, error)
	DeleteGloss(ctx context.Context, id int64) error
	Translations(ctx context.Context, glossID int64, vocab domain.Vocabulary) ([]domain.Translation, []string, error)
	AddTranslation(ctx context.Context, glossID int64, vocab domain.Vocabulary, word string) (*domain.Translation, error)
	RemoveTranslation(ctx context.Context, id int64) error
	PublishedDefinitions(ctx context.Context, glossID int64) ([]domain.Definition, error)
	DefinitionsGrouped(ctx context.Context, glossID int64) (map[domain.DefinitionRole][]string, error)
	Tags(ctx context.Context, glossID int64) ([]string, error)
	AttributeLabels(g *domain.Gloss) map[string]string
	VideoPath(g *domain.Gloss) string
	HasVideo(g *domain.Gloss) bool
	CrossReferencesFor(ctx context.Context, glossID int64) (*dictionary.CrossReferences, error)
	AddRelation(ctx context.Context, rel domain.Relation) (domain.Relation, error)
	AddMorphology(ctx context.Context, md domain.MorphologyDefinition) (domain.MorphologyDefinition, error)
	AddForeignRelation(ctx context.Context, f domain.RelationToForeignSign) (domain.RelationToForeignSign, error)
}

// GlossHandler serves gloss detail, search and editorial endpoints.
type GlossHandler struct {
	log *slog.Logger
	svc glossService
}

// NewGlossHandler creates a GlossHandler.
func NewGlossHandler(logger *slog.Logger, svc glossService) *GlossHandler {
	return &GlossHandler{log: logger.With("handler", "glosses"), svc: svc}
}

// ---------------------------------------------------------------------------
// Payloads
// ---------------------------------------------------------------------------

// glossPayload carries the writable gloss fields on both requests and
// responses.
type glossPayload struct {
	IDGloss                string `json:"idgloss"`
	AnnotationIDGlossJKL   string `json:"annotation_idgloss_jkl,omitempty"`
	AnnotationIDGlossJKLEn string `json:"annotation_idgloss_jkl_en,omitempty"`
	AnnotationIDGlossHKI   string `json:"annotation_idgloss_hki,omitempty"`
	AnnotationIDGlossHKIEn string `json:"annotation_idgloss_hki_en,omitempty"`
	AnnotationComments     string `json:"annotation_comments,omitempty"`
	URL                    string `json:"url,omitempty"`
	Locked                 bool   `json:"locked,omitempty"`

	Handedness                  *int `json:"handedness,omitempty"`
	StrongHandshape             *int `json:"strong_handshape,omitempty"`
	WeakHandshape               *int `json:"weak_handshape,omitempty"`
	Location                    *int `json:"location,omitempty"`
	RelationBetweenArticulators *int `json:"relation_between_articulators,omitempty"`
	AbsOrientationPalm          *int `json:"absolute_orientation_palm,omitempty"`
	AbsOrientationFingers       *int `json:"absolute_orientation_fingers,omitempty"`
	RelOrientationMovement      *int `json:"relative_orientation_movement,omitempty"`
	RelOrientationLocation      *int `json:"relative_orientation_location,omitempty"`
	OrientationChange           *int `json:"orientation_change,omitempty"`
	HandshapeChange             *int `json:"handshape_change,omitempty"`
	MovementShape               *int `json:"movement_shape,omitempty"`
	MovementDirection           *int `json:"movement_direction,omitempty"`
	MovementManner              *int `json:"movement_manner,omitempty"`
	ContactType                 *int `json:"contact_type,omitempty"`

	RepeatedMovement    *bool `json:"repeated_movement,omitempty"`
	AlternatingMovement *bool `json:"alternating_movement,omitempty"`

	PhonologyOther    string `json:"phonology_other,omitempty"`
	MouthGesture      string `json:"mouth_gesture,omitempty"`
	Mouthing          string `json:"mouthing,omitempty"`
	PhoneticVariation string `json:"phonetic_variation,omitempty"`

	IconicImage   string `json:"iconic_image,omitempty"`
	NamedEntity   *int   `json:"named_entity,omitempty"`
	SemanticField *int   `json:"semantic_field,omitempty"`

	NumberOfOccurrences *int `json:"number_of_occurrences,omitempty"`
	InWebDictionary     bool `json:"in_web_dictionary"`
	IsProposedNewSign   bool `json:"is_proposed_new_sign,omitempty"`
}

func (p *glossPayload) toDomain(id int64) *domain.Gloss {
	return &domain.Gloss{
		ID:                          id,
		IDGloss:                     p.IDGloss,
		AnnotationIDGlossJKL:        p.AnnotationIDGlossJKL,
		AnnotationIDGlossJKLEn:      p.AnnotationIDGlossJKLEn,
		AnnotationIDGlossHKI:        p.AnnotationIDGlossHKI,
		AnnotationIDGlossHKIEn:      p.AnnotationIDGlossHKIEn,
		AnnotationComments:          p.AnnotationComments,
		URL:                         p.URL,
		Locked:                      p.Locked,
		Handedness:                  p.Handedness,
		StrongHandshape:             p.StrongHandshape,
		WeakHandshape:               p.WeakHandshape,
		Location:                    p.Location,
		RelationBetweenArticulators: p.RelationBetweenArticulators,
		AbsOrientationPalm:          p.AbsOrientationPalm,
		AbsOrientationFingers:       p.AbsOrientationFingers,
		RelOrientationMovement:      p.RelOrientationMovement,
		RelOrientationLocation:      p.RelOrientationLocation,
		OrientationChange:           p.OrientationChange,
		HandshapeChange:             p.HandshapeChange,
		MovementShape:               p.MovementShape,
		MovementDirection:           p.MovementDirection,
		MovementManner:              p.MovementManner,
		ContactType:                 p.ContactType,
		RepeatedMovement:            p.RepeatedMovement,
		AlternatingMovement:         p.AlternatingMovement,
		PhonologyOther:              p.PhonologyOther,
		MouthGesture:                p.MouthGesture,
		Mouthing:                    p.Mouthing,
		PhoneticVariation:           p.PhoneticVariation,
		IconicImage:                 p.IconicImage,
		NamedEntity:                 p.NamedEntity,
		SemanticField:               p.SemanticField,
		NumberOfOccurrences:         p.NumberOfOccurrences,
		InWebDictionary:             p.InWebDictionary,
		IsProposedNewSign:           p.IsProposedNewSign,
	}
}

// glossResponse is the full gloss detail payload.
type glossResponse struct {
	ID int64 `json:"id"`
	glossPayload

	AttributeLabels map[string]string `json:"attribute_labels,omitempty"`
	Languages       []languageDTO     `json:"languages,omitempty"`
	Dialects        []dialectDTO      `json:"dialects,omitempty"`
	Tags            []string          `json:"tags,omitempty"`

	TranslationsFin []string `json:"translations_fin,omitempty"`
	TranslationsEng []string `json:"translations_eng,omitempty"`

	Definitions map[string][]string `json:"definitions,omitempty"`

	HasVideo  bool   `json:"has_video"`
	VideoPath string `json:"video_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type languageDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type dialectDTO struct {
	ID         int64  `json:"id"`
	LanguageID int64  `json:"language_id"`
	Name       string `json:"name"`
}

func payloadFromDomain(g *domain.Gloss) glossPayload {
	return glossPayload{
		IDGloss:                     g.IDGloss,
		AnnotationIDGlossJKL:        g.AnnotationIDGlossJKL,
		AnnotationIDGlossJKLEn:      g.AnnotationIDGlossJKLEn,
		AnnotationIDGlossHKI:        g.AnnotationIDGlossHKI,
		AnnotationIDGlossHKIEn:      g.AnnotationIDGlossHKIEn,
		AnnotationComments:          g.AnnotationComments,
		URL:                         g.URL,
		Locked:                      g.Locked,
		Handedness:                  g.Handedness,
		StrongHandshape:             g.StrongHandshape,
		WeakHandshape:               g.WeakHandshape,
		Location:                    g.Location,
		RelationBetweenArticulators: g.RelationBetweenArticulators,
		AbsOrientationPalm:          g.AbsOrientationPalm,
		AbsOrientationFingers:       g.AbsOrientationFingers,
		RelOrientationMovement:      g.RelOrientationMovement,
		RelOrientationLocation:      g.RelOrientationLocation,
		OrientationChange:           g.OrientationChange,
		HandshapeChange:             g.HandshapeChange,
		MovementShape:               g.MovementShape,
		MovementDirection:           g.MovementDirection,
		MovementManner:              g.MovementManner,
		ContactType:                 g.ContactType,
		RepeatedMovement:            g.RepeatedMovement,
		AlternatingMovement:         g.AlternatingMovement,
		PhonologyOther:              g.PhonologyOther,
		MouthGesture:                g.MouthGesture,
		Mouthing:                    g.Mouthing,
		PhoneticVariation:           g.PhoneticVariation,
		IconicImage:                 g.IconicImage,
		NamedEntity:                 g.NamedEntity,
		SemanticField:               g.SemanticField,
		NumberOfOccurrences:         g.NumberOfOccurrences,
		InWebDictionary:             g.InWebDictionary,
		IsProposedNewSign:           g.IsProposedNewSign,
	}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// Get handles GET /dictionary/glosses/{id}.
func (h *GlossHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	g, err := h.svc.GetGloss(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	resp := glossResponse{
		ID:              g.ID,
		glossPayload:    payloadFromDomain(g),
		AttributeLabels: h.svc.AttributeLabels(g),
		HasVideo:        h.svc.HasVideo(g),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
	if resp.HasVideo {
		resp.VideoPath = h.svc.VideoPath(g)
	}

	for _, l := range g.Languages {
		resp.Languages = append(resp.Languages, languageDTO{ID: l.ID, Name: l.Name})
	}
	for _, d := range g.Dialects {
		resp.Dialects = append(resp.Dialects, dialectDTO{ID: d.ID, LanguageID: d.LanguageID, Name: d.Name})
	}

	if _, words, err := h.svc.Translations(r.Context(), g.ID, domain.VocabularyFinnish); err == nil {
		resp.TranslationsFin = words
	}
	if _, words, err := h.svc.Translations(r.Context(), g.ID, domain.VocabularyEnglish); err == nil {
		resp.TranslationsEng = words
	}

	if tags, err := h.svc.Tags(r.Context(), g.ID); err == nil {
		resp.Tags = tags
	}

	resp.Definitions = h.definitionsFor(r, g.ID)

	writeJSON(w, http.StatusOK, resp)
}

// definitionsFor picks the definitions view for the viewer: the editorial
// role-grouped view when available, otherwise the public allow-listed one.
func (h *GlossHandler) definitionsFor(r *http.Request, glossID int64) map[string][]string {
	out := make(map[string][]string)

	if grouped, err := h.svc.DefinitionsGrouped(r.Context(), glossID); err == nil && viewerCanSearch(r) {
		for role, texts := range grouped {
			out[role.String()] = texts
		}
		return out
	}

	published, err := h.svc.PublishedDefinitions(r.Context(), glossID)
	if err != nil {
		return out
	}
	for _, d := range published {
		out[d.Role.String()] = append(out[d.Role.String()], d.Text)
	}

	return out
}

// searchResponse is the paginated search payload.
type searchResponse struct {
	Glosses    []searchItem `json:"glosses"`
	TotalCount int          `json:"total_count"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

type searchItem struct {
	ID              int64  `json:"id"`
	IDGloss         string `json:"idgloss"`
	InWebDictionary bool   `json:"in_web_dictionary"`
}

// Search handles GET /dictionary/glosses.
func (h *GlossHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	glosses, total, err := h.svc.FindGlosses(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	items := make([]searchItem, 0, len(glosses))
	for _, g := range glosses {
		items = append(items, searchItem{
			ID:              g.ID,
			IDGloss:         g.IDGloss,
			InWebDictionary: g.InWebDictionary,
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Glosses:    items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

func filterFromQuery(r *http.Request) gloss.Filter {
	q := r.URL.Query()
	var filter gloss.Filter

	if s := q.Get("q"); s != "" {
		filter.Search = &s
	}
	if v := q.Get("published"); v != "" {
		b := v == "true"
		filter.InWebDictionary = &b
	}
	if v := q.Get("proposed"); v != "" {
		b := v == "true"
		filter.IsProposedNewSign = &b
	}
	if v, err := strconv.ParseInt(q.Get("language_id"), 10, 64); err == nil {
		filter.LanguageID = &v
	}
	if v, err := strconv.ParseInt(q.Get("dialect_id"), 10, 64); err == nil {
		filter.DialectID = &v
	}
	filter.SortBy = q.Get("sort_by")
	filter.SortOrder = q.Get("sort_order")
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	return filter
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create handles POST /dictionary/glosses.
func (h *GlossHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload glossPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	created, err := h.svc.CreateGloss(r.Context(), payload.toDomain(0))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, glossResponse{
		ID:           created.ID,
		glossPayload: payloadFromDomain(created),
		CreatedAt:    created.CreatedAt,
		UpdatedAt:    created.UpdatedAt,
	})
}

// Update handles PUT /dictionary/glosses/{id}.
func (h *GlossHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var payload glossPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	updated, err := h.svc.UpdateGloss(r.Context(), payload.toDomain(id))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, glossResponse{
		ID:           updated.ID,
		glossPayload: payloadFromDomain(updated),
		CreatedAt:    updated.CreatedAt,
		UpdatedAt:    updated.UpdatedAt,
	})
}

// Delete handles DELETE /dictionary/glosses/{id}.
func (h *GlossHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.DeleteGloss(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Translations
// ---------------------------------------------------------------------------

type addTranslationRequest struct {
	Vocabulary string `json:"vocabulary"`
	Word       string `json:"word"`
}

// AddTranslation handles POST /dictionary/glosses/{id}/translations.
func (h *GlossHandler) AddTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req addTranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	tr, err := h.svc.AddTranslation(r.Context(), id, domain.Vocabulary(req.Vocabulary), req.Word)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       tr.ID,
		"gloss_id": tr.GlossID,
		"index":    tr.Index,
	})
}

// RemoveTranslation handles DELETE /dictionary/translations/{id}.
func (h *GlossHandler) RemoveTranslation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.RemoveTranslation(r.Context(), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func viewerCanSearch(r *http.Request) bool {
	return ctxutil.ViewerFromCtx(r.Context()).Can(domain.PermSearchGloss)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id", "must be an integer")
	}
	return id, nil
}
