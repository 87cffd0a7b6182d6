package rest

import (
	"encoding/json"
	"net/http"

	"github.com/finsl/signbank-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Cross-reference payloads
// ---------------------------------------------------------------------------

type relationDTO struct {
	ID       int64 `json:"id"`
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
	Role     *int  `json:"role,omitempty"`
}

type morphologyDTO struct {
	ID            int64 `json:"id"`
	ParentGlossID int64 `json:"parent_gloss_id"`
	Role          *int  `json:"role,omitempty"`
	MorphemeID    int64 `json:"morpheme_id"`
}

type foreignRelationDTO struct {
	ID             int64  `json:"id"`
	GlossID        int64  `json:"gloss_id"`
	Loan           bool   `json:"loan"`
	OtherLang      string `json:"other_lang"`
	OtherLangGloss string `json:"other_lang_gloss"`
}

type crossReferencesResponse struct {
	Relations  []relationDTO        `json:"relations"`
	Morphology []morphologyDTO      `json:"morphology"`
	AppearsIn  []morphologyDTO      `json:"appears_in"`
	Foreign    []foreignRelationDTO `json:"foreign_signs"`
}

// CrossReferences handles GET /dictionary/glosses/{id}/relations: every
// cross-reference kind the gloss owns.
func (h *GlossHandler) CrossReferences(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	refs, err := h.svc.CrossReferencesFor(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	resp := crossReferencesResponse{
		Relations:  make([]relationDTO, 0, len(refs.Relations)),
		Morphology: make([]morphologyDTO, 0, len(refs.Morphology)),
		AppearsIn:  make([]morphologyDTO, 0, len(refs.AppearsIn)),
		Foreign:    make([]foreignRelationDTO, 0, len(refs.Foreign)),
	}
	for _, rel := range refs.Relations {
		resp.Relations = append(resp.Relations, relationDTO{
			ID: rel.ID, SourceID: rel.SourceID, TargetID: rel.TargetID, Role: rel.Role,
		})
	}
	for _, md := range refs.Morphology {
		resp.Morphology = append(resp.Morphology, morphologyDTO{
			ID: md.ID, ParentGlossID: md.ParentGlossID, Role: md.Role, MorphemeID: md.MorphemeID,
		})
	}
	for _, md := range refs.AppearsIn {
		resp.AppearsIn = append(resp.AppearsIn, morphologyDTO{
			ID: md.ID, ParentGlossID: md.ParentGlossID, Role: md.Role, MorphemeID: md.MorphemeID,
		})
	}
	for _, f := range refs.Foreign {
		resp.Foreign = append(resp.Foreign, foreignRelationDTO{
			ID: f.ID, GlossID: f.GlossID, Loan: f.Loan,
			OtherLang: f.OtherLang, OtherLangGloss: f.OtherLangGloss,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type addRelationRequest struct {
	TargetID int64 `json:"target_id"`
	Role     *int  `json:"role,omitempty"`
}

// AddRelation handles POST /dictionary/glosses/{id}/relations.
func (h *GlossHandler) AddRelation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req addRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	created, err := h.svc.AddRelation(r.Context(), domain.Relation{
		SourceID: id,
		TargetID: req.TargetID,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, relationDTO{
		ID: created.ID, SourceID: created.SourceID, TargetID: created.TargetID, Role: created.Role,
	})
}

type addMorphologyRequest struct {
	MorphemeID int64 `json:"morpheme_id"`
	Role       *int  `json:"role,omitempty"`
}

// AddMorphology handles POST /dictionary/glosses/{id}/morphology.
func (h *GlossHandler) AddMorphology(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req addMorphologyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	created, err := h.svc.AddMorphology(r.Context(), domain.MorphologyDefinition{
		ParentGlossID: id,
		MorphemeID:    req.MorphemeID,
		Role:          req.Role,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, morphologyDTO{
		ID: created.ID, ParentGlossID: created.ParentGlossID, Role: created.Role, MorphemeID: created.MorphemeID,
	})
}

type addForeignRelationRequest struct {
	Loan           bool   `json:"loan"`
	OtherLang      string `json:"other_lang"`
	OtherLangGloss string `json:"other_lang_gloss"`
}

// AddForeignRelation handles POST /dictionary/glosses/{id}/foreign-signs.
func (h *GlossHandler) AddForeignRelation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req addForeignRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	created, err := h.svc.AddForeignRelation(r.Context(), domain.RelationToForeignSign{
		GlossID:        id,
		Loan:           req.Loan,
		OtherLang:      req.OtherLang,
		OtherLangGloss: req.OtherLangGloss,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, foreignRelationDTO{
		ID: created.ID, GlossID: created.GlossID, Loan: created.Loan,
		OtherLang: created.OtherLang, OtherLangGloss: created.OtherLangGloss,
	})
}
