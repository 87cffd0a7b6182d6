package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/internal/service/choices"
	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

type choicesService interface {
	ChoiceLists() (json.RawMessage, error)
	ChoicesFor(field string) []choices.Choice
	LanguageChoices(ctx context.Context) ([]choices.Choice, error)
	DialectChoices(ctx context.Context) ([]choices.Choice, error)
	Reload(ctx context.Context) error
}

// ChoicesHandler serves the dynamic choice lists.
type ChoicesHandler struct {
	log *slog.Logger
	svc choicesService
}

// NewChoicesHandler creates a ChoicesHandler.
func NewChoicesHandler(logger *slog.Logger, svc choicesService) *ChoicesHandler {
	return &ChoicesHandler{log: logger.With("handler", "choices"), svc: svc}
}

// Lists handles GET /dictionary/choices: the full choice-list payload for the
// editing UI.
func (h *ChoicesHandler) Lists(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.ChoiceLists()
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw) //nolint:errcheck
}

type choiceDTO struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Field handles GET /dictionary/choices/{field}: one field's (code, label)
// pairs in code order.
func (h *ChoicesHandler) Field(w http.ResponseWriter, r *http.Request) {
	out := make([]choiceDTO, 0)
	for _, c := range h.svc.ChoicesFor(r.PathValue("field")) {
		out = append(out, choiceDTO{Code: c.Code, Label: c.Label})
	}

	writeJSON(w, http.StatusOK, out)
}

// Languages handles GET /dictionary/languages.
func (h *ChoicesHandler) Languages(w http.ResponseWriter, r *http.Request) {
	h.writeChoices(w, r, h.svc.LanguageChoices)
}

// Dialects handles GET /dictionary/dialects.
func (h *ChoicesHandler) Dialects(w http.ResponseWriter, r *http.Request) {
	h.writeChoices(w, r, h.svc.DialectChoices)
}

func (h *ChoicesHandler) writeChoices(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]choices.Choice, error)) {
	items, err := list(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make([]choiceDTO, 0, len(items))
	for _, c := range items {
		out = append(out, choiceDTO{Code: c.Code, Label: c.Label})
	}

	writeJSON(w, http.StatusOK, out)
}

// RelationRoles handles GET /dictionary/relation-roles: the static relation
// role vocabulary for the editing UI.
func (h *ChoicesHandler) RelationRoles(w http.ResponseWriter, r *http.Request) {
	roles := domain.RelationRoles()

	out := make([]choiceDTO, 0, len(roles))
	for _, role := range roles {
		out = append(out, choiceDTO{Code: role.Role, Label: role.Label})
	}

	writeJSON(w, http.StatusOK, out)
}

// Reload handles POST /dictionary/choices/reload: refreshes the cached
// lookup snapshot after editorial changes. Editors only.
func (h *ChoicesHandler) Reload(w http.ResponseWriter, r *http.Request) {
	viewer := ctxutil.ViewerFromCtx(r.Context())
	if !viewer.Can(domain.PermSearchGloss) {
		writeError(w, h.log, domain.ErrForbidden)
		return
	}

	if err := h.svc.Reload(r.Context()); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
