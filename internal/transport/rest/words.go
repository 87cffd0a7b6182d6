package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/finsl/signbank-backend/internal/domain"
	"github.com/finsl/signbank-backend/internal/service/dictionary"
)

type resolverService interface {
	ResolveKeyword(ctx context.Context, vocab domain.Vocabulary, word string, ordinal int) (*dictionary.ResolveResult, error)
	KeywordInWebDictionary(ctx context.Context, vocab domain.Vocabulary, word string) (bool, error)
	HasVideo(g *domain.Gloss) bool
	VideoPath(g *domain.Gloss) string
}

// WordHandler serves the public word lookup endpoints.
type WordHandler struct {
	log *slog.Logger
	svc resolverService
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(logger *slog.Logger, svc resolverService) *WordHandler {
	return &WordHandler{log: logger.With("handler", "words"), svc: svc}
}

// wordResponse is the payload for a resolved keyword.
type wordResponse struct {
	Word       string `json:"word"`
	Vocabulary string `json:"vocabulary"`
	Ordinal    int    `json:"ordinal"`
	TotalCount int    `json:"total_count"`

	GlossID   int64  `json:"gloss_id"`
	IDGloss   string `json:"idgloss"`
	Published bool   `json:"published"`
	VideoPath string `json:"video_path"`
}

// Resolve handles GET /dictionary/{vocab}/words/{ref}, where ref is either a
// bare word or word-n for the n-th match. Words themselves may contain
// hyphens; only a trailing -<digits> segment is treated as the ordinal.
func (h *WordHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	vocab := domain.Vocabulary(r.PathValue("vocab"))
	word, ordinal := splitWordRef(r.PathValue("ref"))

	res, err := h.svc.ResolveKeyword(r.Context(), vocab, word, ordinal)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	g := res.Translation.Gloss

	resp := wordResponse{
		Word:       word,
		Vocabulary: vocab.String(),
		Ordinal:    ordinal,
		TotalCount: res.TotalCount,
	}
	if g != nil {
		resp.GlossID = g.ID
		resp.IDGloss = g.IDGloss
		resp.Published = g.InWebDictionary
		full := &domain.Gloss{ID: g.ID, IDGloss: g.IDGloss}
		if h.svc.HasVideo(full) {
			resp.VideoPath = h.svc.VideoPath(full)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Exists handles GET /dictionary/{vocab}/words/{ref}/exists: does the word
// resolve to any web-published gloss.
func (h *WordHandler) Exists(w http.ResponseWriter, r *http.Request) {
	vocab := domain.Vocabulary(r.PathValue("vocab"))
	word, _ := splitWordRef(r.PathValue("ref"))

	ok, err := h.svc.KeywordInWebDictionary(r.Context(), vocab, word)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"in_web_dictionary": ok})
}

// splitWordRef splits "word-3" into ("word", 3). A ref with no numeric
// suffix resolves to the first match.
func splitWordRef(ref string) (string, int) {
	if i := strings.LastIndex(ref, "-"); i > 0 {
		if n, err := strconv.Atoi(ref[i+1:]); err == nil {
			return ref[:i], n
		}
	}
	return ref, 1
}
