package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/finsl/signbank-backend/internal/domain"
)

type videoService interface {
	GetGloss(ctx context.Context, id int64) (*domain.Gloss, error)
	VideoPath(g *domain.Gloss) string
}

type videoOpener interface {
	Open(key string) (io.ReadSeekCloser, error)
}

// VideoHandler streams sign videos.
type VideoHandler struct {
	log    *slog.Logger
	svc    videoService
	videos videoOpener
}

// NewVideoHandler creates a VideoHandler.
func NewVideoHandler(logger *slog.Logger, svc videoService, videos videoOpener) *VideoHandler {
	return &VideoHandler{log: logger.With("handler", "video"), svc: svc, videos: videos}
}

// Stream handles GET /dictionary/glosses/{id}/video. Visibility follows the
// gloss itself; ServeContent gives range-request support for scrubbing.
func (h *VideoHandler) Stream(w http.ResponseWriter, r *http.Request) {
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

	key := h.svc.VideoPath(g)
	f, err := h.videos.Open(key)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "video/mp4")
	http.ServeContent(w, r, path.Base(key), time.Time{}, f)
}
