// Package media implements the sign-video storage collaborator: deterministic
// video paths sharded by headword prefix, existence checks, and streaming
// reads under a configured root directory.
package media

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

// Store serves video files from a local directory tree.
type Store struct {
	root string
}

// NewStore creates a video store rooted at cfg.VideoRoot.
func NewStore(cfg config.MediaConfig) *Store {
	return &Store{root: cfg.VideoRoot}
}

// VideoPath returns the storage key for a gloss's video, relative to the
// media root: glossvideo/<prefix>/<idgloss>-<id>.mp4, where the prefix is the
// first two characters of the headword. Entries sharing a prefix bucket into
// the same subdirectory.
func VideoPath(idgloss string, id int64) string {
	prefix := idgloss
	if runes := []rune(idgloss); len(runes) > 2 {
		prefix = string(runes[:2])
	}

	return path.Join("glossvideo", prefix, fmt.Sprintf("%s-%d.mp4", idgloss, id))
}

// Has reports whether a video file exists for the gloss.
func (s *Store) Has(idgloss string, id int64) bool {
	full, err := s.resolve(VideoPath(idgloss, id))
	if err != nil {
		return false
	}

	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// Open returns a read-seeker over the video at the given storage key.
// Missing files map to domain.ErrNotFound.
func (s *Store) Open(key string) (io.ReadSeekCloser, error) {
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("video %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", key, err)
	}

	return f, nil
}

// resolve joins a storage key onto the root, rejecting keys that escape it.
func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("video key %q: %w", key, domain.ErrValidation)
	}

	return filepath.Join(s.root, clean), nil
}
