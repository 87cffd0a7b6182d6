package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsl/signbank-backend/internal/config"
	"github.com/finsl/signbank-backend/internal/domain"
)

func TestVideoPath(t *testing.T) {
	assert.Equal(t, "glossvideo/AA/AANBELLEN-42.mp4", VideoPath("AANBELLEN", 42))
}

func TestVideoPathShortName(t *testing.T) {
	assert.Equal(t, "glossvideo/A/A-1.mp4", VideoPath("A", 1))
	assert.Equal(t, "glossvideo/AB/AB-1.mp4", VideoPath("AB", 1))
}

func TestVideoPathMultibytePrefix(t *testing.T) {
	assert.Equal(t, "glossvideo/ÄI/ÄITI-7.mp4", VideoPath("ÄITI", 7))
}

func TestHasAndOpen(t *testing.T) {
	root := t.TempDir()
	store := NewStore(config.MediaConfig{VideoRoot: root})

	key := VideoPath("AANBELLEN", 42)
	full := filepath.Join(root, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("video bytes"), 0o644))

	assert.True(t, store.Has("AANBELLEN", 42))
	assert.False(t, store.Has("AANBELLEN", 43))

	f, err := store.Open(key)
	require.NoError(t, err)
	defer f.Close()
}

func TestOpenMissingIsNotFound(t *testing.T) {
	store := NewStore(config.MediaConfig{VideoRoot: t.TempDir()})

	_, err := store.Open(VideoPath("MISSING", 1))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestOpenRejectsEscapingKeys(t *testing.T) {
	store := NewStore(config.MediaConfig{VideoRoot: t.TempDir()})

	for _, key := range []string{"../secret", "glossvideo/../../etc/passwd", "/etc/passwd"} {
		_, err := store.Open(key)
		assert.True(t, errors.Is(err, domain.ErrValidation), "key %q", key)
	}
}
