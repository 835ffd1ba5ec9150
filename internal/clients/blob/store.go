package blob

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists raw uploaded bytes under caller-chosen keys. Metadata
// persistence is a separate concern; the two layers are linked only by the
// stored key string.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// PublicPath maps a key to the path or URL clients fetch it from.
	// Always forward-slash separated.
	PublicPath(key string) string
}

// KeyFunc maps an incoming file's original name to a destination key.
// Injectable so tests can pin deterministic keys.
type KeyFunc func(originalName string) string

func DefaultKeyFunc(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return "notes/" + uuid.NewString() + ext
}
