package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/notevault/notevault-backend/internal/pkg/logger"
)

// LocalStore keeps blobs on the local filesystem under a root directory,
// served back under urlPrefix by the router's static route.
type LocalStore struct {
	log       *logger.Logger
	root      string
	urlPrefix string
}

func NewLocalStore(baseLog *logger.Logger, root, urlPrefix string) (*LocalStore, error) {
	storeLog := baseLog.With("service", "LocalBlobStore")
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("local blob store requires a root directory")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root %q: %w", root, err)
	}
	return &LocalStore{
		log:       storeLog,
		root:      root,
		urlPrefix: strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) diskPath(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if strings.TrimSpace(key) == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) error {
	dst, err := s.diskPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create blob dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create blob file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	s.log.Debug("Blob written", "key", key, "path", dst)
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	dst, err := s.diskPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	dst, err := s.diskPath(key)
	if err != nil {
		return nil, err
	}
	return os.Open(dst)
}

func (s *LocalStore) PublicPath(key string) string {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if s.urlPrefix == "" {
		return key
	}
	return s.urlPrefix + "/" + key
}
