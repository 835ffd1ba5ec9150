package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/notevault/notevault-backend/internal/pkg/logger"
)

// GCSStore keeps blobs in a Google Cloud Storage bucket. Selected with
// BLOB_BACKEND=gcs; requires NOTES_GCS_BUCKET_NAME.
type GCSStore struct {
	log       *logger.Logger
	client    *storage.Client
	bucket    string
	cdnDomain string
}

func NewGCSStore(ctx context.Context, baseLog *logger.Logger) (*GCSStore, error) {
	storeLog := baseLog.With("service", "GCSBlobStore")

	bucketName := strings.TrimSpace(os.Getenv("NOTES_GCS_BUCKET_NAME"))
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var NOTES_GCS_BUCKET_NAME")
	}
	cdnDomain := strings.TrimSpace(os.Getenv("NOTES_CDN_DOMAIN"))

	opts := clientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &GCSStore{
		log:       storeLog,
		client:    client,
		bucket:    bucketName,
		cdnDomain: cdnDomain,
	}, nil
}

func clientOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	opts := []option.ClientOption{}
	if creds == "" {
		return opts
	}
	if strings.HasPrefix(creds, "{") {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	} else {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return opts
}

func (s *GCSStore) Save(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if strings.HasSuffix(strings.ToLower(key), ".pdf") {
		w.ContentType = "application/pdf"
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	// No timeout wrapper here: the returned reader streams until closed and
	// cancelling the context would abort the caller's read.
	return s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
}

func (s *GCSStore) PublicPath(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
