package services

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notevault/notevault-backend/internal/clients/blob"
	"github.com/notevault/notevault-backend/internal/data/repos/notes"
	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/moderation"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
	"github.com/notevault/notevault-backend/internal/platform/apierr"
)

type UploadInput struct {
	Branch      string
	Subject     string
	Topic       string
	Description string

	OriginalName string
	MimeType     string
	File         io.Reader
}

type UploadService interface {
	UploadNote(dbc dbctx.Context, in UploadInput) (*domain.Note, error)
}

type uploadService struct {
	db       *gorm.DB
	log      *logger.Logger
	blobs    blob.Store
	keyFor   blob.KeyFunc
	filter   *moderation.Filter
	noteRepo notes.NoteRepo
}

func NewUploadService(
	db *gorm.DB,
	baseLog *logger.Logger,
	blobs blob.Store,
	keyFor blob.KeyFunc,
	filter *moderation.Filter,
	noteRepo notes.NoteRepo,
) UploadService {
	serviceLog := baseLog.With("service", "UploadService")
	if keyFor == nil {
		keyFor = blob.DefaultKeyFunc
	}
	return &uploadService{
		db:       db,
		log:      serviceLog,
		blobs:    blobs,
		keyFor:   keyFor,
		filter:   filter,
		noteRepo: noteRepo,
	}
}

// UploadNote runs the upload pipeline: type check, blob write, moderation
// with compensating blob delete, then metadata write. The ordering is part
// of the contract: the blob always lands before moderation runs, and a
// moderation rejection must remove it. A crash between the blob write and
// the moderation check can leave an orphaned blob; nothing sweeps those.
func (s *uploadService) UploadNote(dbc dbctx.Context, in UploadInput) (*domain.Note, error) {
	if in.File == nil {
		return nil, apierr.New(http.StatusBadRequest, "no_file_uploaded", fmt.Errorf("no file payload in request"))
	}
	if in.MimeType != "application/pdf" {
		return nil, apierr.New(http.StatusBadRequest, "unsupported_file_type",
			fmt.Errorf("only PDF files are allowed, got %q", in.MimeType))
	}

	branch := strings.TrimSpace(in.Branch)
	subject := strings.TrimSpace(in.Subject)
	topic := strings.TrimSpace(in.Topic)
	description := strings.TrimSpace(in.Description)

	if branch == "" || subject == "" || topic == "" {
		return nil, apierr.New(http.StatusBadRequest, "missing_required_fields",
			fmt.Errorf("branch, subject and topic are required"))
	}
	if !domain.ValidBranch(branch) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_branch",
			fmt.Errorf("unknown branch %q", branch))
	}

	key := s.keyFor(in.OriginalName)
	if err := s.blobs.Save(dbc.Ctx, key, in.File); err != nil {
		s.log.Error("Blob write failed", "error", err, "key", key)
		return nil, apierr.New(http.StatusInternalServerError, "blob_write_failed", err)
	}

	if !s.filter.IsSafe(topic) || !s.filter.IsSafe(description) {
		// Compensating action: the blob is already on disk, remove it.
		if dErr := s.blobs.Delete(dbc.Ctx, key); dErr != nil {
			s.log.Error("Failed to delete blob after moderation rejection", "error", dErr, "key", key)
		}
		return nil, apierr.New(http.StatusBadRequest, "moderation_flagged",
			fmt.Errorf("content flagged by moderation"))
	}

	note := &domain.Note{
		ID:           uuid.New(),
		Branch:       branch,
		Subject:      subject,
		Topic:        topic,
		Description:  description,
		FilePath:     strings.ReplaceAll(s.blobs.PublicPath(key), "\\", "/"),
		OriginalName: in.OriginalName,
		UploadDate:   time.Now().UTC(),
	}
	if _, err := s.noteRepo.Create(dbc, []*domain.Note{note}); err != nil {
		s.log.Error("Note create failed", "error", err, "key", key)
		return nil, apierr.New(http.StatusInternalServerError, "note_create_failed", err)
	}

	s.log.Info("Note uploaded",
		"note_id", note.ID,
		"branch", note.Branch,
		"file_path", note.FilePath,
	)
	return note, nil
}
