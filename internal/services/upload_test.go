package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/notevault/notevault-backend/internal/clients/blob"
	"github.com/notevault/notevault-backend/internal/data/repos/notes"
	"github.com/notevault/notevault-backend/internal/data/repos/testutil"
	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/moderation"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
	"github.com/notevault/notevault-backend/internal/platform/apierr"
)

func fixedKey(originalName string) string {
	return "notes/fixed-key.pdf"
}

func newUploadFixture(t *testing.T) (UploadService, *blob.MemStore, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	blobs := blob.NewMemStore()
	repo := notes.NewNoteRepo(db, log)
	filter := moderation.NewFilter(log, nil)
	svc := NewUploadService(db, log, blobs, fixedKey, filter, repo)
	return svc, blobs, db
}

func countNotes(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.Note{}).Count(&n).Error; err != nil {
		t.Fatalf("count notes: %v", err)
	}
	return n
}

func pdfInput() UploadInput {
	return UploadInput{
		Branch:       "Civil",
		Subject:      "Fluid Mechanics",
		Topic:        "Bernoulli",
		Description:  "intro",
		OriginalName: "bernoulli notes.pdf",
		MimeType:     "application/pdf",
		File:         strings.NewReader("%PDF-1.4 fake body"),
	}
}

func TestUploadNoteSuccess(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	note, err := svc.UploadNote(dbc, pdfInput())
	if err != nil {
		t.Fatalf("UploadNote: %v", err)
	}
	if note.OriginalName != "bernoulli notes.pdf" {
		t.Fatalf("OriginalName = %q", note.OriginalName)
	}
	if strings.Contains(note.FilePath, "\\") {
		t.Fatalf("FilePath %q contains backslashes", note.FilePath)
	}
	if note.FilePath != "uploads/notes/fixed-key.pdf" {
		t.Fatalf("FilePath = %q", note.FilePath)
	}
	if note.UploadDate.IsZero() {
		t.Fatalf("UploadDate not assigned")
	}
	if got := countNotes(t, db); got != 1 {
		t.Fatalf("note count = %d, want 1", got)
	}
	if !blobs.Has("notes/fixed-key.pdf") {
		t.Fatalf("blob missing after successful upload")
	}
}

func TestUploadNoteRejectsMissingFile(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	in := pdfInput()
	in.File = nil
	_, err := svc.UploadNote(dbc, in)
	assertAPIError(t, err, http.StatusBadRequest, "no_file_uploaded")
	if blobs.Len() != 0 || countNotes(t, db) != 0 {
		t.Fatalf("missing file must leave no side effects")
	}
}

func TestUploadNoteRejectsNonPDF(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	in := pdfInput()
	in.MimeType = "image/png"
	_, err := svc.UploadNote(dbc, in)
	assertAPIError(t, err, http.StatusBadRequest, "unsupported_file_type")
	if blobs.Len() != 0 {
		t.Fatalf("non-PDF upload must not retain a blob")
	}
	if countNotes(t, db) != 0 {
		t.Fatalf("non-PDF upload must not create a record")
	}
}

func TestUploadNoteRejectsInvalidFields(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	in := pdfInput()
	in.Subject = "  "
	_, err := svc.UploadNote(dbc, in)
	assertAPIError(t, err, http.StatusBadRequest, "missing_required_fields")

	in = pdfInput()
	in.Branch = "Astrology"
	_, err = svc.UploadNote(dbc, in)
	assertAPIError(t, err, http.StatusBadRequest, "invalid_branch")

	if blobs.Len() != 0 || countNotes(t, db) != 0 {
		t.Fatalf("field validation failures must leave no side effects")
	}
}

func TestUploadNoteModerationRollsBackBlob(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	for _, in := range []UploadInput{
		func() UploadInput { i := pdfInput(); i.Topic = "How to kill an interview"; return i }(),
		func() UploadInput { i := pdfInput(); i.Description = "HACKing the final exam"; return i }(),
	} {
		_, err := svc.UploadNote(dbc, in)
		assertAPIError(t, err, http.StatusBadRequest, "moderation_flagged")
	}

	// The blob is written before moderation runs; rejection must remove it.
	if blobs.Len() != 0 {
		t.Fatalf("moderation rejection must delete the written blob, %d left", blobs.Len())
	}
	if countNotes(t, db) != 0 {
		t.Fatalf("moderation rejection must not create records")
	}
}

func TestUploadNoteBlobFailure(t *testing.T) {
	svc, blobs, db := newUploadFixture(t)
	dbc := dbctx.Context{Ctx: context.Background()}

	blobs.FailSave = errors.New("disk full")
	_, err := svc.UploadNote(dbc, pdfInput())
	assertAPIError(t, err, http.StatusInternalServerError, "blob_write_failed")
	if countNotes(t, db) != 0 {
		t.Fatalf("blob failure must not create records")
	}
}

func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q", code)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an apierr.Error", err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("got (%d, %q), want (%d, %q): %v", ae.Status, ae.Code, status, code, err)
	}
}
