package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notevault/notevault-backend/internal/domain"
)

func SeedNote(tb testing.TB, ctx context.Context, tx *gorm.DB, subject, topic string, uploaded time.Time) *domain.Note {
	tb.Helper()
	n := &domain.Note{
		ID:           uuid.New(),
		Branch:       "Other",
		Subject:      subject,
		Topic:        topic,
		FilePath:     "uploads/notes/" + uuid.NewString() + ".pdf",
		OriginalName: "notes.pdf",
		UploadDate:   uploaded,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return n
}
