package notes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/notevault/notevault-backend/internal/data/repos/testutil"
	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
)

func TestNoteRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewNoteRepo(db, testutil.Logger(t))

	n := &domain.Note{
		ID:           uuid.New(),
		Branch:       "Civil",
		Subject:      "Fluid Mechanics",
		Topic:        "Bernoulli",
		Description:  "intro",
		FilePath:     "uploads/notes/a.pdf",
		OriginalName: "a.pdf",
		UploadDate:   time.Now().UTC(),
	}
	if _, err := repo.Create(dbc, []*domain.Note{n}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.GetByIDs(dbc, []uuid.UUID{n.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].OriginalName != "a.pdf" || rows[0].FilePath != "uploads/notes/a.pdf" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}

	if rows, err := repo.GetByIDs(dbc, nil); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs(nil): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.Create(dbc, nil); err != nil || len(rows) != 0 {
		t.Fatalf("Create(nil): err=%v len=%d", err, len(rows))
	}
}

func TestNoteRepoListRecent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewNoteRepo(db, testutil.Logger(t))

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		testutil.SeedNote(t, ctx, db, "Subject", "Topic", base.Add(time.Duration(i)*time.Minute))
	}

	rows, err := repo.ListRecent(dbc, 20)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("ListRecent returned %d rows, want 20", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].UploadDate.After(rows[i-1].UploadDate) {
			t.Fatalf("rows not in descending upload order at index %d", i)
		}
	}
	// Newest row first.
	want := base.Add(24 * time.Minute)
	if !rows[0].UploadDate.Equal(want) {
		t.Fatalf("first row uploaded at %v, want %v", rows[0].UploadDate, want)
	}
}

func TestNoteRepoSearchText(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewNoteRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	testutil.SeedNote(t, ctx, db, "Thermodynamics", "Entropy", now)
	testutil.SeedNote(t, ctx, db, "Circuit Theory", "Thevenin", now.Add(time.Minute))
	testutil.SeedNote(t, ctx, db, "Heat Transfer", "thermodynamics review", now.Add(2*time.Minute))

	rows, err := repo.SearchText(dbc, "thermodynamics", 10)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("SearchText returned %d rows, want 2", len(rows))
	}

	if rows, err := repo.SearchText(dbc, "", 10); err != nil || len(rows) != 0 {
		t.Fatalf("SearchText with blank query: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.SearchText(dbc, "nothing-matches-this", 10); err != nil || len(rows) != 0 {
		t.Fatalf("SearchText without matches: err=%v len=%d", err, len(rows))
	}
}

func TestNoteRepoSearchTextLimit(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewNoteRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	for i := 0; i < 15; i++ {
		testutil.SeedNote(t, ctx, db, "Statics", "Trusses", now.Add(time.Duration(i)*time.Second))
	}

	rows, err := repo.SearchText(dbc, "trusses", 10)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("SearchText returned %d rows, want capped 10", len(rows))
	}
}

// Exercises the Postgres ts_rank path; skipped unless TEST_POSTGRES_DSN is
// set.
func TestNoteRepoSearchTextPostgres(t *testing.T) {
	db := testutil.PostgresDB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewNoteRepo(db, testutil.Logger(t))

	now := time.Now().UTC()
	testutil.SeedNote(t, ctx, tx, "Fluid Mechanics", "Bernoulli", now)
	testutil.SeedNote(t, ctx, tx, "Statics", "Moments", now.Add(time.Minute))

	rows, err := repo.SearchText(dbc, "bernoulli", 10)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("SearchText returned %d rows, want 1", len(rows))
	}
	if rows[0].Topic != "Bernoulli" {
		t.Fatalf("unexpected hit: %+v", rows[0])
	}
}
