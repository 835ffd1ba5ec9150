package notes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
)

type NoteRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Note) ([]*domain.Note, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Note, error)
	SearchText(dbc dbctx.Context, query string, limit int) ([]*domain.Note, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*domain.Note, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	repoLog := baseLog.With("repo", "NoteRepo")
	return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Create(dbc dbctx.Context, rows []*domain.Note) ([]*domain.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*domain.Note{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *noteRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*domain.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Note
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SearchText ranks notes against query over subject/topic/description.
// On Postgres this uses ts_rank with plainto_tsquery; on other dialects
// (sqlite in tests) it degrades to case-insensitive substring matching.
func (r *noteRepo) SearchText(dbc dbctx.Context, query string, limit int) ([]*domain.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Note{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if transaction.Dialector.Name() != "postgres" {
		return r.searchLike(dbc, transaction, query, limit)
	}

	// plainto_tsquery keeps arbitrary user input from breaking the query.
	sql := fmt.Sprintf(`
		SELECT note.*,
		       ts_rank(
		         to_tsvector('english', note.subject || ' ' || note.topic || ' ' || coalesce(note.description, '')),
		         plainto_tsquery('english', ?)
		       ) AS rank
		FROM note
		WHERE to_tsvector('english', note.subject || ' ' || note.topic || ' ' || coalesce(note.description, ''))
		      @@ plainto_tsquery('english', ?)
		ORDER BY rank DESC,
		         note.upload_date DESC
		LIMIT %d;
	`, limit)

	type row struct {
		domain.Note
		Rank float64 `gorm:"column:rank"`
	}
	var rows []row
	if err := transaction.WithContext(dbc.Ctx).Raw(sql, query, query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.Note, 0, len(rows))
	for i := range rows {
		n := rows[i].Note
		out = append(out, &n)
	}
	return out, nil
}

func (r *noteRepo) searchLike(dbc dbctx.Context, transaction *gorm.DB, query string, limit int) ([]*domain.Note, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var results []*domain.Note
	if err := transaction.WithContext(dbc.Ctx).
		Where(
			"lower(subject) LIKE ? OR lower(topic) LIKE ? OR lower(coalesce(description, '')) LIKE ?",
			pattern, pattern, pattern,
		).
		Order("upload_date DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *noteRepo) ListRecent(dbc dbctx.Context, limit int) ([]*domain.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var results []*domain.Note
	if err := transaction.WithContext(dbc.Ctx).
		Order("upload_date DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
