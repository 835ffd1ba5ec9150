package services

import (
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/notevault/notevault-backend/internal/data/repos/notes"
	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
	"github.com/notevault/notevault-backend/internal/platform/apierr"
)

const (
	// Internal result cap per search.
	searchLimit = 10
	// Below this many internal hits, a synthesized summary is attached.
	fallbackThreshold = 3
)

type ExternalSummary struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type SearchResult struct {
	Internal []*domain.Note   `json:"internal"`
	External *ExternalSummary `json:"external"`
}

type SearchService interface {
	Search(dbc dbctx.Context, query, branch string) (SearchResult, error)
}

type searchService struct {
	db       *gorm.DB
	log      *logger.Logger
	noteRepo notes.NoteRepo
}

func NewSearchService(db *gorm.DB, baseLog *logger.Logger, noteRepo notes.NoteRepo) SearchService {
	serviceLog := baseLog.With("service", "SearchService")
	return &searchService{db: db, log: serviceLog, noteRepo: noteRepo}
}

// Search queries the note store and, when fewer than fallbackThreshold
// internal results come back, attaches a synthesized knowledge card. A
// blank query short-circuits without touching the store.
func (s *searchService) Search(dbc dbctx.Context, query, branch string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{Internal: []*domain.Note{}, External: nil}, nil
	}

	internal, err := s.noteRepo.SearchText(dbc, query, searchLimit)
	if err != nil {
		s.log.Error("Note search failed", "error", err, "query", query)
		return SearchResult{}, apierr.New(http.StatusInternalServerError, "search_failed", err)
	}
	if internal == nil {
		internal = []*domain.Note{}
	}

	result := SearchResult{Internal: internal}
	if len(internal) < fallbackThreshold {
		result.External = SynthesizeSummary(query, branch)
	}
	return result, nil
}

// SynthesizeSummary templates the fallback knowledge card. This is string
// templating, not a knowledge lookup; same inputs always give the same card.
func SynthesizeSummary(query, branch string) *ExternalSummary {
	hint := strings.TrimSpace(branch)
	if hint == "" {
		hint = "engineering"
	}
	return &ExternalSummary{
		Source: "External Knowledge Base",
		Title:  "Concept Summary: " + query,
		Summary: fmt.Sprintf(
			"%s is a commonly examined topic in %s. Start with the definitions and governing principles, then work through solved examples to see how the concept is applied.",
			query, hint,
		),
	}
}
