package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault-backend/internal/data/repos/notes"
	"github.com/notevault/notevault-backend/internal/domain"
	"github.com/notevault/notevault-backend/internal/http/response"
	"github.com/notevault/notevault-backend/internal/pkg/dbctx"
	"github.com/notevault/notevault-backend/internal/pkg/logger"
	"github.com/notevault/notevault-backend/internal/services"
)

const recentNotesLimit = 20

type NoteHandler struct {
	log      *logger.Logger
	uploads  services.UploadService
	search   services.SearchService
	noteRepo notes.NoteRepo
}

func NewNoteHandler(
	log *logger.Logger,
	uploads services.UploadService,
	search services.SearchService,
	noteRepo notes.NoteRepo,
) *NoteHandler {
	return &NoteHandler{
		log:      log.With("handler", "NoteHandler"),
		uploads:  uploads,
		search:   search,
		noteRepo: noteRepo,
	}
}

// POST /api/upload
func (h *NoteHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "no_file_uploaded", err)
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "could_not_read_file", err)
		return
	}
	defer f.Close()
	if mimeType == "" {
		// Fall back to sniffing when the client didn't declare a type.
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		mimeType = http.DetectContentType(buf[:n])
		if _, err := f.Seek(0, 0); err != nil {
			response.RespondError(c, http.StatusBadRequest, "could_not_read_file", err)
			return
		}
	}

	dbc := dbctx.Context{Ctx: c.Request.Context()}
	note, err := h.uploads.UploadNote(dbc, services.UploadInput{
		Branch:       c.PostForm("branch"),
		Subject:      c.PostForm("subject"),
		Topic:        c.PostForm("topic"),
		Description:  c.PostForm("description"),
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		File:         f,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}

	response.RespondCreated(c, gin.H{
		"message": "Note uploaded successfully",
		"note":    note,
	})
}

// GET /api/search?q=<string>&branch=<string>
func (h *NoteHandler) Search(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	result, err := h.search.Search(dbc, c.Query("q"), c.Query("branch"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, result)
}

// GET /api/notes
func (h *NoteHandler) ListRecent(c *gin.Context) {
	dbc := dbctx.Context{Ctx: c.Request.Context()}
	rows, err := h.noteRepo.ListRecent(dbc, recentNotesLimit)
	if err != nil {
		h.log.Error("ListRecent failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_notes_failed", err)
		return
	}
	if rows == nil {
		rows = []*domain.Note{}
	}
	response.RespondOK(c, rows)
}
