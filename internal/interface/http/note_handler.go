package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/noteplus/noteplus-api/internal/application"
	"github.com/noteplus/noteplus-api/internal/domain/entity"
	"github.com/noteplus/noteplus-api/internal/interface/middleware"
	"github.com/noteplus/noteplus-api/pkg/response"
	"github.com/noteplus/noteplus-api/pkg/validation"
)

type NoteHandler struct {
	Svc    *application.NoteService
	Logger *logrus.Logger
}

func NewNoteHandler(svc *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Svc: svc, Logger: logger}
}

type addNoteRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=10"`
	Tag         string `json:"tag"`
	Pinned      bool   `json:"pinned"`
}

// omitnil (not omitempty) on the optional fields: an absent field skips the
// rule, but a provided empty string must still fail the length checks.
type updateNoteRequest struct {
	Title       *string `json:"title" binding:"omitnil,min=3"`
	Description *string `json:"description" binding:"omitnil,min=10"`
	Tag         *string `json:"tag"`
	Pinned      *bool   `json:"pinned"`
}

type noteResponse struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Pinned      bool      `json:"pinned"`
	CreatedAt   time.Time `json:"created_at"`
}

func toNoteResponse(n *entity.Note) noteResponse {
	return noteResponse{
		ID:          n.ID,
		Owner:       n.Owner,
		Title:       n.Title,
		Description: n.Description,
		Tag:         n.Tag,
		Pinned:      n.Pinned,
		CreatedAt:   n.CreatedAt,
	}
}

func toNoteResponses(notes []entity.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return out
}

// respondNoteError maps lifecycle errors onto the envelope statuses.
func (h *NoteHandler) respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrNoteNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, application.ErrNotOwner):
		response.Error[any](c, http.StatusUnauthorized, "not allowed", nil)
	default:
		h.Logger.WithError(err).Error("note operation failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// AddNote POST /api/notes/addnote
func (h *NoteHandler) AddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Create(c.Request.Context(), uid, application.CreateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Pinned:      req.Pinned,
	})
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponse(n), "note created")
}

// FetchAllNotes GET /api/notes/fetchallnotes
func (h *NoteHandler) FetchAllNotes(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	notes, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponses(notes), "notes")
}

// FetchBinNotes GET /api/notes/fetchbinnotes
func (h *NoteHandler) FetchBinNotes(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	notes, err := h.Svc.ListBin(c.Request.Context(), uid)
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponses(notes), "bin notes")
}

// UpdateNote PUT /api/notes/updatenote/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Update(c.Request.Context(), uid, c.Param("id"), application.UpdateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
		Pinned:      req.Pinned,
	})
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponse(n), "note updated")
}

// DeleteNote DELETE /api/notes/deletenote/:id — soft delete into the bin.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.SoftDelete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponse(n), "note moved to bin")
}

// RestoreNote POST /api/notes/restorenote/:id
func (h *NoteHandler) RestoreNote(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Restore(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponse(n), "note restored")
}

// PermanentDeleteNote DELETE /api/notes/permanentdeletenote/:id
func (h *NoteHandler) PermanentDeleteNote(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	n, err := h.Svc.Purge(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondNoteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toNoteResponse(n), "note deleted permanently")
}
