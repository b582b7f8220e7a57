package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/noteplus/noteplus-api/internal/interface/http"
	"github.com/noteplus/noteplus-api/internal/interface/middleware"
	"github.com/noteplus/noteplus-api/pkg/helpers"
)

// NotesModule wires the note lifecycle routes. Everything here requires a
// valid token.

type NotesModule struct {
	Handler *handlers.NoteHandler
	JWT     *helpers.JWTManager
}

func NewNotesModule(h *handlers.NoteHandler, jwt *helpers.JWTManager) *NotesModule {
	return &NotesModule{Handler: h, JWT: jwt}
}

func (m *NotesModule) Register(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.Use(middleware.Auth(m.JWT))
	{
		notes.POST("/addnote", m.Handler.AddNote)
		notes.GET("/fetchallnotes", m.Handler.FetchAllNotes)
		notes.GET("/fetchbinnotes", m.Handler.FetchBinNotes)
		notes.PUT("/updatenote/:id", m.Handler.UpdateNote)
		notes.DELETE("/deletenote/:id", m.Handler.DeleteNote)
		notes.POST("/restorenote/:id", m.Handler.RestoreNote)
		notes.DELETE("/permanentdeletenote/:id", m.Handler.PermanentDeleteNote)
	}
}
