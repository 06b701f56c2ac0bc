package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/transport/http/response"
)

type NoteHandler struct {
	noteService *app.NoteService
}

type NoteRequest struct {
	Title   string `json:"title" binding:"max=256"`
	Content string `json:"content"`
}

func NewNoteHandler(noteService *app.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) List(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	notes, err := h.noteService.List(pageID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list notes failed")
		return
	}
	response.OK(c, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.Create(pageID, req.Title, req.Content)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create note failed")
		return
	}
	response.OK(c, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid note id")
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	note, err := h.noteService.Update(id, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoteNotFound):
			response.Error(c, http.StatusNotFound, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update note failed")
		}
		return
	}
	response.OK(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid note id")
		return
	}
	if err := h.noteService.Delete(id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete note failed")
		return
	}
	response.OK(c, gin.H{"deleted_note_id": id})
}

func (h *NoteHandler) DeleteAll(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}
	if err := h.noteService.DeleteAll(pageID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete notes failed")
		return
	}
	response.OK(c, gin.H{"page_id": pageID})
}
