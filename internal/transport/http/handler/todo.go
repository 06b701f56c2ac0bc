package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type AddTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) List(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	todos, err := h.todoService.List(pageID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list todos failed")
		return
	}
	response.OK(c, todos)
}

func (h *TodoHandler) Add(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	var req AddTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Add(pageID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		case errors.Is(err, app.ErrPageInactive):
			response.Error(c, http.StatusForbidden, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "add todo failed")
		}
		return
	}
	response.OK(c, todo)
}

func (h *TodoHandler) Toggle(c *gin.Context) {
	h.mutateByID(c, h.todoService.Toggle, "toggle todo failed")
}

func (h *TodoHandler) Upvote(c *gin.Context) {
	h.mutateByID(c, h.todoService.Upvote, "upvote todo failed")
}

func (h *TodoHandler) Downvote(c *gin.Context) {
	h.mutateByID(c, h.todoService.Downvote, "downvote todo failed")
}

func (h *TodoHandler) Remove(c *gin.Context) {
	h.mutateByID(c, h.todoService.Remove, "remove todo failed")
}

func (h *TodoHandler) RemoveAll(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}
	if err := h.todoService.RemoveAll(pageID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "remove todos failed")
		return
	}
	response.OK(c, gin.H{"page_id": pageID})
}

func (h *TodoHandler) mutateByID(c *gin.Context, fn func(uint) error, failMsg string) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid todo id")
		return
	}
	if err := fn(id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, failMsg)
		return
	}
	response.OK(c, gin.H{"id": id})
}
