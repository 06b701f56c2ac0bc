package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/transport/http/response"
)

type ChatHandler struct {
	chatService   *app.ChatService
	searchService *app.SearchService
}

type SendMessageRequest struct {
	Sender string `json:"sender" binding:"max=64"`
	Text   string `json:"text" binding:"required"`
}

type AskRequest struct {
	Sender string `json:"sender" binding:"max=64"`
	Prompt string `json:"prompt" binding:"required"`
}

func NewChatHandler(chatService *app.ChatService, searchService *app.SearchService) *ChatHandler {
	return &ChatHandler{chatService: chatService, searchService: searchService}
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	messages, err := h.chatService.GetMessages(c.Request.Context(), pageID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get messages failed")
		return
	}
	response.OK(c, messages)
}

func (h *ChatHandler) Send(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	message, err := h.chatService.Send(c.Request.Context(), app.SendMessageInput{
		PageID: pageID,
		Sender: req.Sender,
		Text:   req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrMessageEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		case errors.Is(err, app.ErrPageInactive):
			response.Error(c, http.StatusForbidden, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "send message failed")
		}
		return
	}
	response.OK(c, message)
}

// Ask acknowledges immediately with the placeholder row; the streamed
// response fills that row in the background. Clients poll GetMessages and
// watch is_complete.
func (h *ChatHandler) Ask(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	placeholder, err := h.chatService.Ask(c.Request.Context(), app.AskInput{
		PageID: pageID,
		Sender: req.Sender,
		Prompt: req.Prompt,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrMessageEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		case errors.Is(err, app.ErrPageInactive):
			response.Error(c, http.StatusForbidden, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrAskEnqueue):
			response.Error(c, http.StatusServiceUnavailable, response.CodeInternalServer, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}
	response.OK(c, gin.H{"message_id": placeholder.ID})
}

func (h *ChatHandler) ToggleLike(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid message id")
		return
	}

	likes, err := h.chatService.ToggleLike(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "like failed")
		return
	}
	response.OK(c, gin.H{"likes": likes})
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid message id")
		return
	}

	if err := h.chatService.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete message failed")
		return
	}
	response.OK(c, gin.H{"deleted_message_id": id})
}

func (h *ChatHandler) DeleteAllMessages(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	if err := h.chatService.DeleteAllMessages(c.Request.Context(), pageID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete messages failed")
		return
	}
	response.OK(c, gin.H{"page_id": pageID})
}

// SearchSimilar ranks all vectorized messages against the query. Best
// effort: an empty list is a valid answer, never an error.
func (h *ChatHandler) SearchSimilar(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing query")
		return
	}
	response.OK(c, h.searchService.SearchSimilar(query))
}

func (h *ChatHandler) SearchText(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing query")
		return
	}
	response.OK(c, h.searchService.SearchText(pageID, query))
}
