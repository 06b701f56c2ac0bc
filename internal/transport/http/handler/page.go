package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/transport/http/response"
)

type PageHandler struct {
	pageService *app.PageService
}

type CreatePageRequest struct {
	Slug  string `json:"slug" binding:"required,max=128"`
	Title string `json:"title" binding:"required,max=256"`
}

func NewPageHandler(pageService *app.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

func (h *PageHandler) List(c *gin.Context) {
	pages, err := h.pageService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list pages failed")
		return
	}
	response.OK(c, pages)
}

func (h *PageHandler) GetBySlug(c *gin.Context) {
	page, err := h.pageService.GetBySlug(c.Param("slug"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get page failed")
		}
		return
	}
	response.OK(c, page)
}

func (h *PageHandler) Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	page, err := h.pageService.Create(req.Slug, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSlugExists):
			response.Error(c, http.StatusConflict, response.CodeSlugExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create page failed")
		}
		return
	}
	response.OK(c, page)
}

func (h *PageHandler) ToggleActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	page, err := h.pageService.ToggleActive(id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "toggle page failed")
		}
		return
	}
	response.OK(c, page)
}

func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	if err := h.pageService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, app.ErrPageNotFound):
			response.Error(c, http.StatusNotFound, response.CodePageNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete page failed")
		}
		return
	}
	response.OK(c, gin.H{"deleted_page_id": id})
}
