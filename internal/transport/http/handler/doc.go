package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"syncpad/internal/app"
	"syncpad/internal/transport/http/response"
)

type DocHandler struct {
	docService *app.DocService
}

type DocRequest struct {
	Title   string `json:"title" binding:"max=256"`
	Content string `json:"content"`
}

func NewDocHandler(docService *app.DocService) *DocHandler {
	return &DocHandler{docService: docService}
}

func (h *DocHandler) List(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	docs, err := h.docService.List(pageID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list docs failed")
		return
	}
	response.OK(c, docs)
}

func (h *DocHandler) Create(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}

	var req DocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	doc, err := h.docService.Create(pageID, req.Title, req.Content)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create doc failed")
		return
	}
	response.OK(c, doc)
}

func (h *DocHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid doc id")
		return
	}

	var req DocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	doc, err := h.docService.Update(id, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDocNotFound):
			response.Error(c, http.StatusNotFound, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update doc failed")
		}
		return
	}
	response.OK(c, doc)
}

func (h *DocHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid doc id")
		return
	}
	if err := h.docService.Delete(id); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete doc failed")
		return
	}
	response.OK(c, gin.H{"deleted_doc_id": id})
}

func (h *DocHandler) DeleteAll(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page id")
		return
	}
	if err := h.docService.DeleteAll(pageID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete docs failed")
		return
	}
	response.OK(c, gin.H{"page_id": pageID})
}

// ImportPDF accepts a multipart upload (field "file") and stores the
// extracted text as a doc on the page given by the "page_id" form field.
func (h *DocHandler) ImportPDF(c *gin.Context) {
	pageID64, err := strconv.ParseUint(c.PostForm("page_id"), 10, 64)
	if err != nil || pageID64 == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid page_id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open upload failed")
		return
	}
	defer file.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = fileHeader.Filename
	}

	doc, err := h.docService.ImportPDF(uint(pageID64), title, file)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDocEmptyPDF):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "import pdf failed")
		}
		return
	}
	response.OK(c, doc)
}
