package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"syncpad/internal/model"
	"syncpad/internal/pkg/pdfextract"
	"syncpad/internal/repository"
)

var (
	ErrDocNotFound = errors.New("doc not found")
	ErrDocEmptyPDF = errors.New("pdf contains no extractable text")
)

type DocService struct {
	docs *repository.DocRepository
}

func NewDocService(docs *repository.DocRepository) *DocService {
	return &DocService{docs: docs}
}

func (s *DocService) List(pageID uint) ([]model.Doc, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	return s.docs.ListByPageID(pageID)
}

func (s *DocService) Create(pageID uint, title, content string) (*model.Doc, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}

	now := time.Now()
	doc := &model.Doc{
		PageID:    pageID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docs.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocService) Update(id uint, title, content string) (*model.Doc, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	doc, err := s.docs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocNotFound
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = doc.Title
	}
	if err := s.docs.Update(id, title, content); err != nil {
		return nil, err
	}
	doc.Title = title
	doc.Content = content
	doc.UpdatedAt = time.Now()
	return doc, nil
}

func (s *DocService) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.docs.Delete(id)
}

func (s *DocService) DeleteAll(pageID uint) error {
	if pageID == 0 {
		return ErrInvalidInput
	}
	return s.docs.DeleteByPageID(pageID)
}

// ImportPDF extracts the plain text of an uploaded PDF and stores it as a
// new doc on the page.
func (s *DocService) ImportPDF(pageID uint, title string, r io.Reader) (*model.Doc, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	text, err := pdfextract.ExtractText(r)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrDocEmptyPDF
	}
	return s.Create(pageID, title, text)
}
