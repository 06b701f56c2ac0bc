package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"syncpad/internal/model"
	"syncpad/internal/repository"
)

var ErrSlugExists = errors.New("page with this slug already exists")

// PageService manages the page registry and cascades deletion across every
// per-page collection.
type PageService struct {
	pages    *repository.PageRepository
	messages *repository.MessageRepository
	todos    *repository.TodoRepository
	notes    *repository.NoteRepository
	docs     *repository.DocRepository
	cache    MessageCache
}

func NewPageService(
	pages *repository.PageRepository,
	messages *repository.MessageRepository,
	todos *repository.TodoRepository,
	notes *repository.NoteRepository,
	docs *repository.DocRepository,
	cache MessageCache,
) *PageService {
	return &PageService{
		pages:    pages,
		messages: messages,
		todos:    todos,
		notes:    notes,
		docs:     docs,
		cache:    cache,
	}
}

func (s *PageService) Create(slug, title string) (*model.Page, error) {
	slug = strings.TrimSpace(slug)
	title = strings.TrimSpace(title)
	if slug == "" || title == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.pages.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	page := &model.Page{
		Slug:      slug,
		Title:     title,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.pages.Create(page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PageService) List() ([]model.Page, error) {
	return s.pages.List()
}

func (s *PageService) GetBySlug(slug string) (*model.Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidInput
	}
	page, err := s.pages.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *PageService) ToggleActive(id uint) (*model.Page, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	page, err := s.pages.GetByID(id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	if err := s.pages.UpdateActive(id, !page.IsActive); err != nil {
		return nil, err
	}
	page.IsActive = !page.IsActive
	return page, nil
}

// Delete removes a page together with its messages, todos, notes and docs.
func (s *PageService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	page, err := s.pages.GetByID(id)
	if err != nil {
		return err
	}
	if page == nil {
		return ErrPageNotFound
	}

	if err := s.messages.DeleteByPageID(id); err != nil {
		return err
	}
	if err := s.todos.DeleteByPageID(id); err != nil {
		return err
	}
	if err := s.notes.DeleteByPageID(id); err != nil {
		return err
	}
	if err := s.docs.DeleteByPageID(id); err != nil {
		return err
	}
	if err := s.pages.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.DeleteMessages(ctx, id)
	}
	return nil
}
