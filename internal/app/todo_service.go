package app

import (
	"strings"
	"time"

	"syncpad/internal/model"
	"syncpad/internal/repository"
)

type TodoService struct {
	pages *repository.PageRepository
	todos *repository.TodoRepository
}

func NewTodoService(pages *repository.PageRepository, todos *repository.TodoRepository) *TodoService {
	return &TodoService{pages: pages, todos: todos}
}

func (s *TodoService) List(pageID uint) ([]model.Todo, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	return s.todos.ListByPageID(pageID)
}

func (s *TodoService) Add(pageID uint, text string) (*model.Todo, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	page, err := s.pages.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	if !page.IsActive {
		return nil, ErrPageInactive
	}

	todo := &model.Todo{
		PageID:    pageID,
		Text:      text,
		Completed: false,
		CreatedAt: time.Now(),
	}
	if err := s.todos.Create(todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Toggle flips the completed flag. Toggling a missing todo is a no-op.
func (s *TodoService) Toggle(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	todo, err := s.todos.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil {
		return nil
	}
	return s.todos.UpdateCompleted(id, !todo.Completed)
}

// Upvote bumps the upvote counter; votes only ever go up.
func (s *TodoService) Upvote(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	todo, err := s.todos.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil {
		return nil
	}
	return s.todos.UpdateUpvotes(id, todo.Upvotes+1)
}

func (s *TodoService) Downvote(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	todo, err := s.todos.GetByID(id)
	if err != nil {
		return err
	}
	if todo == nil {
		return nil
	}
	return s.todos.UpdateDownvotes(id, todo.Downvotes+1)
}

func (s *TodoService) Remove(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.todos.Delete(id)
}

func (s *TodoService) RemoveAll(pageID uint) error {
	if pageID == 0 {
		return ErrInvalidInput
	}
	return s.todos.DeleteByPageID(pageID)
}
