package app

import (
	"errors"
	"strings"
	"time"

	"syncpad/internal/model"
	"syncpad/internal/repository"
)

var ErrNoteNotFound = errors.New("note not found")

type NoteService struct {
	notes *repository.NoteRepository
}

func NewNoteService(notes *repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

// List returns a page's notes, newest first.
func (s *NoteService) List(pageID uint) ([]model.Note, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	return s.notes.ListByPageID(pageID)
}

func (s *NoteService) Create(pageID uint, title, content string) (*model.Note, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}

	now := time.Now()
	note := &model.Note{
		PageID:    pageID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(id uint, title, content string) (*model.Note, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	note, err := s.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = note.Title
	}
	if err := s.notes.Update(id, title, content); err != nil {
		return nil, err
	}
	note.Title = title
	note.Content = content
	note.UpdatedAt = time.Now()
	return note, nil
}

func (s *NoteService) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	return s.notes.Delete(id)
}

func (s *NoteService) DeleteAll(pageID uint) error {
	if pageID == 0 {
		return ErrInvalidInput
	}
	return s.notes.DeleteByPageID(pageID)
}
