package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"syncpad/internal/model"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(note *model.Note) error {
	if err := r.db.Create(note).Error; err != nil {
		return fmt.Errorf("create note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) GetByID(id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.Where("id = ?", id).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get note failed: %w", err)
	}
	return &note, nil
}

func (r *NoteRepository) ListByPageID(pageID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := r.db.Where("page_id = ?", pageID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes failed: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(id uint, title, content string) error {
	updates := map[string]interface{}{"title": title, "content": content}
	if err := r.db.Model(&model.Note{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) Delete(id uint) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Note{}).Error; err != nil {
		return fmt.Errorf("delete note failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) DeleteByPageID(pageID uint) error {
	if err := r.db.Where("page_id = ?", pageID).Delete(&model.Note{}).Error; err != nil {
		return fmt.Errorf("delete page notes failed: %w", err)
	}
	return nil
}

func (r *NoteRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&model.Note{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete all notes failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
