package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"syncpad/internal/model"
)

type DocRepository struct {
	db *gorm.DB
}

func NewDocRepository(db *gorm.DB) *DocRepository {
	return &DocRepository{db: db}
}

func (r *DocRepository) Create(doc *model.Doc) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create doc failed: %w", err)
	}
	return nil
}

func (r *DocRepository) GetByID(id uint) (*model.Doc, error) {
	var doc model.Doc
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doc failed: %w", err)
	}
	return &doc, nil
}

func (r *DocRepository) ListByPageID(pageID uint) ([]model.Doc, error) {
	var docs []model.Doc
	if err := r.db.Where("page_id = ?", pageID).Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list docs failed: %w", err)
	}
	return docs, nil
}

func (r *DocRepository) Update(id uint, title, content string) error {
	updates := map[string]interface{}{"title": title, "content": content}
	if err := r.db.Model(&model.Doc{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("update doc failed: %w", err)
	}
	return nil
}

func (r *DocRepository) Delete(id uint) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Doc{}).Error; err != nil {
		return fmt.Errorf("delete doc failed: %w", err)
	}
	return nil
}

func (r *DocRepository) DeleteByPageID(pageID uint) error {
	if err := r.db.Where("page_id = ?", pageID).Delete(&model.Doc{}).Error; err != nil {
		return fmt.Errorf("delete page docs failed: %w", err)
	}
	return nil
}

func (r *DocRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&model.Doc{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete all docs failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
