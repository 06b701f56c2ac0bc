package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"syncpad/internal/model"
)

type PageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) *PageRepository {
	return &PageRepository{db: db}
}

func (r *PageRepository) Create(page *model.Page) error {
	if err := r.db.Create(page).Error; err != nil {
		return fmt.Errorf("create page failed: %w", err)
	}
	return nil
}

func (r *PageRepository) List() ([]model.Page, error) {
	var pages []model.Page
	if err := r.db.Order("created_at ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list pages failed: %w", err)
	}
	return pages, nil
}

func (r *PageRepository) ListActive() ([]model.Page, error) {
	var pages []model.Page
	if err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("list active pages failed: %w", err)
	}
	return pages, nil
}

func (r *PageRepository) GetByID(id uint) (*model.Page, error) {
	var page model.Page
	if err := r.db.Where("id = ?", id).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get page failed: %w", err)
	}
	return &page, nil
}

func (r *PageRepository) GetBySlug(slug string) (*model.Page, error) {
	var page model.Page
	if err := r.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get page by slug failed: %w", err)
	}
	return &page, nil
}

func (r *PageRepository) UpdateActive(id uint, active bool) error {
	if err := r.db.Model(&model.Page{}).Where("id = ?", id).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("update page active failed: %w", err)
	}
	return nil
}

func (r *PageRepository) Delete(id uint) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Page{}).Error; err != nil {
		return fmt.Errorf("delete page failed: %w", err)
	}
	return nil
}
