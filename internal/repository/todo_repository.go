package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"syncpad/internal/model"
)

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(todo *model.Todo) error {
	if err := r.db.Create(todo).Error; err != nil {
		return fmt.Errorf("create todo failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) GetByID(id uint) (*model.Todo, error) {
	var todo model.Todo
	if err := r.db.Where("id = ?", id).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get todo failed: %w", err)
	}
	return &todo, nil
}

func (r *TodoRepository) ListByPageID(pageID uint) ([]model.Todo, error) {
	var todos []model.Todo
	if err := r.db.Where("page_id = ?", pageID).Order("created_at ASC").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos failed: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) UpdateCompleted(id uint, completed bool) error {
	if err := r.db.Model(&model.Todo{}).Where("id = ?", id).Update("completed", completed).Error; err != nil {
		return fmt.Errorf("update todo completed failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) UpdateUpvotes(id uint, upvotes int) error {
	if err := r.db.Model(&model.Todo{}).Where("id = ?", id).Update("upvotes", upvotes).Error; err != nil {
		return fmt.Errorf("update todo upvotes failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) UpdateDownvotes(id uint, downvotes int) error {
	if err := r.db.Model(&model.Todo{}).Where("id = ?", id).Update("downvotes", downvotes).Error; err != nil {
		return fmt.Errorf("update todo downvotes failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) Delete(id uint) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Todo{}).Error; err != nil {
		return fmt.Errorf("delete todo failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) DeleteByPageID(pageID uint) error {
	if err := r.db.Where("page_id = ?", pageID).Delete(&model.Todo{}).Error; err != nil {
		return fmt.Errorf("delete page todos failed: %w", err)
	}
	return nil
}

func (r *TodoRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&model.Todo{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete all todos failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
