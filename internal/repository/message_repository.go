package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"syncpad/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message failed: %w", err)
	}
	return &message, nil
}

func (r *MessageRepository) ListByPageID(pageID uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("page_id = ?", pageID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

// ListRecentByPageID returns the newest N messages in chronological order.
func (r *MessageRepository) ListRecentByPageID(pageID uint, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	var messages []model.Message
	if err := r.db.Where("page_id = ?", pageID).Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list recent messages failed: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// UpdateText replaces the full text of a message. Streaming writes the whole
// accumulated response each time, so replaying the same patch is harmless.
func (r *MessageRepository) UpdateText(id uint, text string) error {
	if err := r.db.Model(&model.Message{}).Where("id = ?", id).Update("text", text).Error; err != nil {
		return fmt.Errorf("update message text failed: %w", err)
	}
	return nil
}

// MarkComplete flips is_complete to true. There is deliberately no way to
// flip it back.
func (r *MessageRepository) MarkComplete(id uint) error {
	if err := r.db.Model(&model.Message{}).Where("id = ?", id).Update("is_complete", true).Error; err != nil {
		return fmt.Errorf("mark message complete failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) UpdateLikes(id uint, likes int) error {
	if err := r.db.Model(&model.Message{}).Where("id = ?", id).Update("likes", likes).Error; err != nil {
		return fmt.Errorf("update message likes failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) Delete(id uint) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Message{}).Error; err != nil {
		return fmt.Errorf("delete message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) DeleteByPageID(pageID uint) error {
	if err := r.db.Where("page_id = ?", pageID).Delete(&model.Message{}).Error; err != nil {
		return fmt.Errorf("delete page messages failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&model.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete all messages failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListVectorized returns every message that carries a stored text vector.
func (r *MessageRepository) ListVectorized() ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("text_vector <> ''").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list vectorized messages failed: %w", err)
	}
	return messages, nil
}

// SearchText does a case-insensitive substring match scoped to one page.
func (r *MessageRepository) SearchText(pageID uint, query string, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 5
	}
	pattern := "%" + strings.ToLower(query) + "%"
	var messages []model.Message
	if err := r.db.
		Where("page_id = ? AND LOWER(text) LIKE ?", pageID, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("search messages failed: %w", err)
	}
	return messages, nil
}
