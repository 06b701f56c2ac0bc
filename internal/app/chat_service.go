package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"syncpad/internal/ai"
	"syncpad/internal/model"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPageNotFound    = errors.New("page not found")
	ErrPageInactive    = errors.New("page is not active")
	ErrMessageEmpty    = errors.New("message content is empty")
	ErrMessageNotFound = errors.New("message not found")
	ErrAskEnqueue      = errors.New("ask task enqueue failed")
)

// MessageStore is the subset of the message repository the chat flow needs.
type MessageStore interface {
	Create(message *model.Message) error
	GetByID(id uint) (*model.Message, error)
	ListByPageID(pageID uint) ([]model.Message, error)
	ListRecentByPageID(pageID uint, limit int) ([]model.Message, error)
	UpdateText(id uint, text string) error
	MarkComplete(id uint) error
	UpdateLikes(id uint, likes int) error
	Delete(id uint) error
	DeleteByPageID(pageID uint) error
}

type PageGetter interface {
	GetByID(id uint) (*model.Page, error)
}

type AskPublisher interface {
	Publish(ctx context.Context, task model.AskTask) error
}

type MessageCache interface {
	GetMessages(ctx context.Context, pageID uint) ([]model.Message, bool, error)
	SetMessages(ctx context.Context, pageID uint, messages []model.Message) error
	DeleteMessages(ctx context.Context, pageID uint) error
	MarkDirty(ctx context.Context, pageID uint) error
	IsDirty(ctx context.Context, pageID uint) (bool, error)
}

type ChatService struct {
	pages     PageGetter
	messages  MessageStore
	publisher AskPublisher
	cache     MessageCache
	logger    *zap.Logger
}

func NewChatService(
	pages PageGetter,
	messages MessageStore,
	publisher AskPublisher,
	cache MessageCache,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		pages:     pages,
		messages:  messages,
		publisher: publisher,
		cache:     cache,
		logger:    logger.Named("ChatService"),
	}
}

type SendMessageInput struct {
	PageID uint
	Sender string
	Text   string
}

type AskInput struct {
	PageID uint
	Sender string
	Prompt string
}

// GetMessages returns all messages of a page in chronological order,
// serving from the Redis cache when it is warm and not marked dirty.
func (s *ChatService) GetMessages(ctx context.Context, pageID uint) ([]model.Message, error) {
	if pageID == 0 {
		return nil, ErrInvalidInput
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, pageID)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetMessages(ctx, pageID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	messages, err := s.messages.ListByPageID(pageID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if dirty, dirtyErr := s.cache.IsDirty(ctx, pageID); dirtyErr == nil && !dirty {
			_ = s.cache.SetMessages(ctx, pageID, messages)
		}
	}
	return messages, nil
}

// Send inserts a user message. The text vector is computed synchronously so
// the row is searchable the moment it exists.
func (s *ChatService) Send(ctx context.Context, input SendMessageInput) (*model.Message, error) {
	if input.PageID == 0 {
		return nil, ErrInvalidInput
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrMessageEmpty
	}
	sender := strings.TrimSpace(input.Sender)
	if sender == "" {
		sender = "anonymous"
	}

	if err := s.requireActivePage(input.PageID); err != nil {
		return nil, err
	}

	message := &model.Message{
		PageID:     input.PageID,
		Sender:     sender,
		Text:       text,
		IsComplete: true,
		CreatedAt:  time.Now(),
	}
	message.SetVector(ai.TextVector(text))

	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.PageID)
	return message, nil
}

// ToggleLike bumps the like counter by one and returns the new count.
// There is no unlike; liking a message that no longer exists is a no-op.
func (s *ChatService) ToggleLike(ctx context.Context, id uint) (int, error) {
	if id == 0 {
		return 0, ErrInvalidInput
	}
	message, err := s.messages.GetByID(id)
	if err != nil {
		return 0, err
	}
	if message == nil {
		return 0, nil
	}

	newLikes := message.Likes + 1
	if err := s.messages.UpdateLikes(id, newLikes); err != nil {
		return 0, err
	}
	s.invalidate(ctx, message.PageID)
	return newLikes, nil
}

func (s *ChatService) DeleteMessage(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrInvalidInput
	}
	message, err := s.messages.GetByID(id)
	if err != nil {
		return err
	}
	if message == nil {
		return nil
	}
	if err := s.messages.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, message.PageID)
	return nil
}

func (s *ChatService) DeleteAllMessages(ctx context.Context, pageID uint) error {
	if pageID == 0 {
		return ErrInvalidInput
	}
	if err := s.messages.DeleteByPageID(pageID); err != nil {
		return err
	}
	s.invalidate(ctx, pageID)
	return nil
}

// Ask creates the AI response placeholder and enqueues the streaming task.
// The returned message ID is the caller's handle: the row starts empty and
// incomplete, grows while the worker streams, and ends complete. The caller
// never waits on the model.
func (s *ChatService) Ask(ctx context.Context, input AskInput) (*model.Message, error) {
	if input.PageID == 0 {
		return nil, ErrInvalidInput
	}
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, ErrMessageEmpty
	}

	if err := s.requireActivePage(input.PageID); err != nil {
		return nil, err
	}

	placeholder := &model.Message{
		PageID:     input.PageID,
		Sender:     "ai",
		Text:       "",
		IsComplete: false,
		CreatedAt:  time.Now(),
	}
	if err := s.messages.Create(placeholder); err != nil {
		return nil, err
	}
	s.invalidate(ctx, input.PageID)

	task := model.AskTask{
		MessageID: placeholder.ID,
		PageID:    input.PageID,
		Prompt:    prompt,
		Sender:    strings.TrimSpace(input.Sender),
	}
	if s.publisher == nil {
		s.failPlaceholder(ctx, placeholder)
		return nil, ErrAskEnqueue
	}
	if err := s.publisher.Publish(ctx, task); err != nil {
		s.logger.Warn("publish ask task failed", zap.Uint("message_id", placeholder.ID), zap.Error(err))
		s.failPlaceholder(ctx, placeholder)
		return nil, ErrAskEnqueue
	}

	return placeholder, nil
}

// failPlaceholder terminates a placeholder that will never be streamed into,
// so consumers watching is_complete are not left hanging.
func (s *ChatService) failPlaceholder(ctx context.Context, placeholder *model.Message) {
	_ = s.messages.UpdateText(placeholder.ID, "AI error: the response could not be generated.")
	_ = s.messages.MarkComplete(placeholder.ID)
	s.invalidate(ctx, placeholder.PageID)
}

func (s *ChatService) requireActivePage(pageID uint) error {
	page, err := s.pages.GetByID(pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return ErrPageNotFound
	}
	if !page.IsActive {
		return ErrPageInactive
	}
	return nil
}

func (s *ChatService) invalidate(ctx context.Context, pageID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.MarkDirty(ctx, pageID)
	_ = s.cache.DeleteMessages(ctx, pageID)
}
