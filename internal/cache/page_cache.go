package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"syncpad/internal/model"
)

// PageMessageCache keeps the full message list of hot pages in Redis. A short
// lived dirty marker is set around writes so a concurrent reader does not
// repopulate the cache with a stale list.
type PageMessageCache struct {
	client         *redisv9.Client
	messagesTTL    time.Duration
	dirtyMarkerTTL time.Duration
}

func NewPageMessageCache(client *redisv9.Client, messagesTTL, dirtyMarkerTTL time.Duration) *PageMessageCache {
	if messagesTTL <= 0 {
		messagesTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &PageMessageCache{
		client:         client,
		messagesTTL:    messagesTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *PageMessageCache) GetMessages(ctx context.Context, pageID uint) ([]model.Message, bool, error) {
	key := c.messagesKey(pageID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get messages failed: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached messages failed: %w", err)
	}
	return messages, true, nil
}

func (c *PageMessageCache) SetMessages(ctx context.Context, pageID uint, messages []model.Message) error {
	key := c.messagesKey(pageID)
	payload, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal messages cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.messagesTTL).Err(); err != nil {
		return fmt.Errorf("redis set messages failed: %w", err)
	}
	return nil
}

func (c *PageMessageCache) DeleteMessages(ctx context.Context, pageID uint) error {
	key := c.messagesKey(pageID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete messages failed: %w", err)
	}
	return nil
}

func (c *PageMessageCache) MarkDirty(ctx context.Context, pageID uint) error {
	key := c.dirtyKey(pageID)
	if err := c.client.Set(ctx, key, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *PageMessageCache) IsDirty(ctx context.Context, pageID uint) (bool, error) {
	key := c.dirtyKey(pageID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *PageMessageCache) messagesKey(pageID uint) string {
	return fmt.Sprintf("page:messages:%d", pageID)
}

func (c *PageMessageCache) dirtyKey(pageID uint) string {
	return fmt.Sprintf("page:messages:dirty:%d", pageID)
}
