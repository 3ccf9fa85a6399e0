package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"menu-bot/internal/widget"
	"menu-bot/pkg/redis"
)

var ErrNotFound = errors.New("widget session not found")

// Widget is the saved state of one widget message.
type Widget struct {
	widget.State
	Expanded bool `json:"expanded"`
}

// Client is the subset of the Redis client the store needs.
type Client interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

var _ Client = (*redis.Client)(nil)

type Store struct {
	redis Client
	ttl   time.Duration
}

func NewStore(client Client, ttl time.Duration) *Store {
	return &Store{redis: client, ttl: ttl}
}

func widgetKey(chatID int64, messageID int) string {
	return fmt.Sprintf("widget:%d:%d", chatID, messageID)
}

func activeKey(chatID int64) string {
	return fmt.Sprintf("active:%d", chatID)
}

func (s *Store) Save(ctx context.Context, chatID int64, messageID int, w Widget) error {
	if err := s.redis.SetJSON(ctx, widgetKey(chatID, messageID), w, s.ttl); err != nil {
		return fmt.Errorf("failed to save widget: %w", err)
	}
	return nil
}

// Get loads a widget and restarts its TTL, so a widget in use does not expire.
func (s *Store) Get(ctx context.Context, chatID int64, messageID int) (Widget, error) {
	key := widgetKey(chatID, messageID)

	var w Widget
	err := s.redis.GetJSON(ctx, key, &w)
	if errors.Is(err, redis.ErrNotFound) {
		return Widget{}, ErrNotFound
	}
	if err != nil {
		return Widget{}, fmt.Errorf("failed to get widget: %w", err)
	}

	if _, err := s.redis.Expire(ctx, key, s.ttl); err != nil {
		return Widget{}, fmt.Errorf("failed to refresh widget ttl: %w", err)
	}
	return w, nil
}

func (s *Store) Drop(ctx context.Context, chatID int64, messageID int) error {
	if err := s.redis.Del(ctx, widgetKey(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to drop widget: %w", err)
	}
	return nil
}

// SetActive remembers the expanded widget message of a chat.
func (s *Store) SetActive(ctx context.Context, chatID int64, messageID int) error {
	if err := s.redis.Set(ctx, activeKey(chatID), []byte(strconv.Itoa(messageID)), s.ttl); err != nil {
		return fmt.Errorf("failed to set active widget: %w", err)
	}
	return nil
}

// Active returns the expanded widget message id, or 0 if there is none.
func (s *Store) Active(ctx context.Context, chatID int64) (int, error) {
	data, err := s.redis.Get(ctx, activeKey(chatID))
	if errors.Is(err, redis.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get active widget: %w", err)
	}

	id, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("bad active widget id %q: %w", data, err)
	}
	return id, nil
}

func (s *Store) ClearActive(ctx context.Context, chatID int64) error {
	return s.redis.Del(ctx, activeKey(chatID))
}
