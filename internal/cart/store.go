package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"menu-bot/internal/pricing"
	"menu-bot/internal/widget"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	statsCacheKey   = "cart_stats"
	commitsCacheKey = "cart_commits"
)

// Item is a committed line item as stored for a chat.
type Item struct {
	ID        uuid.UUID
	ChatID    int64
	CreatedAt time.Time
	pricing.LineItem
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Incr(ctx context.Context, key string) (int64, error)
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Store is the cart side of the add-to-cart signal.
type Store struct {
	db     *sqlx.DB
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

var _ widget.Dispatcher = (*Store)(nil)

func NewStore(db *sqlx.DB, cache Cache, logger *zap.Logger) *Store {
	return &Store{db: db, cache: cache, logger: logger, now: time.Now}
}

// Dispatch stores AddToCart payloads. Other signals are not the cart's business.
func (s *Store) Dispatch(ctx context.Context, ev widget.Event) error {
	s.logger.Debug("Widget event received", zap.String("event", ev.EventName()))

	switch e := ev.(type) {
	case widget.AddToCart:
		_, err := s.Add(ctx, e.ChatID, e.Item)
		return err
	default:
		return nil
	}
}

type itemRow struct {
	ID          uuid.UUID       `db:"id"`
	ChatID      int64           `db:"chat_id"`
	ProductID   string          `db:"product_id"`
	Name        string          `db:"name"`
	Amount      int             `db:"amount"`
	PriceSingle decimal.Decimal `db:"price_single"`
	Price       decimal.Decimal `db:"price"`
	Params      []byte          `db:"params"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (s *Store) Add(ctx context.Context, chatID int64, li pricing.LineItem) (Item, error) {
	const query = `
		INSERT INTO cart_items (
			id, chat_id, product_id, name, amount, price_single, price, params, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	params, err := json.Marshal(li.Params)
	if err != nil {
		return Item{}, fmt.Errorf("marshal params: %w", err)
	}

	item := Item{
		ID:        uuid.New(),
		ChatID:    chatID,
		CreatedAt: s.now().UTC(),
		LineItem:  li,
	}

	_, err = s.db.ExecContext(ctx, query,
		item.ID,
		item.ChatID,
		li.ProductID,
		li.Name,
		li.Amount,
		li.PriceSingle,
		li.Price,
		params,
		item.CreatedAt,
	)
	if err != nil {
		return Item{}, fmt.Errorf("failed to save cart item: %w", err)
	}

	s.countCommit(ctx)
	s.invalidateStats(ctx)

	s.logger.Info("Line item added to cart",
		zap.Int64("chat_id", chatID),
		zap.String("product_id", li.ProductID),
		zap.Int("amount", li.Amount),
		zap.String("price", li.Price.String()))

	return item, nil
}

func (s *Store) List(ctx context.Context, chatID int64) ([]Item, error) {
	const query = `
		SELECT id, chat_id, product_id, name, amount, price_single, price, params, created_at
		FROM cart_items
		WHERE chat_id = $1
		ORDER BY created_at, id`

	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, chatID); err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item := Item{
			ID:        row.ID,
			ChatID:    row.ChatID,
			CreatedAt: row.CreatedAt,
			LineItem: pricing.LineItem{
				ProductID:   row.ProductID,
				Name:        row.Name,
				Amount:      row.Amount,
				PriceSingle: row.PriceSingle,
				Price:       row.Price,
			},
		}
		if err := json.Unmarshal(row.Params, &item.Params); err != nil {
			return nil, fmt.Errorf("decode params of cart item %s: %w", row.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) Clear(ctx context.Context, chatID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE chat_id = $1`, chatID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	s.invalidateStats(ctx)
	return n, nil
}

// Statistics describes what is in the carts now. Commits counts every add-to-cart ever
// made, cleared carts included.
type Statistics struct {
	Items   int             `json:"items" db:"items"`
	Revenue decimal.Decimal `json:"revenue" db:"revenue"`
	Chats   int             `json:"chats" db:"chats"`
	Commits int64           `json:"commits" db:"-"`
}

func (s *Store) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if s.cache != nil && s.cache.GetJSON(ctx, statsCacheKey, &stats) == nil {
		return &stats, nil
	}

	err := s.db.GetContext(ctx, &stats, `
		SELECT
			COALESCE(SUM(amount), 0) AS items,
			COALESCE(SUM(price), 0) AS revenue,
			COUNT(DISTINCT chat_id) AS chats
		FROM cart_items
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart statistics: %w", err)
	}
	stats.Commits = s.commits(ctx)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats, time.Hour); err != nil {
			s.logger.Warn("Failed to cache cart statistics", zap.Error(err))
		}
	}
	return &stats, nil
}

func (s *Store) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate cart statistics", zap.Error(err))
	}
}

func (s *Store) countCommit(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, commitsCacheKey); err != nil {
		s.logger.Warn("Failed to count cart commit", zap.Error(err))
	}
}

func (s *Store) commits(ctx context.Context) int64 {
	if s.cache == nil {
		return 0
	}
	data, err := s.cache.Get(ctx, commitsCacheKey)
	if err != nil {
		return 0
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		s.logger.Warn("Bad cart commit counter", zap.ByteString("value", data))
		return 0
	}
	return n
}
