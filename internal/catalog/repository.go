package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Source provides catalog products. Implemented by the Postgres repository and the menu API.
type Source interface {
	Products(ctx context.Context) ([]*Product, error)
	Product(ctx context.Context, id string) (*Product, error)
}

// Cache is the subset of the Redis client the repository uses.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const productsCacheKey = "catalog:products"

func productCacheKey(id string) string {
	return "product:" + id
}

type Repository struct {
	db     *sqlx.DB
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

var _ Source = (*Repository)(nil)

func NewRepository(db *sqlx.DB, cache Cache, ttl time.Duration, logger *zap.Logger) *Repository {
	return &Repository{db: db, cache: cache, ttl: ttl, logger: logger}
}

type productRow struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Params      []byte          `db:"params"`
	Position    int             `db:"position"`
}

func (r productRow) toProduct() (*Product, error) {
	p := &Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Position:    r.Position,
	}
	if len(r.Params) > 0 {
		if err := json.Unmarshal(r.Params, &p.Params); err != nil {
			return nil, fmt.Errorf("decode params of %s: %w", r.ID, err)
		}
	}
	return p, nil
}

const selectProducts = `
	SELECT id, name, description, price, params, position
	FROM products
	WHERE active`

func (r *Repository) Products(ctx context.Context) ([]*Product, error) {
	var cached []*Product
	if r.cacheGet(ctx, productsCacheKey, &cached) {
		return cached, nil
	}

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, selectProducts+` ORDER BY position, id`); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	r.cacheSet(ctx, productsCacheKey, products)
	return products, nil
}

func (r *Repository) Product(ctx context.Context, id string) (*Product, error) {
	var cached Product
	if r.cacheGet(ctx, productCacheKey(id), &cached) {
		return &cached, nil
	}

	var row productRow
	err := r.db.GetContext(ctx, &row, selectProducts+` AND id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	p, err := row.toProduct()
	if err != nil {
		return nil, err
	}

	r.cacheSet(ctx, productCacheKey(id), p)
	return p, nil
}

// Invalidate drops cached copies of the given products and of the product list.
func (r *Repository) Invalidate(ctx context.Context, ids ...string) error {
	if r.cache == nil {
		return nil
	}
	keys := []string{productsCacheKey}
	for _, id := range ids {
		keys = append(keys, productCacheKey(id))
	}
	return r.cache.Del(ctx, keys...)
}

// Reload drops the cached copies of every stored product, active or not, so rows
// changed outside the bot (migrations, manual edits) are read from Postgres again.
func (r *Repository) Reload(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM products`); err != nil {
		return fmt.Errorf("failed to list product ids: %w", err)
	}

	if err := r.Invalidate(ctx, ids...); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}

	r.logger.Info("Catalog cache reloaded", zap.Int("products", len(ids)))
	return nil
}

func (r *Repository) cacheGet(ctx context.Context, key string, v any) bool {
	if r.cache == nil {
		return false
	}
	return r.cache.GetJSON(ctx, key, v) == nil
}

func (r *Repository) cacheSet(ctx context.Context, key string, v any) {
	if r.cache == nil {
		return
	}
	if err := r.cache.SetJSON(ctx, key, v, r.ttl); err != nil {
		r.logger.Warn("Failed to cache catalog entry",
			zap.String("key", key),
			zap.Error(err))
	}
}
