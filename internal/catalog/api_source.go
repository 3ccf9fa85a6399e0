package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"menu-bot/pkg/api"
)

type MenuAPI interface {
	GetProducts(ctx context.Context) ([]api.Product, error)
	GetProduct(ctx context.Context, id string) (*api.Product, error)
}

// APISource reads the catalog from the remote menu API.
type APISource struct {
	client MenuAPI
}

var _ Source = (*APISource)(nil)

func NewAPISource(client MenuAPI) *APISource {
	return &APISource{client: client}
}

func (s *APISource) Products(ctx context.Context) ([]*Product, error) {
	items, err := s.client.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	products := make([]*Product, 0, len(items))
	for _, item := range items {
		p, err := fromAPI(item)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *APISource) Product(ctx context.Context, id string) (*Product, error) {
	item, err := s.client.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return fromAPI(*item)
}

func fromAPI(item api.Product) (*Product, error) {
	p := &Product{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Position:    item.Position,
	}
	if len(item.Params) > 0 && string(item.Params) != "null" {
		if err := json.Unmarshal(item.Params, &p.Params); err != nil {
			return nil, fmt.Errorf("decode params of %s: %w", item.ID, err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid product from menu api: %w", err)
	}
	return p, nil
}
