package widget

import (
	"context"

	"menu-bot/internal/pricing"
)

// Event is a signal a widget sends to its collaborators.
type Event interface {
	EventName() string
}

type QuantityChanged struct {
	ProductID string
	Value     int
}

func (QuantityChanged) EventName() string { return "quantity-changed" }

// AddToCart carries the line item produced by a commit.
type AddToCart struct {
	ChatID int64
	Item   pricing.LineItem
}

func (AddToCart) EventName() string { return "add-to-cart" }

type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

type DispatcherFunc func(ctx context.Context, ev Event) error

func (f DispatcherFunc) Dispatch(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
