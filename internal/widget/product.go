package widget

import (
	"context"
	"fmt"

	"menu-bot/internal/catalog"
	"menu-bot/internal/pricing"
)

// State is what a widget needs to be rebuilt between updates.
type State struct {
	ProductID string              `json:"product_id"`
	Selection map[string][]string `json:"selection"`
	Amount    int                 `json:"amount"`
}

// Product is one menu item widget. It owns its selection and amount exclusively;
// the catalog entry is shared and never modified.
type Product struct {
	chatID     int64
	product    *catalog.Product
	selection  pricing.Selection
	amount     *Amount
	quote      pricing.Quote
	dispatcher Dispatcher
}

// New builds a widget with the catalog defaults selected and the default amount.
func New(chatID int64, p *catalog.Product, cfg AmountConfig, d Dispatcher) *Product {
	return build(chatID, p, cfg, d, pricing.DefaultSelection(p), cfg.Default)
}

// Restore rebuilds a widget from a saved state. An out of range amount falls back to the default.
func Restore(chatID int64, p *catalog.Product, cfg AmountConfig, d Dispatcher, st State) *Product {
	return build(chatID, p, cfg, d, pricing.NewSelection(st.Selection), st.Amount)
}

func build(chatID int64, p *catalog.Product, cfg AmountConfig, d Dispatcher, sel pricing.Selection, amount int) *Product {
	w := &Product{
		chatID:     chatID,
		product:    p,
		selection:  sel,
		dispatcher: d,
	}
	w.amount = NewAmount(cfg, amount, func(v int) {
		w.handle(QuantityChanged{ProductID: p.ID, Value: v})
	})
	w.Process()
	return w
}

func (w *Product) Catalog() *catalog.Product {
	return w.product
}

func (w *Product) Amount() *Amount {
	return w.amount
}

// Selection returns the chosen option ids of a group.
func (w *Product) Selection(paramID string) []string {
	return w.selection.Options(paramID)
}

// SetSelection replaces the whole selection with raw form data and reprices.
func (w *Product) SetSelection(raw map[string][]string) pricing.Quote {
	w.selection = pricing.NewSelection(raw)
	return w.Process()
}

// Process recomputes the price state from the current selection and amount.
func (w *Product) Process() pricing.Quote {
	w.quote = pricing.Evaluate(w.product, w.selection, w.amount.Value())
	return w.quote
}

func (w *Product) Quote() pricing.Quote {
	return w.quote
}

// AddToCart commits the current configuration. The widget keeps its state and can be
// committed again.
func (w *Product) AddToCart(ctx context.Context) (pricing.LineItem, error) {
	quote := w.Process()
	item := pricing.BuildLineItem(w.product, w.selection, w.amount.Value(), quote)

	if w.dispatcher == nil {
		return item, nil
	}
	if err := w.dispatcher.Dispatch(ctx, AddToCart{ChatID: w.chatID, Item: item}); err != nil {
		return item, fmt.Errorf("dispatch add-to-cart for %s: %w", w.product.ID, err)
	}
	return item, nil
}

func (w *Product) State() State {
	return State{
		ProductID: w.product.ID,
		Selection: w.selection.Raw(),
		Amount:    w.amount.Value(),
	}
}

func (w *Product) handle(ev Event) {
	switch ev.(type) {
	case QuantityChanged:
		w.Process()
	}
}
