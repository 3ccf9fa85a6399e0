package widget

import (
	"context"
	"errors"
	"testing"

	"menu-bot/internal/catalog"
	"menu-bot/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAmount = AmountConfig{Default: 1, Min: 1, Max: 10}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:    "pizza",
		Name:  "Pizza",
		Price: dec("10"),
		Params: map[string]catalog.ParamGroup{
			"size": {
				Label: "Size",
				Type:  catalog.TypeRadios,
				Options: map[string]catalog.Option{
					"small": {Label: "Small", Price: dec("0"), Default: true},
					"large": {Label: "Large", Price: dec("5")},
				},
			},
			"extras": {
				Label: "Extras",
				Type:  catalog.TypeCheckboxes,
				Options: map[string]catalog.Option{
					"cheese": {Label: "Cheese", Price: dec("1.50")},
				},
			},
		},
	}
}

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Dispatch(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestNew_SeedsDefaults(t *testing.T) {
	w := New(1, testProduct(), testAmount, nil)

	assert.Equal(t, []string{"small"}, w.Selection("size"))
	assert.Empty(t, w.Selection("extras"))
	assert.Equal(t, 1, w.Amount().Value())
	assertPrice(t, "10", w.Quote().UnitPrice)
	assert.True(t, w.Quote().Indicators["size-small"])
}

func TestSetSelection_ReplacesWholesale(t *testing.T) {
	w := New(1, testProduct(), testAmount, nil)

	q := w.SetSelection(map[string][]string{"size": {"large"}, "extras": {"cheese"}})
	assertPrice(t, "16.50", q.UnitPrice)

	// extras missing from the input means nothing selected there
	q = w.SetSelection(map[string][]string{"size": {"large"}})
	assertPrice(t, "15", q.UnitPrice)
	assert.Empty(t, w.Selection("extras"))
	assert.False(t, q.Indicators["extras-cheese"])
}

func TestQuantityChange_Reprices(t *testing.T) {
	w := New(1, testProduct(), testAmount, nil)
	w.SetSelection(map[string][]string{"size": {"large"}})

	require.True(t, w.Amount().SetValue(3))
	assertPrice(t, "15", w.Quote().UnitPrice)
	assertPrice(t, "45", w.Quote().TotalPrice)

	require.True(t, w.Amount().Decrease())
	assertPrice(t, "30", w.Quote().TotalPrice)
}

func TestAddToCart(t *testing.T) {
	rec := &recorder{}
	w := New(42, testProduct(), testAmount, rec)
	w.SetSelection(map[string][]string{"size": {"large"}, "extras": {"cheese"}})
	w.Amount().SetValue(2)

	item, err := w.AddToCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "pizza", item.ProductID)
	assert.Equal(t, 2, item.Amount)
	assertPrice(t, "16.50", item.PriceSingle)
	assertPrice(t, "33", item.Price)
	assert.Equal(t, map[string]string{"large": "Large"}, item.Params["size"].Options)

	require.Len(t, rec.events, 1)
	ev, ok := rec.events[0].(AddToCart)
	require.True(t, ok)
	assert.Equal(t, int64(42), ev.ChatID)
	assert.Equal(t, item, ev.Item)
}

func TestAddToCart_KeepsConfiguring(t *testing.T) {
	rec := &recorder{}
	w := New(1, testProduct(), testAmount, rec)

	first, err := w.AddToCart(context.Background())
	require.NoError(t, err)

	w.SetSelection(map[string][]string{"size": {"large"}})
	second, err := w.AddToCart(context.Background())
	require.NoError(t, err)

	assertPrice(t, "10", first.PriceSingle)
	assertPrice(t, "15", second.PriceSingle)
	assert.Equal(t, []string{"large"}, w.Selection("size"))
	assert.Len(t, rec.events, 2)
}

func TestAddToCart_DispatchError(t *testing.T) {
	cartDown := errors.New("cart down")
	var seen Event
	d := DispatcherFunc(func(_ context.Context, ev Event) error {
		seen = ev
		return cartDown
	})
	w := New(1, testProduct(), testAmount, d)

	item, err := w.AddToCart(context.Background())
	require.ErrorIs(t, err, cartDown)
	assert.Equal(t, "pizza", item.ProductID)

	commit, ok := seen.(AddToCart)
	require.True(t, ok)
	assert.Equal(t, item, commit.Item)
}

func TestStateRoundTrip(t *testing.T) {
	w := New(1, testProduct(), testAmount, nil)
	w.SetSelection(map[string][]string{"size": {"large"}, "extras": {"cheese"}})
	w.Amount().SetValue(4)

	restored := Restore(1, testProduct(), testAmount, nil, w.State())

	assert.Equal(t, w.State(), restored.State())
	assertPrice(t, w.Quote().TotalPrice.String(), restored.Quote().TotalPrice)
}

func TestRestore_InvalidAmountFallsBack(t *testing.T) {
	w := Restore(1, testProduct(), testAmount, nil, State{ProductID: "pizza", Amount: 99})
	assert.Equal(t, 1, w.Amount().Value())
	// a restored empty selection refunds nothing here: small has a zero delta
	assertPrice(t, "10", w.Quote().UnitPrice)
}

func TestProcess_MatchesEngine(t *testing.T) {
	p := testProduct()
	w := New(1, p, testAmount, nil)
	raw := map[string][]string{"extras": {"cheese"}}
	w.SetSelection(raw)

	want := pricing.Evaluate(p, pricing.NewSelection(raw), 1)
	assert.Equal(t, want.Indicators, w.Quote().Indicators)
	assertPrice(t, want.UnitPrice.String(), w.Quote().UnitPrice)
}
