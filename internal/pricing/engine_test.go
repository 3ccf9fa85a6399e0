package pricing

import (
	"testing"

	"menu-bot/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sizeProduct() *catalog.Product {
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
		},
	}
}

func toppingsProduct() *catalog.Product {
	return &catalog.Product{
		ID:    "pizza-deluxe",
		Name:  "Pizza Deluxe",
		Price: dec("20.50"),
		Params: map[string]catalog.ParamGroup{
			"toppings": {
				Label: "Toppings",
				Type:  catalog.TypeCheckboxes,
				Options: map[string]catalog.Option{
					"olives":  {Label: "Olives", Price: dec("2.10"), Default: true},
					"salami":  {Label: "Salami", Price: dec("3.30"), Default: true},
					"peppers": {Label: "Peppers", Price: dec("1.20")},
					"onion":   {Label: "Onion", Price: dec("0.70")},
				},
			},
			"crust": {
				Label: "Crust",
				Type:  catalog.TypeRadios,
				Options: map[string]catalog.Option{
					"thin":  {Label: "Thin", Price: dec("0"), Default: true},
					"thick": {Label: "Thick", Price: dec("2")},
				},
			},
		},
	}
}

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestUnitPrice_Scenarios(t *testing.T) {
	p := sizeProduct()

	tests := []struct {
		name string
		raw  map[string][]string
		want string
	}{
		{"nothing selected", map[string][]string{}, "10"},
		{"nil selection", nil, "10"},
		{"large selected", map[string][]string{"size": {"large"}}, "15"},
		{"default selected", map[string][]string{"size": {"small"}}, "10"},
		{"unknown option", map[string][]string{"size": {"xlarge"}}, "10"},
		{"unknown group", map[string][]string{"colour": {"red"}}, "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPrice(t, tt.want, UnitPrice(p, NewSelection(tt.raw)))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	assertPrice(t, "45", TotalPrice(dec("15"), 3))
	assertPrice(t, "0", TotalPrice(dec("15"), 0))
	assertPrice(t, "61.5", TotalPrice(dec("20.50"), 3))
}

func TestEvaluate_TotalIsUnitTimesQuantity(t *testing.T) {
	p := toppingsProduct()
	sel := NewSelection(map[string][]string{"toppings": {"olives", "peppers"}, "crust": {"thick"}})

	for qty := 1; qty <= 10; qty++ {
		q := Evaluate(p, sel, qty)
		assertPrice(t, q.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).String(), q.TotalPrice)
	}
}

func TestUnitPrice_Deterministic(t *testing.T) {
	p := toppingsProduct()
	raw := map[string][]string{"toppings": {"onion", "salami"}, "crust": {"thin"}}

	first := UnitPrice(p, NewSelection(raw))
	for i := 0; i < 50; i++ {
		assertPrice(t, first.String(), UnitPrice(p, NewSelection(raw)))
	}
}

func TestUnitPrice_DefaultRefundLaw(t *testing.T) {
	p := toppingsProduct()
	withSalami := NewSelection(map[string][]string{"toppings": {"olives", "salami"}, "crust": {"thin"}})
	withoutSalami := NewSelection(map[string][]string{"toppings": {"olives"}, "crust": {"thin"}})

	base := UnitPrice(p, withSalami)
	assertPrice(t, "20.50", base)

	refunded := UnitPrice(p, withoutSalami)
	assertPrice(t, base.Sub(dec("3.30")).String(), refunded)

	// select, deselect, select again: no drift
	for i := 0; i < 5; i++ {
		assertPrice(t, "17.20", UnitPrice(p, withoutSalami))
		assertPrice(t, "20.50", UnitPrice(p, withSalami))
	}
}

func TestUnitPrice_NonDefaultAdditionLaw(t *testing.T) {
	p := toppingsProduct()
	defaults := DefaultSelection(p)
	withPeppers := NewSelection(map[string][]string{"toppings": {"olives", "salami", "peppers"}, "crust": {"thin"}})

	assertPrice(t, UnitPrice(p, defaults).Add(dec("1.20")).String(), UnitPrice(p, withPeppers))
}

func TestUnitPrice_Idempotent(t *testing.T) {
	p := toppingsProduct()

	once := NewSelection(map[string][]string{"toppings": {"peppers"}})
	twice := NewSelection(map[string][]string{"toppings": {"peppers", "peppers"}})
	assertPrice(t, UnitPrice(p, once).String(), UnitPrice(p, twice))

	// deselecting something never selected is a no-op
	empty := NewSelection(map[string][]string{"toppings": {}})
	missing := NewSelection(nil)
	assertPrice(t, UnitPrice(p, empty).String(), UnitPrice(p, missing))
}

func TestUnitPrice_AllDefaultsDeselected(t *testing.T) {
	p := toppingsProduct()
	// 20.50 - 2.10 - 3.30 - 0
	assertPrice(t, "15.10", UnitPrice(p, NewSelection(nil)))
}

func TestUnitPrice_NegativeDelta(t *testing.T) {
	p := &catalog.Product{
		ID:    "salad",
		Price: dec("9"),
		Params: map[string]catalog.ParamGroup{
			"dressing": {Options: map[string]catalog.Option{
				"none": {Label: "No dressing", Price: dec("-1.5")},
			}},
		},
	}
	assertPrice(t, "7.5", UnitPrice(p, NewSelection(map[string][]string{"dressing": {"none"}})))
}

func TestEvaluate_Indicators(t *testing.T) {
	p := sizeProduct()

	q := Evaluate(p, NewSelection(map[string][]string{"size": {"large", "xlarge"}}), 1)
	require.Len(t, q.Indicators, 2)
	assert.True(t, q.Indicators["size-large"])
	// indicator follows selection, not default status
	assert.False(t, q.Indicators["size-small"])
	_, ok := q.Indicators["size-xlarge"]
	assert.False(t, ok)
}

func TestIndicators_MatchEvaluate(t *testing.T) {
	p := toppingsProduct()

	selections := []map[string][]string{
		{},
		{"toppings": {"olives", "peppers"}, "crust": {"thick"}},
		{"toppings": {"anchovies"}, "nosuchgroup": {"x"}},
	}
	for _, raw := range selections {
		sel := NewSelection(raw)
		assert.Equal(t, Evaluate(p, sel, 3).Indicators, Indicators(p, sel), "selection %v", raw)
	}

	sizes := sizeProduct()
	// default option left out of the selection
	got := Indicators(sizes, NewSelection(map[string][]string{"size": {"large"}}))
	assert.Equal(t, map[string]bool{"size-small": false, "size-large": true}, got)

	// unknown ids get no indicator and do not flip known ones
	got = Indicators(sizes, NewSelection(map[string][]string{"size": {"xlarge"}}))
	assert.Equal(t, map[string]bool{"size-small": false, "size-large": false}, got)
}

func TestDefaultSelection(t *testing.T) {
	p := toppingsProduct()
	sel := DefaultSelection(p)

	assert.Equal(t, []string{"olives", "salami"}, sel.Options("toppings"))
	assert.Equal(t, []string{"thin"}, sel.Options("crust"))
	assertPrice(t, "20.50", UnitPrice(p, sel))
}

func TestSelection_Raw(t *testing.T) {
	sel := NewSelection(map[string][]string{"toppings": {"onion", "olives"}, "crust": {}})

	assert.Equal(t, map[string][]string{"toppings": {"olives", "onion"}}, sel.Raw())
	assert.NotNil(t, sel.Options("missing"))
	assert.Empty(t, sel.Options("missing"))
}
