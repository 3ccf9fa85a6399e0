package cart

import (
	"sort"
	"strings"

	"menu-bot/internal/pricing"

	"github.com/shopspring/decimal"
)

type Totals struct {
	Count       int
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals sums line prices. An empty cart has no delivery fee.
func ComputeTotals(items []Item, deliveryFee decimal.Decimal) Totals {
	t := Totals{Subtotal: decimal.Zero, DeliveryFee: decimal.Zero}
	for _, item := range items {
		t.Count += item.Amount
		t.Subtotal = t.Subtotal.Add(item.Price)
	}
	if t.Count > 0 {
		t.DeliveryFee = deliveryFee
	}
	t.Total = t.Subtotal.Add(t.DeliveryFee)
	return t
}

// DescribeParams renders chosen options as "Crust: Thick; Toppings: Olives, Salami".
// Groups with nothing chosen are left out.
func DescribeParams(params map[string]pricing.ChosenParam) string {
	paramIDs := make([]string, 0, len(params))
	for id := range params {
		paramIDs = append(paramIDs, id)
	}
	sort.Strings(paramIDs)

	parts := make([]string, 0, len(paramIDs))
	for _, paramID := range paramIDs {
		param := params[paramID]
		if len(param.Options) == 0 {
			continue
		}

		optionIDs := make([]string, 0, len(param.Options))
		for id := range param.Options {
			optionIDs = append(optionIDs, id)
		}
		sort.Strings(optionIDs)

		labels := make([]string, 0, len(optionIDs))
		for _, id := range optionIDs {
			labels = append(labels, param.Options[id])
		}
		parts = append(parts, param.Label+": "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, "; ")
}
