package pricing

import (
	"menu-bot/internal/catalog"

	"github.com/shopspring/decimal"
)

// Quote is the price state derived from a selection and a quantity.
type Quote struct {
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	// Indicators holds the chosen flag of every catalog option, keyed by IndicatorKey.
	Indicators map[string]bool
}

func IndicatorKey(paramID, optionID string) string {
	return paramID + "-" + optionID
}

// Evaluate walks every option of the product once, adjusting the base price and
// recording the chosen flag for the presentation layer.
//
// Default options are already included in the base price: leaving one unselected
// refunds its delta, choosing a non-default option adds its delta. Selected ids the
// catalog does not know are never visited and so have no effect.
func Evaluate(p *catalog.Product, sel Selection, quantity int) Quote {
	price := p.Price
	indicators := make(map[string]bool)

	for paramID, group := range p.Params {
		for optionID, option := range group.Options {
			selected := sel.Has(paramID, optionID)

			switch {
			case selected && !option.Default:
				price = price.Add(option.Price)
			case !selected && option.Default:
				price = price.Sub(option.Price)
			}

			indicators[IndicatorKey(paramID, optionID)] = selected
		}
	}

	return Quote{
		UnitPrice:  price,
		TotalPrice: TotalPrice(price, quantity),
		Indicators: indicators,
	}
}

func UnitPrice(p *catalog.Product, sel Selection) decimal.Decimal {
	return Evaluate(p, sel, 1).UnitPrice
}

func Indicators(p *catalog.Product, sel Selection) map[string]bool {
	return Evaluate(p, sel, 1).Indicators
}

// TotalPrice multiplies without rounding; formatting belongs to the caller.
func TotalPrice(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}
