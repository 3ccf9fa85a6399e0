package pricing

import (
	"menu-bot/internal/catalog"

	"github.com/shopspring/decimal"
)

// LineItem is the immutable record handed to the cart on commit.
type LineItem struct {
	ProductID   string                 `json:"id"`
	Name        string                 `json:"name"`
	Amount      int                    `json:"amount"`
	PriceSingle decimal.Decimal        `json:"priceSingle"`
	Price       decimal.Decimal        `json:"price"`
	Params      map[string]ChosenParam `json:"params"`
}

type ChosenParam struct {
	Label   string            `json:"label"`
	Options map[string]string `json:"options"`
}

// BuildLineItem summarises the selection. Prices come from q, which the caller must
// have computed from the same selection and quantity.
func BuildLineItem(p *catalog.Product, sel Selection, quantity int, q Quote) LineItem {
	return LineItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Amount:      quantity,
		PriceSingle: q.UnitPrice,
		Price:       q.TotalPrice,
		Params:      ChosenParams(p, sel),
	}
}

// ChosenParams has an entry for every catalog group, even when nothing is selected in it.
func ChosenParams(p *catalog.Product, sel Selection) map[string]ChosenParam {
	params := make(map[string]ChosenParam, len(p.Params))
	for paramID, group := range p.Params {
		chosen := ChosenParam{
			Label:   group.Label,
			Options: make(map[string]string),
		}
		for optionID, option := range group.Options {
			if sel.Has(paramID, optionID) {
				chosen.Options[optionID] = option.Label
			}
		}
		params[paramID] = chosen
	}
	return params
}
