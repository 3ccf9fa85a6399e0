package bot

import (
	"fmt"
	"strings"

	"menu-bot/internal/cart"
	"menu-bot/internal/pricing"
	"menu-bot/internal/widget"

	"github.com/shopspring/decimal"
)

func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatDelta(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + formatPrice(d)
	}
	return formatPrice(d)
}

// FormatWidget renders the widget message text: chosen options, unit price and total.
func FormatWidget(w *widget.Product, expanded bool) string {
	p := w.Catalog()
	q := w.Quote()

	var sb strings.Builder
	sb.WriteString("🍴 " + p.Name)
	if expanded && p.Description != "" {
		sb.WriteString("\n" + p.Description)
	}

	if expanded {
		sb.WriteString("\n")
		for _, paramID := range p.ParamIDs() {
			group := p.Params[paramID]

			var labels []string
			for _, optionID := range group.OptionIDs() {
				if q.Indicators[pricing.IndicatorKey(paramID, optionID)] {
					labels = append(labels, group.Options[optionID].Label)
				}
			}
			if len(labels) == 0 {
				labels = []string{"none"}
			}
			fmt.Fprintf(&sb, "\n%s: %s", group.Label, strings.Join(labels, ", "))
		}
	}

	fmt.Fprintf(&sb, "\n\n💵 %s x %d = %s",
		formatPrice(q.UnitPrice),
		w.Amount().Value(),
		formatPrice(q.TotalPrice))
	return sb.String()
}

// FormatCart lists the cart lines followed by the totals.
func FormatCart(items []cart.Item, totals cart.Totals) string {
	if len(items) == 0 {
		return "🛒 Your cart is empty."
	}

	var sb strings.Builder
	sb.WriteString("🛒 Your cart:\n")
	for i, item := range items {
		fmt.Fprintf(&sb, "\n%d. %s x %d = %s", i+1, item.Name, item.Amount, formatPrice(item.Price))
		if params := cart.DescribeParams(item.Params); params != "" {
			sb.WriteString("\n   " + params)
		}
	}

	fmt.Fprintf(&sb,
		"\n──────────────────\n"+
			"Items: %d\n"+
			"Subtotal: %s\n"+
			"Delivery: %s\n"+
			"Total: %s",
		totals.Count,
		formatPrice(totals.Subtotal),
		formatPrice(totals.DeliveryFee),
		formatPrice(totals.Total),
	)
	return sb.String()
}

func FormatStatistics(stats *cart.Statistics) string {
	return fmt.Sprintf(
		"📊 Cart statistics\n\n"+
			"Items in carts: %d\n"+
			"Revenue: %s\n"+
			"Chats: %d\n"+
			"Added to cart: %d times",
		stats.Items,
		formatPrice(stats.Revenue),
		stats.Chats,
		stats.Commits,
	)
}
