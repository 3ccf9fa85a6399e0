package bot

import (
	"fmt"
	"strings"

	"menu-bot/internal/catalog"
	"menu-bot/internal/pricing"
	"menu-bot/internal/widget"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const optionsPerRow = 2

func callbackData(parts ...string) string {
	return strings.Join(parts, callbackSeparator)
}

func menuKeyboard(products []*catalog.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s · %s", p.Name, formatPrice(p.Price)),
				callbackData(CallbackProduct, p.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// widgetKeyboard renders the option buttons with their indicators, the amount stepper
// and the commit button. A collapsed widget only keeps the last row.
func widgetKeyboard(w *widget.Product, expanded bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	toggleLabel := "🔽 Options"
	if expanded {
		p := w.Catalog()
		indicators := w.Quote().Indicators

		for _, paramID := range p.ParamIDs() {
			group := p.Params[paramID]

			var row []tgbotapi.InlineKeyboardButton
			for _, optionID := range group.OptionIDs() {
				option := group.Options[optionID]
				label := optionLabel(option, indicators[pricing.IndicatorKey(paramID, optionID)])
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(
					label, callbackData(CallbackOption, paramID, optionID)))

				if len(row) == optionsPerRow {
					rows = append(rows, row)
					row = nil
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}

		amount := w.Amount()
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", callbackData(CallbackQuantity, quantityDecrease)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", amount.Value()), CallbackNoop),
			tgbotapi.NewInlineKeyboardButtonData("➕", callbackData(CallbackQuantity, quantityIncrease)),
		))
		toggleLabel = "🔼 Hide options"
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(toggleLabel, CallbackToggle),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Add to cart", CallbackAdd),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func optionLabel(option catalog.Option, selected bool) string {
	mark := "▫️"
	if selected {
		mark = "✅"
	}

	label := mark + " " + option.Label
	if !option.Price.IsZero() {
		label += " (" + formatDelta(option.Price) + ")"
	}
	return label
}

func cartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Export", callbackData(CallbackCart, cartActionExport)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear", callbackData(CallbackCart, cartActionClear)),
		),
	)
}
