package bot

import (
	"context"
	"fmt"

	"menu-bot/internal/cart"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) loadCart(ctx context.Context, chatID int64) ([]cart.Item, cart.Totals, error) {
	items, err := b.cart.List(ctx, chatID)
	if err != nil {
		return nil, cart.Totals{}, err
	}
	return items, cart.ComputeTotals(items, b.cfg.Cart.DeliveryFee), nil
}

func (b *Bot) handleCart(ctx context.Context, chatID int64) {
	items, totals, err := b.loadCart(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to load cart",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load your cart")
		return
	}

	msg := tgbotapi.NewMessage(chatID, FormatCart(items, totals))
	if len(items) > 0 {
		msg.ReplyMarkup = cartKeyboard()
	}
	b.sendMessage(msg)
}

func (b *Bot) handleCartAction(ctx context.Context, cb *tgbotapi.CallbackQuery, args []string) {
	if len(args) != 1 {
		b.answerCallback(cb.ID, "Unknown action")
		return
	}

	switch args[0] {
	case cartActionExport:
		b.handleCartExport(ctx, cb)
	case cartActionClear:
		b.handleCartClear(ctx, cb)
	default:
		b.answerCallback(cb.ID, "Unknown action")
	}
}

func (b *Bot) handleCartExport(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	items, totals, err := b.loadCart(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to load cart for export",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Could not load your cart")
		return
	}
	if len(items) == 0 {
		b.answerCallback(cb.ID, "Your cart is empty")
		return
	}

	data, err := cart.Export(items, totals)
	if err != nil {
		b.logger.Error("Failed to export cart",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Could not export your cart")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("cart_%d.xlsx", chatID),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("🛒 Cart total: %s", formatPrice(totals.Total))
	if _, err := b.api.Send(doc); err != nil {
		b.logger.Error("Failed to send cart export",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Could not send the file")
		return
	}

	b.answerCallback(cb.ID, "")
}

func (b *Bot) handleCartClear(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	removed, err := b.cart.Clear(ctx, chatID)
	if err != nil {
		b.logger.Error("Failed to clear cart",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Could not clear your cart")
		return
	}

	b.logger.Info("Cart cleared",
		zap.Int64("chat_id", chatID),
		zap.Int64("removed", removed))

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, FormatCart(nil, cart.Totals{}))
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit cart message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
	b.answerCallback(cb.ID, "Cart cleared")
}
