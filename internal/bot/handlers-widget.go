package bot

import (
	"context"
	"errors"
	"fmt"

	"menu-bot/internal/catalog"
	"menu-bot/internal/session"
	"menu-bot/internal/widget"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleOpenProduct(ctx context.Context, cb *tgbotapi.CallbackQuery, args []string) {
	chatID := cb.Message.Chat.ID
	if len(args) != 1 {
		b.answerCallback(cb.ID, "Unknown menu item")
		return
	}
	productID := args[0]

	p, err := b.catalog.Product(ctx, productID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		b.answerCallback(cb.ID, "This item is no longer on the menu")
		return
	}
	if err != nil {
		b.logger.Error("Failed to load product",
			zap.Int64("chat_id", chatID),
			zap.String("product_id", productID),
			zap.Error(err))
		b.answerCallback(cb.ID, "The menu is unavailable right now")
		return
	}

	w := widget.New(chatID, p, b.amountConfig(), b.cart)

	msg := tgbotapi.NewMessage(chatID, FormatWidget(w, true))
	msg.ReplyMarkup = widgetKeyboard(w, true)
	sent, ok := b.sendMessage(msg)
	if !ok {
		b.answerCallback(cb.ID, "")
		return
	}

	if !b.saveWidget(ctx, chatID, sent.MessageID, w, true) {
		b.answerCallback(cb.ID, "")
		return
	}

	b.collapseActive(ctx, chatID, sent.MessageID)
	if err := b.sessions.SetActive(ctx, chatID, sent.MessageID); err != nil {
		b.logger.Warn("Failed to set active widget",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", sent.MessageID),
			zap.Error(err))
	}

	b.answerCallback(cb.ID, "")
}

func (b *Bot) handleOption(ctx context.Context, cb *tgbotapi.CallbackQuery, args []string) {
	if len(args) != 2 {
		b.answerCallback(cb.ID, "Unknown option")
		return
	}
	paramID, optionID := args[0], args[1]

	w, saved, ok := b.loadWidget(ctx, cb)
	if !ok {
		return
	}

	group, exists := w.Catalog().Params[paramID]
	if !exists {
		b.answerCallback(cb.ID, "Unknown option")
		return
	}
	if _, exists := group.Options[optionID]; !exists {
		b.answerCallback(cb.ID, "Unknown option")
		return
	}

	w.SetSelection(toggleOption(group, w.State().Selection, paramID, optionID))

	b.updateWidget(ctx, cb, w, saved.Expanded)
	b.answerCallback(cb.ID, "")
}

func (b *Bot) handleQuantity(ctx context.Context, cb *tgbotapi.CallbackQuery, args []string) {
	if len(args) != 1 {
		b.answerCallback(cb.ID, "")
		return
	}

	w, saved, ok := b.loadWidget(ctx, cb)
	if !ok {
		return
	}

	var changed bool
	switch args[0] {
	case quantityIncrease:
		changed = w.Amount().Increase()
	case quantityDecrease:
		changed = w.Amount().Decrease()
	}

	if !changed {
		cfg := b.amountConfig()
		b.answerCallback(cb.ID, fmt.Sprintf("You can order from %d to %d", cfg.Min, cfg.Max))
		return
	}

	b.updateWidget(ctx, cb, w, saved.Expanded)
	b.answerCallback(cb.ID, "")
}

// handleToggle expands or collapses a widget. Only one widget per chat stays expanded.
func (b *Bot) handleToggle(ctx context.Context, cb *tgbotapi.CallbackQuery, _ []string) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	w, saved, ok := b.loadWidget(ctx, cb)
	if !ok {
		return
	}

	expanded := !saved.Expanded
	if expanded {
		b.collapseActive(ctx, chatID, messageID)
		if err := b.sessions.SetActive(ctx, chatID, messageID); err != nil {
			b.logger.Warn("Failed to set active widget",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	} else if active, err := b.sessions.Active(ctx, chatID); err == nil && active == messageID {
		if err := b.sessions.ClearActive(ctx, chatID); err != nil {
			b.logger.Warn("Failed to clear active widget",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}

	b.updateWidget(ctx, cb, w, expanded)
	b.answerCallback(cb.ID, "")
}

func (b *Bot) handleAddToCart(ctx context.Context, cb *tgbotapi.CallbackQuery, _ []string) {
	chatID := cb.Message.Chat.ID

	w, _, ok := b.loadWidget(ctx, cb)
	if !ok {
		return
	}

	item, err := w.AddToCart(ctx)
	if err != nil {
		b.logger.Error("Failed to add to cart",
			zap.Int64("chat_id", chatID),
			zap.String("product_id", item.ProductID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Could not add to cart, please try again")
		return
	}

	b.answerCallback(cb.ID, fmt.Sprintf("✅ Added %s x %d for %s",
		item.Name, item.Amount, formatPrice(item.Price)))
}

func (b *Bot) handleNoop(_ context.Context, cb *tgbotapi.CallbackQuery, _ []string) {
	b.answerCallback(cb.ID, "")
}

// loadWidget rebuilds the widget behind a callback message. On failure the callback is
// already answered.
func (b *Bot) loadWidget(ctx context.Context, cb *tgbotapi.CallbackQuery) (*widget.Product, session.Widget, bool) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	saved, err := b.sessions.Get(ctx, chatID, messageID)
	if errors.Is(err, session.ErrNotFound) {
		b.answerCallback(cb.ID, "This item has expired, open it again from /menu")
		return nil, session.Widget{}, false
	}
	if err != nil {
		b.logger.Error("Failed to get widget session",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
		b.answerCallback(cb.ID, "Something went wrong, please try again")
		return nil, session.Widget{}, false
	}

	w, err := b.restoreWidget(ctx, chatID, saved)
	if errors.Is(err, catalog.ErrProductNotFound) {
		if err := b.sessions.Drop(ctx, chatID, messageID); err != nil {
			b.logger.Warn("Failed to drop widget session", zap.Error(err))
		}
		b.answerCallback(cb.ID, "This item is no longer on the menu")
		return nil, session.Widget{}, false
	}
	if err != nil {
		b.logger.Error("Failed to restore widget",
			zap.Int64("chat_id", chatID),
			zap.String("product_id", saved.ProductID),
			zap.Error(err))
		b.answerCallback(cb.ID, "The menu is unavailable right now")
		return nil, session.Widget{}, false
	}

	return w, saved, true
}

func (b *Bot) restoreWidget(ctx context.Context, chatID int64, saved session.Widget) (*widget.Product, error) {
	p, err := b.catalog.Product(ctx, saved.ProductID)
	if err != nil {
		return nil, err
	}
	return widget.Restore(chatID, p, b.amountConfig(), b.cart, saved.State), nil
}

func (b *Bot) saveWidget(ctx context.Context, chatID int64, messageID int, w *widget.Product, expanded bool) bool {
	err := b.sessions.Save(ctx, chatID, messageID, session.Widget{
		State:    w.State(),
		Expanded: expanded,
	})
	if err != nil {
		b.logger.Error("Failed to save widget session",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
		return false
	}
	return true
}

func (b *Bot) updateWidget(ctx context.Context, cb *tgbotapi.CallbackQuery, w *widget.Product, expanded bool) {
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if !b.saveWidget(ctx, chatID, messageID, w, expanded) {
		return
	}
	b.editMessage(chatID, messageID, FormatWidget(w, expanded), widgetKeyboard(w, expanded))
}

// collapseActive collapses the expanded widget of the chat unless it is keep.
func (b *Bot) collapseActive(ctx context.Context, chatID int64, keep int) {
	active, err := b.sessions.Active(ctx, chatID)
	if err != nil {
		b.logger.Warn("Failed to get active widget",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}
	if active == 0 || active == keep {
		return
	}

	saved, err := b.sessions.Get(ctx, chatID, active)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			b.logger.Warn("Failed to get active widget session",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", active),
				zap.Error(err))
		}
		return
	}
	if !saved.Expanded {
		return
	}

	w, err := b.restoreWidget(ctx, chatID, saved)
	if err != nil {
		b.logger.Warn("Failed to restore active widget",
			zap.Int64("chat_id", chatID),
			zap.String("product_id", saved.ProductID),
			zap.Error(err))
		return
	}

	if !b.saveWidget(ctx, chatID, active, w, false) {
		return
	}
	b.editMessage(chatID, active, FormatWidget(w, false), widgetKeyboard(w, false))
}
