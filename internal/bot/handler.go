package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start", "menu":
		b.handleMenu(ctx, chatID)
	case "cart":
		b.handleCart(ctx, chatID)
	case "stats":
		b.handleStats(ctx, chatID)
	case "help":
		b.handleHelp(ctx, chatID)
	default:
		b.handleUnknownCommand(ctx, chatID)
	}
}

func (b *Bot) handleDefault(ctx context.Context, chatID int64) {
	b.sendError(chatID, "I only understand the menu buttons. Try /menu.")
}

func (b *Bot) handleUnknownCommand(ctx context.Context, chatID int64) {
	b.sendError(chatID, "Unknown command. Use /help to see what I can do.")
}

func (b *Bot) handleHelp(ctx context.Context, chatID int64) {
	helpText := `Available commands:
/menu - Show the menu
/cart - Show your cart
/help - Show this help

Open a menu item, pick the options you like and press "Add to cart".`
	b.sendMessage(tgbotapi.NewMessage(chatID, helpText))
}

func (b *Bot) handleMenu(ctx context.Context, chatID int64) {
	products, err := b.catalog.Products(ctx)
	if err != nil {
		b.logger.Error("Failed to load menu",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "The menu is unavailable right now, please try again later")
		return
	}

	if len(products) == 0 {
		b.sendMessage(tgbotapi.NewMessage(chatID, "The menu is empty today."))
		return
	}

	msg := tgbotapi.NewMessage(chatID, "🍽 Our menu. Tap an item to configure it:")
	msg.ReplyMarkup = menuKeyboard(products)
	b.sendMessage(msg)
}
