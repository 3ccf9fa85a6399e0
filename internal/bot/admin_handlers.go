package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (b *Bot) isAdmin(chatID int64) bool {
	return b.cfg.IsAdmin(chatID)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	if !b.isAdmin(chatID) {
		b.handleUnknownCommand(ctx, chatID)
		return
	}

	stats, err := b.cart.Statistics(ctx)
	if err != nil {
		b.logger.Error("Failed to get cart statistics",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendError(chatID, "Could not load statistics")
		return
	}

	b.sendMessage(tgbotapi.NewMessage(chatID, FormatStatistics(stats)))
}
