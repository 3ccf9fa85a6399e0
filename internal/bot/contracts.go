package bot

import (
	"context"

	"menu-bot/internal/cart"
	"menu-bot/internal/widget"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the bot talks to. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// Cart receives committed widgets and serves the cart views.
type Cart interface {
	widget.Dispatcher
	List(ctx context.Context, chatID int64) ([]cart.Item, error)
	Clear(ctx context.Context, chatID int64) (int64, error)
	Statistics(ctx context.Context) (*cart.Statistics, error)
}

var _ Cart = (*cart.Store)(nil)

type callbackHandler func(ctx context.Context, cb *tgbotapi.CallbackQuery, args []string)
