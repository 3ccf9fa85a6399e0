package bot

import (
	"context"
	"strings"
	"sync"

	"menu-bot/internal/catalog"
	"menu-bot/internal/config"
	"menu-bot/internal/session"
	"menu-bot/internal/widget"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	CallbackProduct  = "product"
	CallbackOption   = "opt"
	CallbackQuantity = "qty"
	CallbackToggle   = "toggle"
	CallbackAdd      = "add"
	CallbackCart     = "cart"
	CallbackNoop     = "noop"
)

const (
	callbackSeparator = ":"
	quantityIncrease  = "inc"
	quantityDecrease  = "dec"
	cartActionExport  = "export"
	cartActionClear   = "clear"
)

type Bot struct {
	api       Sender
	logger    *zap.Logger
	catalog   catalog.Source
	sessions  *session.Store
	cart      Cart
	cfg       *config.Config
	mu        sync.Mutex
	callbacks map[string]callbackHandler
}

func New(
	api Sender,
	source catalog.Source,
	sessions *session.Store,
	cart Cart,
	cfg *config.Config,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:      api,
		logger:   logger,
		catalog:  source,
		sessions: sessions,
		cart:     cart,
		cfg:      cfg,
	}

	b.registerHandlers()
	return b
}

func (b *Bot) registerHandlers() {
	b.callbacks = map[string]callbackHandler{
		CallbackProduct:  b.handleOpenProduct,
		CallbackOption:   b.handleOption,
		CallbackQuantity: b.handleQuantity,
		CallbackToggle:   b.handleToggle,
		CallbackAdd:      b.handleAddToCart,
		CallbackCart:     b.handleCartAction,
		CallbackNoop:     b.handleNoop,
	}
}

func (b *Bot) amountConfig() widget.AmountConfig {
	return b.cfg.Amount.Widget()
}

// Start consumes updates until the context is cancelled or the channel is closed.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	b.logger.Info("Starting bot")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.logger.Info("Update channel closed")
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one update. Updates are handled one at a time.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case update.Message != nil:
		b.processMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.processCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	b.handleDefault(ctx, chatID)
}

func (b *Bot) processCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		b.answerCallback(cb.ID, "")
		return
	}

	parts := strings.Split(cb.Data, callbackSeparator)

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", cb.Message.Chat.ID),
		zap.Int("message_id", cb.Message.MessageID),
		zap.String("data", cb.Data))

	handler, ok := b.callbacks[parts[0]]
	if !ok {
		b.logger.Warn("Unknown callback", zap.String("data", cb.Data))
		b.answerCallback(cb.ID, "Unknown action")
		return
	}
	handler(ctx, cb, parts[1:])
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) (tgbotapi.Message, bool) {
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, "❌ "+text))
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("Failed to answer callback",
			zap.String("callback_id", callbackID),
			zap.Error(err))
	}
}
