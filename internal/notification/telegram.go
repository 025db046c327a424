package notification

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"
)

// Notifier announces booking lifecycle events. Delivery is best effort and
// never fails the request that triggered it.
type Notifier interface {
	BookingCreated(ctx context.Context, b models.Booking)
	BookingCancelled(ctx context.Context, b models.Booking)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramNotifier struct {
	bot    sender
	chatID int64
	log    *slog.Logger
}

// NewTelegramNotifier returns a notifier posting to one admin chat. An empty
// token or chat id disables delivery.
func NewTelegramNotifier(token string, chatID int64, log *slog.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		log.Warn("telegram bot token or chat id is empty, notifications disabled")
		return &TelegramNotifier{log: log}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, log: log}, nil
}

func (n *TelegramNotifier) BookingCreated(ctx context.Context, b models.Booking) {
	text := fmt.Sprintf(
		"*New booking #%d*\n\nGuest: %s (%s)\nRoom: %d\nStay: %s to %s\nTotal: %s",
		b.ID, md(b.UserName), md(b.Email), b.RoomID, b.CheckIn, b.CheckOut, utils.FormatDollars(b.TotalPrice),
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) BookingCancelled(ctx context.Context, b models.Booking) {
	text := fmt.Sprintf(
		"*Booking #%d cancelled*\n\nGuest: %s (%s)\nRoom: %d\nStay: %s to %s",
		b.ID, md(b.UserName), md(b.Email), b.RoomID, b.CheckIn, b.CheckOut,
	)
	n.send(ctx, text)
}

// md escapes guest-supplied text for the Markdown parse mode.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	if n.bot == nil {
		n.log.Debug("notification skipped (bot disabled)", slog.String("text", text))
		return
	}

	if err := ctx.Err(); err != nil {
		n.log.Debug("notification skipped (context cancelled)", slog.Int64("chat_id", n.chatID))
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.log.Error("failed to send telegram notification",
			slog.Int64("chat_id", n.chatID),
			slog.String("error", err.Error()),
		)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) BookingCreated(context.Context, models.Booking)   {}
func (Nop) BookingCancelled(context.Context, models.Booking) {}
