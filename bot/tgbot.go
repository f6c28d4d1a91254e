// Package bot delivers operational alerts to the administrator over
// Telegram and answers a few admin commands.
package bot

import (
	"ShelfGuardian/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

const maxMessageLength = 4096

// StatusSource reports a one-line service status for the /status command.
type StatusSource interface {
	Status(ctx context.Context) string
}

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	status      StatusSource
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SetStatusSource(status StatusSource) {
	t.status = status
}

// Start polls for updates until ctx is done.
func (t *TgBot) Start(ctx context.Context) error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Warn("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	dispatcher.AddHandler(handlers.NewCommand("status", t.statusCommand))

	updater := ext.NewUpdater(dispatcher, nil)
	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("starting polling: %w", err)
	}

	<-ctx.Done()
	return updater.Stop()
}

func (t *TgBot) statusCommand(b *tgbotapi.Bot, ctx *ext.Context) error {
	if ctx.EffectiveChat == nil || ctx.EffectiveChat.Id != t.adminId {
		return nil
	}
	text := "ShelfGuardian is running"
	if t.status != nil {
		text = t.status.Status(context.Background())
	}
	_, err := b.SendMessage(ctx.EffectiveChat.Id, text, nil)
	return err
}

// SendMessage delivers msg to the administrator chat.
func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(truncate(text, maxMessageLength/2))
	if sanitized == "" {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
		return
	}

	_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
		ParseMode: "MarkdownV2",
	})
	if err == nil {
		return
	}

	// Fall back to plain text when markdown parsing fails on Telegram's side.
	_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
	if err != nil {
		// Not logged through t.log at error level: that would loop back here.
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("sending message", sl.Err(err))
	}
}

// sanitize escapes MarkdownV2 reserved characters.
func sanitize(input string) string {
	const reserved = "\\`_*[]()~>#+-=|{}.!"

	var b strings.Builder
	b.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reserved, char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
