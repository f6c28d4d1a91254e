package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender delivers a plain text message to the administrator.
type Sender interface {
	SendMessage(msg string)
}

// TelegramHandler forwards records at or above minLevel to the sender,
// then passes every record to the wrapped handler.
type TelegramHandler struct {
	next     slog.Handler
	sender   Sender
	minLevel slog.Level
	attrs    []slog.Attr
}

func SetupTelegramHandler(log *slog.Logger, sender Sender, minLevel slog.Level) *slog.Logger {
	return slog.New(&TelegramHandler{
		next:     log.Handler(),
		sender:   sender,
		minLevel: minLevel,
	})
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level) || level >= h.minLevel
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel && h.sender != nil {
		go h.sender.SendMessage(h.format(r))
	}
	if h.next.Enabled(ctx, r.Level) {
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		next:     h.next.WithAttrs(attrs),
		sender:   h.sender,
		minLevel: h.minLevel,
		attrs:    merged,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		next:     h.next.WithGroup(name),
		sender:   h.sender,
		minLevel: h.minLevel,
		attrs:    h.attrs,
	}
}

func (h *TelegramHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
	for _, a := range h.attrs {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		return true
	})
	return b.String()
}
