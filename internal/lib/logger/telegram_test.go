package logger

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	mu   sync.Mutex
	msgs []string
	done chan struct{}
}

func (c *captureSender) SendMessage(msg string) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
	c.done <- struct{}{}
}

func TestTelegramHandlerForwardsErrors(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sender := &captureSender{done: make(chan struct{}, 1)}

	lg := SetupTelegramHandler(base, sender, slog.LevelError)
	lg.With(slog.String("module", "test")).Info("just info")
	lg.With(slog.String("module", "test")).Error("cleanup failed", slog.String("error", "boom"))

	select {
	case <-sender.done:
	case <-time.After(time.Second):
		t.Fatal("message was not forwarded")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.msgs, 1)
	assert.Contains(t, sender.msgs[0], "ERROR: cleanup failed")
	assert.Contains(t, sender.msgs[0], "module: test")
	assert.Contains(t, sender.msgs[0], "error: boom")

	assert.Contains(t, buf.String(), "just info")
	assert.Contains(t, buf.String(), "cleanup failed")
}
