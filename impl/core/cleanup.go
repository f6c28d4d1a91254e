package core

import (
	"ShelfGuardian/entity"
	"ShelfGuardian/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type cleanupRun struct {
	at      time.Time
	deleted int64
}

// Status summarises the service state for the admin bot.
func (c *Core) Status(_ context.Context) string {
	c.mu.Lock()
	last := c.lastCleanup
	c.mu.Unlock()

	connected := 0
	if c.publisher != nil {
		connected = len(c.publisher.ConnectedUsers())
	}

	status := fmt.Sprintf("ShelfGuardian is running, %d realtime users connected", connected)
	if last.at.IsZero() {
		return status + ", no cleanup yet"
	}
	return fmt.Sprintf("%s, last cleanup %s removed %d products", status, last.at.Format(time.RFC3339), last.deleted)
}

// Init starts the daily cleanup loop; it stops when ctx is done.
func (c *Core) Init(ctx context.Context) {
	go func() {
		for {
			now := c.now()
			nextRun := time.Date(now.Year(), now.Month(), now.Day(), c.cleanupHour, 0, 0, 0, now.Location())
			if !now.Before(nextRun) {
				nextRun = nextRun.Add(24 * time.Hour)
			}
			c.log.With(
				slog.Time("nextRun", nextRun),
			).Info("next expired products cleanup")

			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Until(nextRun)):
			}

			if _, err := c.Cleanup(ctx); err != nil {
				c.log.Error("expired products cleanup", sl.Err(err))
			}
			c.NotifyExpiring(ctx)
		}
	}()
}

// Cleanup deletes products whose expiry date is more than expiredDays in
// the past.
func (c *Core) Cleanup(ctx context.Context) (int64, error) {
	if c.repo == nil {
		return 0, fmt.Errorf("repository not initialized")
	}

	before := c.today().AddDays(-c.expiredDays)
	deleted, err := c.repo.DeleteExpiredBefore(ctx, before)
	if err != nil {
		return 0, err
	}

	if c.metrics != nil {
		c.metrics.CleanupDeleted(deleted)
	}
	c.mu.Lock()
	c.lastCleanup = cleanupRun{at: c.now(), deleted: deleted}
	c.mu.Unlock()

	c.log.With(
		slog.String("before", before.String()),
		slog.Int64("deleted", deleted),
	).Info("expired products cleanup")

	return deleted, nil
}

// NotifyExpiring sends every connected user the products expiring within
// the configured window.
func (c *Core) NotifyExpiring(ctx context.Context) {
	if c.publisher == nil || c.repo == nil {
		return
	}

	today := c.today()
	for _, userID := range c.publisher.ConnectedUsers() {
		products, err := c.repo.ListProductsByExpiry(ctx, entity.ExpiryFilter{
			UserID: userID,
			From:   today,
			To:     today.AddDays(c.expiringDays),
		})
		if err != nil {
			c.log.With(slog.Int64("user_id", userID), sl.Err(err)).Error("listing expiring products")
			continue
		}
		if len(products) == 0 {
			continue
		}
		c.publish(userID, entity.EventExpiringSoon, products)
	}
}
