package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/roomshare/internal/billing"
	"github.com/mmynk/roomshare/internal/ledger"
	"github.com/mmynk/roomshare/internal/metrics"
	"github.com/mmynk/roomshare/internal/middleware"
	"github.com/mmynk/roomshare/internal/models"
	"github.com/mmynk/roomshare/internal/notify"
	"github.com/mmynk/roomshare/internal/payments"
	"github.com/mmynk/roomshare/internal/property"
)

// Core bundles the components exposed over RPC. It is built once in main.
type Core struct {
	Shares    *ledger.Ledger
	Bills     *billing.Ledger
	Generator *billing.Generator
	Payments  *payments.Workflow
	Property  *property.Store

	Metrics  *metrics.Metrics
	Notifier notify.Notifier
	Currency Currency
	Logger   *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Core) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Core) today() models.Date {
	if c.Now == nil {
		return models.DateOf(time.Now())
	}
	return models.DateOf(c.Now())
}

// actor returns the calling occupant, falling back to the primary occupant.
func (c *Core) actor(ctx context.Context) string {
	if id := middleware.GetActorID(ctx); id != "" {
		return id
	}
	if primary, ok := c.Shares.Primary(); ok {
		return primary.ID
	}
	return ""
}

// observeAllocation refreshes the allocation gauges after a share change.
func (c *Core) observeAllocation() {
	if c.Metrics == nil {
		return
	}
	c.Metrics.SetAllocation(
		len(c.Shares.ActiveShares()),
		c.Shares.TotalRentShares(),
		c.Shares.TotalUtilitiesShares(),
		c.Shares.Budget(),
	)
}

func (c *Core) notify(ctx context.Context, event notify.Event) {
	notify.Send(ctx, c.Notifier, c.logger(), event)
}
