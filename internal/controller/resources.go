// ABOUTME: Resource controller: loads, polls, collects and upgrades
// ABOUTME: Applies only the newest response to the resource view

package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/markalston/realm-client/internal/client"
	"golang.org/x/sync/singleflight"
)

// ResourceController drives the game page
type ResourceController struct {
	api      GameAPI
	tokens   TokenSource
	reporter Reporter
	view     ResourceView

	loads   singleflight.Group
	collect inflight
	upgrade inflight
	seq     sequencer
}

// NewResourceController creates a resource controller
func NewResourceController(api GameAPI, tokens TokenSource, reporter Reporter, view ResourceView) *ResourceController {
	return &ResourceController{api: api, tokens: tokens, reporter: reporter, view: view}
}

// snapshot returns the last resource state shown and whether one has been shown
func (c *ResourceController) snapshot() (client.ResourceState, bool) {
	return c.seq.current()
}

// Pending reports whether a collect or upgrade is awaiting a response
func (c *ResourceController) Pending() bool {
	return c.collect.Busy() || c.upgrade.Busy()
}

// Load fetches the resource counters. Concurrent calls share one request,
// which runs detached from any single caller's cancellation.
func (c *ResourceController) Load(ctx context.Context) error {
	ch := c.loads.DoChan("resources", func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		return r.Err
	}
}

func (c *ResourceController) load(ctx context.Context) (*client.ResourceState, error) {
	seq := c.seq.start()
	state, err := c.api.Resources(ctx, c.tokens.Token(ctx))
	if err != nil {
		slog.Error("Failed to load resources", "error", err)
		reportFailure(c.reporter, "load resources", err)
		return nil, err
	}
	if !c.seq.apply(seq, *state, c.view.ShowResources) {
		slog.Debug("Dropped stale resource response", "seq", seq)
	}
	return state, nil
}

// Collect gathers accrued resources and shows the new counters
func (c *ResourceController) Collect(ctx context.Context) error {
	if !c.collect.acquire() {
		return ErrInFlight
	}
	defer c.collect.release()

	seq := c.seq.start()
	res, err := c.api.CollectResources(ctx, c.tokens.Token(ctx))
	if err != nil {
		if msg, ok := client.APIMessage(err); ok {
			c.reporter.ShowStatus(fallback(msg, MsgGenericError))
			return err
		}
		slog.Error("Failed to collect resources", "error", err)
		reportFailure(c.reporter, "collect resources", err)
		return err
	}

	if !c.seq.apply(seq, *res.Resources, c.view.ShowResources) {
		slog.Debug("Dropped stale collect response", "seq", seq)
	}
	c.reporter.ShowStatus(MsgCollected)
	return nil
}

// Upgrade raises a building one level and reloads the counters
func (c *ResourceController) Upgrade(ctx context.Context, building string) error {
	if !client.ValidBuilding(building) {
		c.reporter.ShowError(MsgUnknownBuilding)
		return client.ErrUnknownBuilding
	}
	if !c.upgrade.acquire() {
		return ErrInFlight
	}
	defer c.upgrade.release()

	res, err := c.api.UpgradeBuilding(ctx, c.tokens.Token(ctx), building)
	if err != nil {
		if msg, ok := client.APIMessage(err); ok {
			c.reporter.ShowStatus(fallback(msg, MsgGenericError))
			return err
		}
		slog.Error("Failed to upgrade building", "building", building, "error", err)
		reportFailure(c.reporter, "upgrade "+building, err)
		return err
	}

	c.reporter.ShowStatus(fallback(res.Message, MsgUpgraded))
	return c.Load(ctx)
}

// Poll loads immediately and then every interval until ctx is done.
// Load failures are reported and do not stop polling.
func (c *ResourceController) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("poll interval must be positive")
	}

	_ = c.Load(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = c.Load(ctx)
		}
	}
}
