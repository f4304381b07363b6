package service

import (
	"context"
	"time"

	"edurooms/config"

	"github.com/rs/zerolog/log"
)

// Completer periodically moves past confirmed reservations to completed. Listing endpoints
// do the same lazily, so the sweep only keeps stored statuses fresh between requests.
type Completer struct {
	svc      Reservation
	enabled  bool
	interval time.Duration
}

func NewCompleter(cfg *config.Config, svc Reservation) *Completer {
	interval := time.Duration(cfg.Reservation.Completer.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	return &Completer{
		svc:      svc,
		enabled:  cfg.Reservation.Completer.Enable,
		interval: interval,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (c *Completer) Run(ctx context.Context) {
	if !c.enabled {
		log.Info().Msg("reservation completer disabled")

		return
	}

	log.Info().Dur("interval", c.interval).Msg("reservation completer started")

	c.sweep(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reservation completer stopped")

			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *Completer) sweep(ctx context.Context) {
	if _, err := c.svc.CompleteExpired(ctx, 0); err != nil {
		log.Error().Err(err).Msg("failed to sweep expired reservations")
	}
}
