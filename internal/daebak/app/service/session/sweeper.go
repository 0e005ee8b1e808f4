package session

import (
	"log/slog"
	"time"
)

type Sweeper struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	exit     chan struct{}
	log      *slog.Logger
}

func NewSweeper(store *Store, ttl time.Duration, log *slog.Logger) Sweeper {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	return Sweeper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		exit:     make(chan struct{}),
		log:      log,
	}
}

func (sw Sweeper) Name() string { return "session sweeper" }

func (sw Sweeper) Stop() error {
	close(sw.exit)
	return nil
}

func (sw Sweeper) Start() error {
	go func() {
		ticker := time.NewTicker(sw.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := sw.store.Evict(sw.ttl); n > 0 {
					sw.log.Debug("sessions evicted", "count", n, "left", sw.store.Len())
				}
			case <-sw.exit:
				return
			}
		}
	}()

	return nil
}
