package service

import (
	"errors"
	"sync/atomic"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
)

// Connectivity is the online flag shared by the router, the replication
// driver and bulk pull. Nothing in the engine probes the network: the flag
// changes only through SetOnline (external monitoring) or when a shared
// store call fails as unavailable.
type Connectivity struct {
	online atomic.Bool
	logger *logger.Logger
}

func NewConnectivity(online bool, log *logger.Logger) *Connectivity {
	c := &Connectivity{logger: log}
	c.online.Store(online)
	return c
}

func (c *Connectivity) IsOnline() bool {
	return c.online.Load()
}

// SetOnline stores online and reports whether the flag changed.
func (c *Connectivity) SetOnline(online bool) bool {
	changed := c.online.Swap(online) != online
	if changed {
		c.logger.Info().Str("func", "Connectivity.SetOnline").Bool("online", online).Msg("connectivity changed")
	}
	return changed
}

// observe flips the flag offline when err says the shared store is
// unreachable. It reports whether it did so.
func (c *Connectivity) observe(err error) bool {
	if err == nil || !errors.Is(err, store.ErrStoreUnavailable) {
		return false
	}
	if c.online.Swap(false) {
		c.logger.Warn().Err(err).Str("func", "Connectivity.observe").Msg("shared store unavailable, switching offline")
	}
	return true
}
