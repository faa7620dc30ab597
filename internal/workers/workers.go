package workers

import (
	"context"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/service"
)

// Workers starts and stops a set of workers as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the sync and purge workers for the accounts this node
// serves. Without configured accounts nothing runs.
func NewWorkers(services *service.Services, cfg config.Workers, log *logger.Logger) *Workers {
	if len(cfg.Accounts) == 0 {
		log.Info().Str("func", "workers.NewWorkers").Msg("no accounts configured, periodic workers disabled")
		return &Workers{}
	}

	return &Workers{workers: []Worker{
		NewSyncWorker(services.Replication, services.Router, cfg.Accounts, cfg.SyncInterval, log),
		NewPurgeWorker(services.Replication, cfg.Accounts, cfg.PurgeInterval, cfg.PurgeAge, log),
	}}
}

func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
