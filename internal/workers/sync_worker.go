package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/service"
)

const defaultSyncInterval = 5 * time.Minute

// SyncWorker triggers a sync cycle for every served account on each tick.
// Ticks are skipped while the node is offline.
type SyncWorker struct {
	*periodicJob

	replication service.ReplicationService
	router      service.StorageRouter
	accounts    []string

	logger *logger.Logger
}

// NewSyncWorker creates an idle SyncWorker. A non-positive interval falls
// back to five minutes.
func NewSyncWorker(replication service.ReplicationService, router service.StorageRouter, accounts []string,
	interval time.Duration, log *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	w := &SyncWorker{
		replication: replication,
		router:      router,
		accounts:    accounts,
		logger:      log,
	}
	w.periodicJob = newPeriodicJob(interval, w.syncAll)
	return w
}

func (w *SyncWorker) syncAll(ctx context.Context) {
	if !w.router.IsOnline() {
		w.logger.Debug().Str("func", "SyncWorker.syncAll").Msg("offline, skipping sync tick")
		return
	}

	for _, accountID := range w.accounts {
		if ctx.Err() != nil {
			return
		}
		w.syncAccount(ctx, accountID)
	}
}

func (w *SyncWorker) syncAccount(ctx context.Context, accountID string) {
	log := w.logger.WithAccount(accountID)
	ctx = log.WithContext(ctx)

	summary, err := w.replication.TriggerSync(ctx, accountID)
	switch {
	case err == nil:
		if summary.Total > 0 {
			log.Info().Str("func", "SyncWorker.syncAccount").
				Int("synced", summary.SyncedCount).
				Int("failed", summary.FailedCount).
				Int("conflicts", summary.ConflictCount).
				Msg("periodic sync finished")
		}
	case errors.Is(err, service.ErrCycleInProgress), errors.Is(err, service.ErrLeaseHeld), errors.Is(err, service.ErrOffline):
		log.Debug().Err(err).Str("func", "SyncWorker.syncAccount").Msg("periodic sync skipped")
	default:
		log.Err(err).Str("func", "SyncWorker.syncAccount").Msg("periodic sync failed")
	}
}
