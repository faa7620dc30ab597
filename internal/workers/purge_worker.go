package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/service"
)

const (
	defaultPurgeInterval = time.Hour
	defaultPurgeAge      = 7 * 24 * time.Hour
)

// PurgeWorker removes synced journal entries older than its age. Entries a
// conflict refers to are kept by the journal itself.
type PurgeWorker struct {
	*periodicJob

	replication service.ReplicationService
	accounts    []string
	age         time.Duration
	now         func() time.Time

	logger *logger.Logger
}

func NewPurgeWorker(replication service.ReplicationService, accounts []string, interval, age time.Duration,
	log *logger.Logger) *PurgeWorker {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	if age <= 0 {
		age = defaultPurgeAge
	}

	w := &PurgeWorker{
		replication: replication,
		accounts:    accounts,
		age:         age,
		now:         time.Now,
		logger:      log,
	}
	w.periodicJob = newPeriodicJob(interval, w.purgeAll)
	return w
}

func (w *PurgeWorker) purgeAll(ctx context.Context) {
	before := w.now().Add(-w.age)

	for _, accountID := range w.accounts {
		if ctx.Err() != nil {
			return
		}
		log := w.logger.WithAccount(accountID)
		if _, err := w.replication.ClearSyncedEntries(log.WithContext(ctx), accountID, before); err != nil {
			log.Err(err).Str("func", "PurgeWorker.purgeAll").Msg("periodic purge failed")
		}
	}
}
