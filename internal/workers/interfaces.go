// Package workers runs the periodic background jobs of an edge node: the
// sync worker drains the journal of every served account and the purge
// worker removes old synced entries.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start returns immediately; the job runs until ctx is cancelled or Stop is
// called. Stop blocks until the job has exited and is a no-op when the job
// is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
