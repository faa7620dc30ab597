package workers

import (
	"context"
	"sync"
	"time"
)

// periodicJob calls tick on a ticker. A tick in progress finishes before the
// job stops.
type periodicJob struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newPeriodicJob(interval time.Duration, tick func(ctx context.Context)) *periodicJob {
	return &periodicJob{interval: interval, tick: tick}
}

// Start stops any previously running loop, then launches a goroutine that
// calls tick every interval.
func (j *periodicJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *periodicJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
