package server

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/handler"
	httpHandler "github.com/MKhiriev/go-edge-sync/internal/handler/http"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

type recordingJob struct {
	mu      sync.Mutex
	started bool
	stops   int
	ctx     context.Context
}

func (j *recordingJob) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.started = true
	j.ctx = ctx
}

func (j *recordingJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stops++
}

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestHandlers() *handler.Handlers {
	return &handler.Handlers{HTTP: httpHandler.NewHandler(nil, config.Server{}, config.App{}, logger.Nop())}
}

func TestNewServer_NoAddress(t *testing.T) {
	s, err := NewServer(newTestHandlers(), config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_NoHandler(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":0"}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestRun_NoServers(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.ErrorIs(t, s.run(context.Background()), errNoServersToRun)
}

func TestRun_StopsJobsOnCancel(t *testing.T) {
	job := &recordingJob{}
	srv, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: freeAddress(t)}, logger.Nop(), job)
	require.NoError(t, err)
	s := srv.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	require.Eventually(t, func() bool {
		job.mu.Lock()
		defer job.mu.Unlock()
		return job.started
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	// a second Shutdown is a no-op
	s.Shutdown()

	job.mu.Lock()
	defer job.mu.Unlock()
	assert.Equal(t, 1, job.stops)
	assert.Error(t, job.ctx.Err(), "job context is cancelled after run")
}

func TestRun_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	job := &recordingJob{}
	srv, err := NewServer(newTestHandlers(), config.Server{HTTPAddress: l.Addr().String()}, logger.Nop(), job)
	require.NoError(t, err)

	err = srv.(*server).run(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, job.stops)
}
