package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/handler"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	jobs       []BackgroundJob

	shutdownOnce sync.Once
	logger       *logger.Logger
}

// NewServer builds the admin HTTP server. jobs are started when the server
// runs and stopped before the listener closes.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, jobs ...BackgroundJob) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{jobs: jobs, logger: logger}

	if cfg.HTTPAddress != "" && handlers != nil && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}

	if servers.httpServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

// Shutdown stops background jobs first so no cycle is cut off by a closed
// listener, then drains in-flight requests. It is safe to call more than
// once.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		for i := len(s.jobs) - 1; i >= 0; i-- {
			s.jobs[i].Stop()
		}

		if s.httpServer != nil {
			s.httpServer.Shutdown()
		}
	})
}

// run serves until ctx is done or the listener fails.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersToRun
	}

	jobsCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()
	for _, job := range s.jobs {
		job.Start(jobsCtx)
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}
