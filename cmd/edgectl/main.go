package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-edge-sync/internal/adapter"
	"github.com/MKhiriev/go-edge-sync/internal/cli"
	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// edgectl output belongs to the operator; logs go to a file.
	log, closer := logger.NewFileLogger("edgectl", filepath.Join(os.TempDir(), "edgectl.log"))
	defer closer.Close()

	cfg, err := config.GetCLIConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(*cfg, adapter.NewHTTPAdminAdapter, log)
	if err = cmd.ExecuteContext(ctx); err != nil {
		log.Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}
