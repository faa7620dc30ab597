package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/handler"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/server"
	"github.com/MKhiriev/go-edge-sync/internal/service"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/internal/workers"
	"github.com/MKhiriev/go-edge-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("edge")
	cfg, err := config.GetEdgeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("local", cfg.Storage.Local.DSN).Str("shared_driver", cfg.Storage.Shared.Driver).
		Strs("accounts", cfg.Workers.Accounts).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, cfg.Replication, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, workers.NewWorkers(services, cfg.Workers, log))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
