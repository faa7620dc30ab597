package service

import (
	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

// Services is the wired service layer of an edge node. Router, Replication,
// Conflicts and Pull are wrapped with input validation.
type Services struct {
	Connectivity *Connectivity
	Coordinator  *Coordinator

	Router      StorageRouter
	Journal     JournalService
	Replication ReplicationService
	Conflicts   ConflictService
	Pull        PullService
	AppInfo     AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, log)
	if err != nil {
		return nil, err
	}

	online := storages.SharedReachable && !cfg.Replication.StartOffline
	connectivity := NewConnectivity(online, log)
	coordinator := NewCoordinator()
	ids := utils.NewUUIDGenerator()

	journal := NewJournalService(storages.Local.Journal(), utils.NewChecksummer(cfg.App.ChecksumKey), ids, log)

	router := NewStorageRouter(storages.Local, storages.Shared, connectivity, journal, cfg.Replication, log)
	replication := NewReplicationService(storages.Local, storages.Shared, connectivity, journal, coordinator, ids, cfg.Replication, log)
	conflicts := NewConflictService(storages.Local, storages.Shared, connectivity, cfg.Replication, log)
	pull := NewPullService(storages.Local, storages.Shared, connectivity, cfg.Replication, log)

	return &Services{
		Connectivity: connectivity,
		Coordinator:  coordinator,
		Router:       NewRouterValidationService().Wrap(router),
		Journal:      journal,
		Replication:  NewReplicationValidationService().Wrap(replication),
		Conflicts:    NewConflictValidationService().Wrap(conflicts),
		Pull:         NewPullValidationService().Wrap(pull),
		AppInfo:      appInfo,
	}, nil
}
