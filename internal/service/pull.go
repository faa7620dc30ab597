package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

// pullService copies shared rows into the local store. Pull is one
// directional and never touches the journal.
type pullService struct {
	local        store.LocalStore
	shared       store.SharedStore
	connectivity *Connectivity

	schema          store.RecordSchema
	referenceTables []string
	storeScoped     map[string]struct{}

	logger *logger.Logger
}

func NewPullService(local store.LocalStore, shared store.SharedStore, connectivity *Connectivity,
	repl config.Replication, log *logger.Logger) PullService {
	scoped := make(map[string]struct{}, len(repl.StoreScopedTables))
	for _, t := range repl.StoreScopedTables {
		scoped[t] = struct{}{}
	}

	return &pullService{
		local:           local,
		shared:          shared,
		connectivity:    connectivity,
		schema:          store.SchemaFromConfig(repl),
		referenceTables: repl.ReferenceTables,
		storeScoped:     scoped,
		logger:          log,
	}
}

// PullData refreshes each requested table in its own local transaction. A
// failing table is reported in the result and does not stop the others.
func (p *pullService) PullData(ctx context.Context, req models.PullRequest) (models.PullResult, error) {
	log := logger.FromContext(ctx)

	if !p.connectivity.IsOnline() {
		return models.PullResult{}, fmt.Errorf("%w: %w", ErrValidation, ErrOffline)
	}

	tables := req.Tables
	if len(tables) == 0 {
		tables = p.referenceTables
	}
	if len(tables) == 0 {
		return models.PullResult{}, fmt.Errorf("%w: %w", ErrValidation, ErrNoTablesToPull)
	}

	result := models.PullResult{
		TablesSynced: make([]string, 0, len(tables)),
		RecordsCount: make(map[string]int, len(tables)),
	}

	for _, table := range tables {
		n, err := p.pullTable(ctx, req, table)
		if err != nil {
			log.Err(err).Str("func", "pullService.PullData").
				Str("account_id", req.AccountID).
				Str("table", table).
				Msg("failed to pull table")
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[table] = err.Error()
			continue
		}
		result.TablesSynced = append(result.TablesSynced, table)
		result.RecordsCount[table] = n
	}

	log.Info().Str("func", "pullService.PullData").
		Str("account_id", req.AccountID).
		Strs("tables", result.TablesSynced).
		Int("failed_tables", len(result.Errors)).
		Msg("bulk pull finished")

	return result, nil
}

func (p *pullService) pullTable(ctx context.Context, req models.PullRequest, table string) (int, error) {
	query := models.Query{
		AccountID: req.AccountID,
		TableName: table,
		Since:     req.Since,
	}
	if _, ok := p.storeScoped[table]; ok {
		query.StoreID = req.StoreID
	}

	rows, err := p.shared.Records().Select(ctx, query)
	if err != nil {
		p.connectivity.observe(err)
		return 0, err
	}

	err = p.local.InTx(ctx, func(scope store.LocalScope) error {
		for _, row := range rows {
			id, ok := row.String(p.schema.IDColumn)
			if !ok {
				return fmt.Errorf("%w: column %s", ErrMissingRowID, p.schema.IDColumn)
			}
			if err := scope.Records().Upsert(ctx, table, id, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}
