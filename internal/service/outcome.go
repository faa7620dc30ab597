package service

import (
	"errors"

	"github.com/MKhiriev/go-edge-sync/internal/store"
	"github.com/MKhiriev/go-edge-sync/models"
)

// ClassifyReplay maps the error of one replayed journal entry onto its
// outcome. Only typed store sentinels are inspected.
func ClassifyReplay(err error) models.ReplayOutcome {
	switch {
	case err == nil:
		return models.OutcomeOK
	case errors.Is(err, store.ErrVersionConflict):
		return models.OutcomeVersionConflict
	case errors.Is(err, store.ErrRecordNotFound):
		return models.OutcomeNotFound
	case errors.Is(err, store.ErrConstraintViolation):
		return models.OutcomeConstraintViolation
	}
	return models.OutcomeTransient
}
