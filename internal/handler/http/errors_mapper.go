package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/service"
	"github.com/MKhiriev/go-edge-sync/internal/store"
)

// errorStatuses is checked in order and the first match wins. Rejected
// preconditions precede service.ErrValidation, which wraps them.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrOffline, http.StatusPreconditionFailed},
	{service.ErrCycleInProgress, http.StatusConflict},
	{service.ErrLeaseHeld, http.StatusConflict},
	{service.ErrConflictAlreadyResolved, http.StatusConflict},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidQueryParam, http.StatusBadRequest},
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrMissingRowID, http.StatusBadRequest},
	{store.ErrInvalidIdentifier, http.StatusBadRequest},
	{store.ErrEmptyRecord, http.StatusBadRequest},

	{store.ErrRecordNotFound, http.StatusNotFound},
	{store.ErrConflictNotFound, http.StatusNotFound},
	{store.ErrJournalEntryNotFound, http.StatusNotFound},

	{store.ErrVersionConflict, http.StatusConflict},
	{store.ErrConstraintViolation, http.StatusConflict},
	{store.ErrDuplicateIdempotencyKey, http.StatusConflict},
	{store.ErrConflictAlreadyResolved, http.StatusConflict},
	{store.ErrInvalidTransition, http.StatusConflict},

	{store.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and replies with its mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	http.Error(w, err.Error(), status)
}
