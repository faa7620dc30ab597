package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-edge-sync/internal/app"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.Replication.GetSyncStatus(r.Context(), accountFromRequest(r))
	if err != nil {
		writeError(w, r, "*Handler.getSyncStatus", err)
		return
	}
	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.Replication.GetStats(r.Context(), accountFromRequest(r))
	if err != nil {
		writeError(w, r, "*Handler.getStats", err)
		return
	}
	utils.WriteJSON(w, stats, http.StatusOK)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.Replication.TriggerSync(r.Context(), accountFromRequest(r))
	if err != nil {
		writeError(w, r, "*Handler.triggerSync", err)
		return
	}
	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) retryFailed(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.Replication.RetryFailed(r.Context(), accountFromRequest(r))
	if err != nil {
		writeError(w, r, "*Handler.retryFailed", err)
		return
	}
	utils.WriteJSON(w, summary, http.StatusOK)
}

// listJournal accepts status (comma separated or repeated), table, order,
// limit and offset query parameters.
func (h *Handler) listJournal(w http.ResponseWriter, r *http.Request) {
	filter := models.JournalFilter{
		AccountID: accountFromRequest(r),
		TableName: r.URL.Query().Get("table"),
		Order:     models.JournalOrder(r.URL.Query().Get("order")),
	}
	for _, raw := range r.URL.Query()["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, models.JournalStatus(s))
			}
		}
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, "*Handler.listJournal", err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		writeError(w, r, "*Handler.listJournal", err)
		return
	}

	entries, err := h.services.Replication.ListJournal(r.Context(), filter)
	if err != nil {
		writeError(w, r, "*Handler.listJournal", err)
		return
	}
	utils.WriteJSON(w, entries, http.StatusOK)
}

// clearSyncedEntries requires an RFC3339 before parameter.
func (h *Handler) clearSyncedEntries(w http.ResponseWriter, r *http.Request) {
	before, err := queryTime(r, "before")
	if err != nil {
		writeError(w, r, "*Handler.clearSyncedEntries", err)
		return
	}
	if before == nil {
		http.Error(w, app.MsgBeforeRequired, http.StatusBadRequest)
		return
	}

	res, err := h.services.Replication.ClearSyncedEntries(r.Context(), accountFromRequest(r), *before)
	if err != nil {
		writeError(w, r, "*Handler.clearSyncedEntries", err)
		return
	}
	utils.WriteJSON(w, res, http.StatusOK)
}
