package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

func (h *Handler) getConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := h.services.Conflicts.GetConflicts(r.Context(), accountFromRequest(r))
	if err != nil {
		writeError(w, r, "*Handler.getConflicts", err)
		return
	}
	utils.WriteJSON(w, conflicts, http.StatusOK)
}

func (h *Handler) getConflict(w http.ResponseWriter, r *http.Request) {
	conflict, err := h.services.Conflicts.GetConflict(r.Context(), accountFromRequest(r), chi.URLParam(r, "conflictID"))
	if err != nil {
		writeError(w, r, "*Handler.getConflict", err)
		return
	}
	utils.WriteJSON(w, conflict, http.StatusOK)
}

// resolveConflict takes the conflict and account from the path; the body
// carries resolution, resolved_data and resolved_by.
func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, "*Handler.resolveConflict", err)
		return
	}
	req.AccountID = accountFromRequest(r)
	req.ConflictID = chi.URLParam(r, "conflictID")

	conflict, err := h.services.Conflicts.ResolveConflict(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.resolveConflict", err)
		return
	}
	utils.WriteJSON(w, conflict, http.StatusOK)
}
