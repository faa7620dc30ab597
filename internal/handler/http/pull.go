package http

import (
	"net/http"

	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

// pullData accepts an optional body with store_id, tables and since.
func (h *Handler) pullData(w http.ResponseWriter, r *http.Request) {
	var req models.PullRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, r, "*Handler.pullData", err)
		return
	}
	req.AccountID = accountFromRequest(r)

	res, err := h.services.Pull.PullData(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.pullData", err)
		return
	}
	utils.WriteJSON(w, res, http.StatusOK)
}
