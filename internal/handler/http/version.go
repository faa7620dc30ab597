package http

import (
	"net/http"

	"github.com/MKhiriev/go-edge-sync/internal/utils"
)

// getServerVersion answers with the plain version string, or with the full
// build info as JSON when the client asks for it.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Accept") == "application/json" {
		utils.WriteJSON(w, h.services.AppInfo.GetBuildInfo(r.Context()), http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.services.AppInfo.GetAppVersion(r.Context())))
}
