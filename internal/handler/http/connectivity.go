package http

import (
	"net/http"

	"github.com/MKhiriev/go-edge-sync/internal/app"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

func (h *Handler) getConnectivity(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.ConnectivityStatus{Online: h.services.Router.IsOnline()}, http.StatusOK)
}

// setConnectivity is called by external connectivity monitoring.
func (h *Handler) setConnectivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Online *bool `json:"online"`
	}
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, "*Handler.setConnectivity", err)
		return
	}
	if req.Online == nil {
		http.Error(w, app.MsgOnlineRequired, http.StatusBadRequest)
		return
	}

	h.services.Router.SetOnlineStatus(*req.Online)
	logger.FromRequest(r).Info().Str("func", "*Handler.setConnectivity").
		Bool("online", *req.Online).Msg("connectivity set by operator")

	utils.WriteJSON(w, models.ConnectivityStatus{Online: h.services.Router.IsOnline()}, http.StatusOK)
}
