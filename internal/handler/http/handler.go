package http

import (
	"github.com/MKhiriev/go-edge-sync/internal/config"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/service"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// signer is nil when request bodies are not signed.
	signer  *utils.Signer
	limiter *clientLimiter
	cfg     config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, server config.Server, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services: services,
		limiter:  newClientLimiter(server.RateLimitRPS, server.RateLimitBurst),
		cfg:      server,
		logger:   logger,
	}
	if app.HashKey != "" {
		h.signer = utils.NewSigner(app.HashKey)
	}
	return h
}
