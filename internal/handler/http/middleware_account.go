package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-edge-sync/internal/app"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
	"github.com/MKhiriev/go-edge-sync/internal/utils"
)

// withAccount puts the {accountID} path parameter into the request context
// and tags the request logger with it. Handlers read the account back with
// utils.GetAccountIDFromContext.
func (h *Handler) withAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID := chi.URLParam(r, "accountID")
		if accountID == "" {
			http.Error(w, app.MsgNoAccountIDProvided, http.StatusBadRequest)
			return
		}

		log := logger.FromRequest(r).WithAccount(accountID)
		ctx := utils.WithAccountID(log.WithContext(r.Context()), accountID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFromRequest returns the account set by withAccount.
func accountFromRequest(r *http.Request) string {
	accountID, _ := utils.GetAccountIDFromContext(r.Context())
	return accountID
}
