package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-edge-sync/internal/app"
	"github.com/MKhiriev/go-edge-sync/internal/logger"
)

// HashHeader carries the hex HMAC-SHA256 of the request body.
const HashHeader = "HashSHA256"

// withHashCheck rejects requests whose body does not match the HashSHA256
// header. It is a no-op when the node has no hash key. Empty bodies are not
// checked.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.signer == nil || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashCheck").Msg("failed to read request body")
			http.Error(w, app.MsgFailedToReadBody, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(body) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if !h.signer.Verify(body, r.Header.Get(HashHeader)) {
			log.Error().Str("func", "*Handler.withHashCheck").
				Str("hash from request", r.Header.Get(HashHeader)).
				Msg("hashes are not equal")
			http.Error(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		log.Debug().Str("func", "*Handler.withHashCheck").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}
