package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as a JSON response with statusCode and returns the
// number of body bytes written.
//
// Admin responses describe live sync state (pending counts, connectivity,
// open conflicts), so they are marked no-store and never served from a cache
// between edgectl and the node.
//
// If data cannot be encoded the client gets 500 and the encoding error is
// returned; nothing else is written.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
