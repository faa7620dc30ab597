package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-edge-sync/internal/utils"
	"github.com/MKhiriev/go-edge-sync/models"
)

// IdempotencyKeyHeader deduplicates retried writes of the records endpoints.
const IdempotencyKeyHeader = "Idempotency-Key"

func (h *Handler) selectRecords(w http.ResponseWriter, r *http.Request) {
	query := models.Query{
		AccountID: accountFromRequest(r),
		StoreID:   r.URL.Query().Get("store_id"),
		TableName: chi.URLParam(r, "table"),
	}

	var err error
	if query.Since, err = queryTime(r, "since"); err != nil {
		writeError(w, r, "*Handler.selectRecords", err)
		return
	}
	if query.Limit, err = queryInt(r, "limit"); err != nil {
		writeError(w, r, "*Handler.selectRecords", err)
		return
	}

	records, err := h.services.Router.Select(r.Context(), query)
	if err != nil {
		writeError(w, r, "*Handler.selectRecords", err)
		return
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) selectRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.services.Router.SelectOne(r.Context(), accountFromRequest(r),
		chi.URLParam(r, "table"), chi.URLParam(r, "recordID"))
	if err != nil {
		writeError(w, r, "*Handler.selectRecord", err)
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

// insertRecord takes the record id from the record's id column.
func (h *Handler) insertRecord(w http.ResponseWriter, r *http.Request) {
	mutation, err := mutationFromRequest(r, true)
	if err != nil {
		writeError(w, r, "*Handler.insertRecord", err)
		return
	}

	record, err := h.services.Router.Insert(r.Context(), mutation)
	if err != nil {
		writeError(w, r, "*Handler.insertRecord", err)
		return
	}
	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	mutation, err := mutationFromRequest(r, true)
	if err != nil {
		writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	record, err := h.services.Router.Update(r.Context(), mutation)
	if err != nil {
		writeError(w, r, "*Handler.updateRecord", err)
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

// deleteRecord answers with the snapshot of the deleted row.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	mutation, err := mutationFromRequest(r, false)
	if err != nil {
		writeError(w, r, "*Handler.deleteRecord", err)
		return
	}

	record, err := h.services.Router.Delete(r.Context(), mutation)
	if err != nil {
		writeError(w, r, "*Handler.deleteRecord", err)
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

func mutationFromRequest(r *http.Request, withBody bool) (models.Mutation, error) {
	mutation := models.Mutation{
		AccountID:      accountFromRequest(r),
		StoreID:        r.URL.Query().Get("store_id"),
		TableName:      chi.URLParam(r, "table"),
		RecordID:       chi.URLParam(r, "recordID"),
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	}
	if withBody {
		if err := decodeJSON(r, &mutation.Record, false); err != nil {
			return models.Mutation{}, err
		}
	}
	return mutation, nil
}
