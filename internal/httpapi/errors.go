package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"postcheck-engine/internal/ingest"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeLabelError maps loader and schema failures onto the error envelope.
func writeLabelError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	var schemaErr *ingest.SchemaError
	var dataErr *ingest.DataAccessError

	switch {
	case errors.As(err, &tooLarge):
		WriteError(w, r, http.StatusRequestEntityTooLarge, "too_large", err.Error())
	case errors.As(err, &schemaErr):
		WriteError(w, r, http.StatusUnprocessableEntity, "schema", err.Error())
	case errors.As(err, &dataErr):
		WriteError(w, r, http.StatusBadRequest, "bad_input", err.Error())
	default:
		log.Printf("level=error msg=\"label\" request_id=%s err=%v", RequestIDFrom(r.Context()), err)
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
