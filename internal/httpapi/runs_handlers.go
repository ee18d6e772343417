package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"postcheck-engine/internal/store"
)

type RunsHandler struct {
	DB *sql.DB
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "store_disabled", "run store is disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	runs, err := store.ListRuns(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store", err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	WriteJSON(w, http.StatusOK, runs)
}

// GetByPath expects /runs/{id}; ?fake=1 keeps only potentially fake rows.
func (h RunsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "store_disabled", "run store is disabled")
		return
	}
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/runs/"))
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_id", "invalid run id")
		return
	}

	run, err := store.GetRun(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store", err.Error())
		return
	}

	onlyFake, _ := strconv.ParseBool(r.URL.Query().Get("fake"))
	postings, err := store.RunPostings(r.Context(), h.DB, id, onlyFake)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store", err.Error())
		return
	}
	if postings == nil {
		postings = []store.Posting{}
	}
	WriteJSON(w, http.StatusOK, RunDetail{Run: run, Postings: postings})
}
