package httpapi

import (
	"database/sql"
	"net"
	"net/http"
)

type DBHandler struct {
	DB *sql.DB
}

// Checkpoint folds the WAL back into the run database. Loopback only.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := net.ParseIP(host); host != "localhost" && (ip == nil || !ip.IsLoopback()) {
		WriteError(w, r, http.StatusForbidden, "forbidden", "checkpoint is only allowed from loopback")
		return
	}

	var busy, logFrames, checkpointed int
	err = h.DB.QueryRowContext(r.Context(), `PRAGMA wal_checkpoint(TRUNCATE);`).Scan(&busy, &logFrames, &checkpointed)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{
		"busy":         busy,
		"log_frames":   logFrames,
		"checkpointed": checkpointed,
	})
}
