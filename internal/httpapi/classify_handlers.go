package httpapi

import (
	"context"
	"database/sql"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"postcheck-engine/internal/config"
	"postcheck-engine/internal/export"
	"postcheck-engine/internal/ingest"
	"postcheck-engine/internal/pipeline"
	"postcheck-engine/internal/store"
)

const ndjsonContentType = "application/x-ndjson"

// ClassifyHandler labels one uploaded table per request.
type ClassifyHandler struct {
	DB      *sql.DB
	CfgVal  *atomic.Value // stores config.Config
	SaveRun func(ctx context.Context, db *sql.DB, b pipeline.Batch) (store.Run, error)
}

func (h ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("variant")); v != "" {
		cfg.App.Variant = v
	}
	engine, err := cfg.Engine()
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_variant", err.Error())
		return
	}

	format, err := requestFormat(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_format", err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, int64(cfg.Serve.MaxBodyMB)<<20)
	t, err := ingest.Read(body, "request", format)
	if err != nil {
		writeLabelError(w, r, err)
		return
	}

	b, err := pipeline.Label(r.Context(), t, engine, pipeline.Options{Workers: cfg.App.Workers})
	if err != nil {
		writeLabelError(w, r, err)
		return
	}

	if h.DB != nil && h.SaveRun != nil {
		run, err := h.SaveRun(r.Context(), h.DB, b)
		if err != nil {
			log.Printf("level=error msg=\"save run\" request_id=%s err=%v", RequestIDFrom(r.Context()), err)
			WriteError(w, r, http.StatusInternalServerError, "store", err.Error())
			return
		}
		w.Header().Set("X-Run-ID", run.ID)
	}

	if format == ingest.FormatNDJSON {
		w.Header().Set("Content-Type", ndjsonContentType)
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	}
	w.Header().Set("X-Variant", string(b.Rules.Variant))
	w.Header().Set("X-Total-Count", strconv.Itoa(len(b.Results)))
	w.Header().Set("X-Fake-Count", strconv.Itoa(b.Fake()))
	w.WriteHeader(http.StatusOK)

	if err := export.Write(w, format, b); err != nil {
		log.Printf("level=error msg=\"write response\" request_id=%s err=%v", RequestIDFrom(r.Context()), err)
	}
}

// requestFormat prefers ?format= and falls back to the Content-Type.
func requestFormat(r *http.Request) (ingest.Format, error) {
	if f := strings.TrimSpace(r.URL.Query().Get("format")); f != "" {
		return ingest.ParseFormat(f)
	}
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == ndjsonContentType || mt == "application/jsonl" {
		return ingest.FormatNDJSON, nil
	}
	return ingest.FormatCSV, nil
}
