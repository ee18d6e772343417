package httpapi

import (
	"net/http"
	"sync/atomic"

	"postcheck-engine/internal/config"
)

type HealthHandler struct {
	DBEnabled bool
	CfgVal    *atomic.Value // stores config.Config
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	WriteJSON(w, http.StatusOK, HealthStatus{
		OK:      true,
		Store:   h.DBEnabled,
		Variant: cfg.App.Variant,
	})
}
