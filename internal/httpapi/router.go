package httpapi

import "net/http"

// NewMux returns the raw mux; Handler wraps it with the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{DBEnabled: d.DB != nil, CfgVal: d.CfgVal}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Labeling
	clh := ClassifyHandler{DB: d.DB, CfgVal: d.CfgVal, SaveRun: d.SaveRun}
	mux.HandleFunc("/classify", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: clh.Classify,
	}))

	// Stored runs
	rh := RunsHandler{DB: d.DB}
	mux.HandleFunc("/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/runs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.GetByPath, // expects /runs/{id}
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	if d.DB != nil {
		dh := DBHandler{DB: d.DB}
		mux.HandleFunc("/db/checkpoint", dh.Checkpoint)
	}

	return mux
}

func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog)
}
