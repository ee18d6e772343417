package httpapi

import (
	"net/http"
	"slices"
	"strings"
)

// methodMux dispatches on r.Method and answers anything else with a 405
// envelope listing the allowed methods.
func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	allowed := make([]string, 0, len(m))
	for method := range m {
		allowed = append(allowed, method)
	}
	slices.Sort(allowed)
	allow := strings.Join(allowed, ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		w.Header().Set("Allow", allow)
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
			r.Method+" not allowed on "+r.URL.Path+" (allowed: "+allow+")")
	}
}
