package handlers

import (
	"net/http"
)

// HealthHandler is a liveness check that also reports which optional
// backends the process was started with.
type HealthHandler struct {
	StoreEnabled bool
	CacheBackend string
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	store := "disabled"
	if h.StoreEnabled {
		store = "enabled"
	}
	cache := h.CacheBackend
	if cache == "" {
		cache = "none"
	}

	res := map[string]string{
		"status": "ok",
		"store":  store,
		"cache":  cache,
	}
	writeJSON(w, r, http.StatusOK, res)
}
