package handlers

import (
	"fuel-route-service/internal/services"
	"net/http"
)

// HealthHandler is a liveness check that also reports the loaded catalog size.
type HealthHandler struct {
	Catalog *services.CatalogSnapshot
}

type healthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Located  int    `json:"located"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	res := healthResponse{Status: "ok"}
	if h.Catalog != nil {
		c := h.Catalog.Load()
		res.Stations = c.Len()
		res.Located = len(c.Located())
	}
	writeJSON(w, r, http.StatusOK, res)
}

// NoContent answers any unrouted GET or POST with 204 and an empty body.
func NoContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}
