package api

import (
	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/services"
	"net/http"

	"github.com/NYTimes/gziphandler"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner handlers.TripPlanner, catalog *services.CatalogSnapshot) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Planner: planner}
	healthHandler := &handlers.HealthHandler{Catalog: catalog}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/api/optimal-route", planHandler.OptimalRoute)
	mux.HandleFunc("/api/optimal-route/{$}", planHandler.OptimalRoute)
	mux.HandleFunc("/api/optimal-route/kml/{$}", planHandler.KML)
	mux.HandleFunc("/", handlers.NoContent)

	// Route geometry dominates response size; compress anything over 1KB.
	gzip, err := gziphandler.GzipHandlerWithOpts(gziphandler.MinSize(1024))
	if err != nil {
		panic(err)
	}

	return requestIDMiddleware(loggingMiddleware(recoverMiddleware(gzip(mux))))
}
