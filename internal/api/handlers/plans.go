package handlers

import (
	"context"
	"errors"
	"fuel-route-service/internal/adapters/kmlexport"
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

// TripPlanner is the service the plan handlers depend on.
type TripPlanner interface {
	PlanTrip(ctx context.Context, req services.PlanTripRequest) (*domain.TripPlan, error)
}

type PlanHandler struct {
	Planner TripPlanner
}

// OptimalRoute answers GET /api/optimal-route/?start=...&finish=... with the route,
// fuel stops and cost summary.
func (h *PlanHandler) OptimalRoute(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	start, finish, plan, ok := h.plan(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewOptimalRouteResponse(start, finish, plan))
}

// KML answers GET /api/optimal-route/kml/ with the same plan as a KML document.
func (h *PlanHandler) KML(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	start, finish, plan, ok := h.plan(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", kmlexport.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="optimal-route.kml"`)
	w.WriteHeader(http.StatusOK)
	if err := kmlexport.WritePlan(w, start, finish, plan); err != nil {
		obs.L().Warn("write kml failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
	}
}

func (h *PlanHandler) plan(w http.ResponseWriter, r *http.Request) (string, string, *domain.TripPlan, bool) {
	q := r.URL.Query()
	start, finish := q.Get("start"), q.Get("finish")

	plan, err := h.Planner.PlanTrip(r.Context(), services.PlanTripRequest{Start: start, Finish: finish})
	if err != nil {
		status, msg := planErrorResponse(err)
		if status >= http.StatusInternalServerError {
			obs.L().Error("plan trip failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		} else {
			obs.L().Info("plan trip rejected", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		}
		writeError(w, r, status, msg)
		return "", "", nil, false
	}

	return start, finish, plan, true
}

func planErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingLocation):
		return http.StatusBadRequest, "Please provide both start and finish locations"
	case errors.Is(err, services.ErrGeocodeFailed):
		return http.StatusBadRequest, "Could not geocode one or both locations"
	case errors.Is(err, services.ErrRouteFailed):
		return http.StatusBadRequest, "Could not find route between locations"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid route for fuel planning"
	default:
		return http.StatusInternalServerError, "An error occurred: " + err.Error()
	}
}
