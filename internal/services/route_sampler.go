package services

import (
	"fuel-route-service/internal/domain"
	"math"
)

// RouteSampler maps a cumulative distance along a route to an approximate coordinate.
type RouteSampler interface {
	PointAtDistance(route *domain.Route, targetMiles float64) (domain.Coordinates, bool)
}

// IndexSampler places the target proportionally by polyline index:
//
//	index = floor(len(points) * target / total)
//
// This is only accurate when polyline points are close to evenly spaced by distance,
// which routing providers approximate but do not guarantee; dense city segments pull
// the sample toward them.
type IndexSampler struct{}

func (IndexSampler) PointAtDistance(route *domain.Route, targetMiles float64) (domain.Coordinates, bool) {
	return PointAtDistance(route, targetMiles)
}

// PointAtDistance is the index-proportional sampler as a plain function.
func PointAtDistance(route *domain.Route, targetMiles float64) (domain.Coordinates, bool) {
	if route == nil || len(route.Points) == 0 || !(route.DistanceMiles > 0) {
		return domain.Coordinates{}, false
	}

	ratio := targetMiles / route.DistanceMiles
	idx := math.Floor(float64(len(route.Points)) * ratio)
	if math.IsNaN(idx) || idx < 0 || idx >= float64(len(route.Points)) {
		return domain.Coordinates{}, false
	}

	return route.Points[int(idx)], true
}

// ArcLengthSampler interpolates along the polyline's cumulative great-circle length.
// The target is taken as a fraction of the route's driving distance and applied to the
// polyline length, so the two need not agree in absolute terms.
type ArcLengthSampler struct{}

func (ArcLengthSampler) PointAtDistance(route *domain.Route, targetMiles float64) (domain.Coordinates, bool) {
	if route == nil || len(route.Points) == 0 || !(route.DistanceMiles > 0) {
		return domain.Coordinates{}, false
	}

	ratio := targetMiles / route.DistanceMiles
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return domain.Coordinates{}, false
	}

	pts := route.Points
	cumulative := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cumulative[i] = cumulative[i-1] + GreatCircleMiles(pts[i-1], pts[i])
	}

	total := cumulative[len(cumulative)-1]
	if total == 0 {
		return pts[0], true
	}

	want := ratio * total
	for i := 1; i < len(pts); i++ {
		if cumulative[i] < want {
			continue
		}

		seg := cumulative[i] - cumulative[i-1]
		if seg == 0 {
			return pts[i], true
		}
		t := (want - cumulative[i-1]) / seg
		return domain.Coordinates{
			Lon: pts[i-1].Lon + t*(pts[i].Lon-pts[i-1].Lon),
			Lat: pts[i-1].Lat + t*(pts[i].Lat-pts[i-1].Lat),
		}, true
	}

	return pts[len(pts)-1], true
}

// SamplerByName returns the sampler configured by name ("index" or "arc_length").
// Unknown names fall back to the index sampler.
func SamplerByName(name string) RouteSampler {
	if name == "arc_length" {
		return ArcLengthSampler{}
	}
	return IndexSampler{}
}
