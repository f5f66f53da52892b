package domain

// Represents a driving route between two endpoints as returned by a routing provider.
// Points is an ordered polyline: index 0 is the origin and the last index is the
// destination. Intermediate points approximate the path but are not evenly spaced
// by distance. A Route is immutable once obtained.
type Route struct {
	DistanceMiles   float64
	DurationSeconds float64
	Points          []Coordinates
}

// Origin returns the first polyline point.
func (r *Route) Origin() (Coordinates, bool) {
	if r == nil || len(r.Points) == 0 {
		return Coordinates{}, false
	}
	return r.Points[0], true
}
