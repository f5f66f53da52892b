package kmlexport

import (
	"fmt"
	"fuel-route-service/internal/domain"
	"io"

	"github.com/twpayne/go-kml"
)

const ContentType = "application/vnd.google-earth.kml+xml"

// WritePlan renders a trip plan as a KML document: one LineString for the route and
// one Placemark per fuel stop, numbered as in the plan.
func WritePlan(w io.Writer, start, finish string, plan *domain.TripPlan) error {
	if plan == nil || plan.Route == nil {
		return fmt.Errorf("write kml: plan has no route")
	}

	line := make([]kml.Coordinate, 0, len(plan.Route.Points))
	for _, p := range plan.Route.Points {
		line = append(line, kml.Coordinate{Lon: p.Lon, Lat: p.Lat})
	}

	stops := make([]kml.Element, 0, len(plan.FuelStops)+1)
	stops = append(stops, kml.Name("Fuel stops"))
	for _, s := range plan.FuelStops {
		if s.Station.Coordinates == nil {
			continue
		}
		stops = append(stops, kml.Placemark(
			kml.Name(fmt.Sprintf("Stop %d: %s", s.StopNumber, s.Station.Name)),
			kml.Description(stopDescription(s)),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: s.Station.Coordinates.Lon, Lat: s.Station.Coordinates.Lat}),
			),
		))
	}

	doc := kml.KML(
		kml.Document(
			kml.Name(fmt.Sprintf("%s to %s", start, finish)),
			kml.Description(fmt.Sprintf(
				"%.2f miles, %.2f gallons, $%s total fuel cost",
				plan.Summary.TotalDistanceMiles,
				plan.Summary.TotalGallonsNeeded,
				plan.Summary.TotalFuelCost.StringFixed(2),
			)),
			kml.Placemark(
				kml.Name("Route"),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(line...),
				),
			),
			kml.Folder(stops...),
		),
	)

	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}

func stopDescription(s domain.FuelStop) string {
	desc := fmt.Sprintf("%s, %s, %s. $%s/gal, %.2f gal, $%s",
		s.Station.Address,
		s.Station.City,
		s.Station.State,
		s.Price.StringFixed(3),
		s.GallonsPurchased,
		s.Cost.StringFixed(2),
	)
	if s.Note != "" {
		desc += ". " + s.Note
	}
	return desc
}
