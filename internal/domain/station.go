package domain

import "github.com/shopspring/decimal"

// Represents a single fuel station from the catalog.
// Coordinates is nil when the upstream geocoding pass failed; such stations never
// match a spatial search but still contribute to the catalog average price.
type Station struct {
	ID          int64
	OpisID      int64
	RackID      int64
	Name        string
	Address     string
	City        string
	State       string
	Price       decimal.Decimal
	Coordinates *Coordinates
}

// HasLocation reports whether the station can take part in radius searches.
func (s Station) HasLocation() bool { return s.Coordinates != nil }

// Catalog is a read-only snapshot of every known station.
type Catalog struct {
	Stations []Station
}

func NewCatalog(stations []Station) *Catalog {
	return &Catalog{Stations: stations}
}

// AveragePrice returns the mean price per gallon across all stations,
// or fallback when the catalog is empty.
func (c *Catalog) AveragePrice(fallback decimal.Decimal) decimal.Decimal {
	if c == nil || len(c.Stations) == 0 {
		return fallback
	}

	sum := decimal.Zero
	for _, s := range c.Stations {
		sum = sum.Add(s.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(c.Stations))))
}

// Located returns the stations with known coordinates, in catalog order.
func (c *Catalog) Located() []Station {
	if c == nil {
		return nil
	}

	out := make([]Station, 0, len(c.Stations))
	for _, s := range c.Stations {
		if s.HasLocation() {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Stations)
}
