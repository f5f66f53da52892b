package repositories

import (
	"encoding/csv"
	"fmt"
	"fuel-route-service/internal/domain"
	"io"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/shopspring/decimal"
)

// FuelRow is one line of the OPIS truck-stop price export.
type FuelRow struct {
	OpisID      int64           `csv:"OPIS Truckstop ID"`
	Name        string          `csv:"Truckstop Name"`
	Address     string          `csv:"Address"`
	City        string          `csv:"City"`
	State       string          `csv:"State"`
	RackID      int64           `csv:"Rack ID"`
	RetailPrice decimal.Decimal `csv:"Retail Price"`
}

func (r FuelRow) Station() domain.Station {
	return domain.Station{
		OpisID:  r.OpisID,
		RackID:  r.RackID,
		Name:    strings.TrimSpace(r.Name),
		Address: strings.TrimSpace(r.Address),
		City:    strings.TrimSpace(r.City),
		State:   strings.TrimSpace(r.State),
		Price:   r.RetailPrice,
	}
}

// ParseFuelCSV decodes the price export into stations without coordinates.
// Columns not listed on FuelRow are ignored.
func ParseFuelCSV(r io.Reader) ([]domain.Station, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("parse fuel csv: read header: %w", err)
	}

	var rows []FuelRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parse fuel csv: decode rows: %w", err)
	}

	stations := make([]domain.Station, 0, len(rows))
	for i, row := range rows {
		if row.RetailPrice.IsNegative() {
			return nil, fmt.Errorf("parse fuel csv: row %d: negative retail price %s", i+2, row.RetailPrice)
		}
		stations = append(stations, row.Station())
	}
	return stations, nil
}

func ParseFuelCSVFile(path string) ([]domain.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parse fuel csv: open %q: %w", path, err)
	}
	defer f.Close()

	return ParseFuelCSV(f)
}
