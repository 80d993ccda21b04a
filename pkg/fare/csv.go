package fare

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Columns is the fare CSV schema, in order.
// One row per route per date, cheapest nonstop fare only. The airline and
// booking_link columns are optional but help with tie-breaking and booking.
var Columns = []string{
	"origin_city",
	"destination_city",
	"date",
	"price",
	"stops",
	"duration_minutes",
	"airline",
	"booking_link",
}

// ParseCSV decodes fare rows from r.
//
// Malformed rows (missing required fields, bad dates, non-numeric prices)
// are skipped silently rather than failing the run; a partially usable fare
// file still produces itineraries. Only an unreadable stream or a missing
// header is an error.
func ParseCSV(r io.Reader) ([]Fare, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, validated per field below
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var fares []Fare
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Unparseable line: skip, keep going.
			continue
		}

		origin := strings.ToUpper(field(row, "origin_city"))
		destination := strings.ToUpper(field(row, "destination_city"))
		if origin == "" || destination == "" {
			continue
		}

		date, err := time.Parse(DateLayout, field(row, "date"))
		if err != nil {
			continue
		}

		price, err := strconv.ParseFloat(field(row, "price"), 64)
		if err != nil {
			continue
		}

		// An absent stops value is excluded: it cannot be confirmed nonstop.
		stops, err := strconv.Atoi(field(row, "stops"))
		if err != nil {
			continue
		}

		duration := 0
		if s := field(row, "duration_minutes"); s != "" {
			if d, err := strconv.Atoi(s); err == nil {
				duration = d
			}
		}

		fares = append(fares, Fare{
			Origin:      origin,
			Destination: destination,
			Date:        Midnight(date),
			Price:       price,
			Stops:       stops,
			Duration:    duration,
			Carrier:     field(row, "airline"),
			BookingRef:  field(row, "booking_link"),
		})
	}
	return fares, nil
}

// ReadFile parses the fare CSV at path.
func ReadFile(path string) ([]Fare, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// templateRows are the sample rows written by WriteTemplate.
var templateRows = [][]string{
	{"NYC", "TYO", "2025-12-06", "780", "0", "840", "JL", "https://example.com/nyc-tyo-2025-12-06"},
	{"TYO", "HKG", "2025-12-12", "210", "0", "300", "CX", "https://example.com/tyo-hkg-2025-12-12"},
	{"HKG", "TPE", "2025-12-31", "150", "0", "95", "BR", "https://example.com/hkg-tpe-2025-12-31"},
	{"TPE", "NYC", "2026-01-10", "650", "0", "920", "CI", "https://example.com/tpe-nyc-2026-01-10"},
}

// WriteTemplate writes a CSV template users can fill with cheapest nonstop
// fares by date.
//
// Guidance for filling it in:
//   - City codes only (e.g. NYC, TYO, HKG, TPE, SHA)
//   - One row per route per date, cheapest fare
//   - Dates are YYYY-MM-DD
//   - Nonstops only: rows with stops != 0 are ignored
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, row := range templateRows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplateFile writes the CSV template to path, overwriting any
// existing file.
func WriteTemplateFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTemplate(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
