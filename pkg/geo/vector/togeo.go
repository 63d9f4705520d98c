package vector

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
)

// Default coordinate column names.
const (
	DefaultLonColumn = "lon"
	DefaultLatColumn = "lat"
)

// ToGeoOptions name the coordinate columns of a delimited table.
type ToGeoOptions struct {
	// LonColumn and LatColumn are matched case-insensitively against the
	// header. Empty values apply the defaults.
	LonColumn string
	LatColumn string
}

// ToGeo reads a comma-delimited table and builds a point feature per row.
// Coordinates are taken as longitude/latitude degrees; every column,
// including the coordinate ones, is carried as a feature property. Columns
// whose non-empty cells all parse as numbers become numeric properties.
func ToGeo(path string, opts ToGeoOptions) (*geojson.FeatureCollection, error) {
	lonName := opts.LonColumn
	if lonName == "" {
		lonName = DefaultLonColumn
	}

	latName := opts.LatColumn
	if latName == "" {
		latName = DefaultLatColumn
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	header := rows[0]
	records := rows[1:]

	lonCol, err := findColumn(header, lonName)
	if err != nil {
		return nil, err
	}

	latCol, err := findColumn(header, latName)
	if err != nil {
		return nil, err
	}

	numeric := make([]bool, len(header))
	for col := range header {
		numeric[col] = columnIsNumeric(records, col)
	}

	logrus.WithFields(logrus.Fields{
		"path": path,
		"rows": len(records),
		"lon":  header[lonCol],
		"lat":  header[latCol],
	}).Debug("building point features")

	collection := geojson.NewFeatureCollection()

	for i, record := range records {
		lon, err := parseCoordinate(record[lonCol], header[lonCol], i)
		if err != nil {
			return nil, err
		}

		lat, err := parseCoordinate(record[latCol], header[latCol], i)
		if err != nil {
			return nil, err
		}

		feature := geojson.NewFeature(orb.Point{lon, lat})

		for col, name := range header {
			cell := record[col]

			switch {
			case numeric[col] && cell == "":
				feature.Properties[name] = nil
			case numeric[col]:
				value, _ := strconv.ParseFloat(cell, 64)
				feature.Properties[name] = value
			default:
				feature.Properties[name] = cell
			}
		}

		collection.Append(feature)
	}

	return collection, nil
}

// findColumn locates a header column by case-insensitive name.
func findColumn(header []string, name string) (int, error) {
	for col, candidate := range header {
		if strings.EqualFold(strings.TrimSpace(candidate), name) {
			return col, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (available: %s)",
		ErrMissingColumn, name, strings.Join(header, ", "))
}

// columnIsNumeric reports whether every non-empty cell of the column parses
// as a number. Fully empty columns stay textual.
func columnIsNumeric(records [][]string, col int) bool {
	seen := false

	for _, record := range records {
		cell := record[col]
		if cell == "" {
			continue
		}

		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}

		seen = true
	}

	return seen
}

// parseCoordinate converts a coordinate cell, naming the row on failure.
func parseCoordinate(cell, column string, row int) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %d has %s=%q", ErrBadCoordinate, row+1, column, cell)
	}

	return value, nil
}
