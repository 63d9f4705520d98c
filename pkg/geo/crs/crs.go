package crs

import (
	"fmt"
	"strconv"
	"strings"
)

// Params holds the proj4 parameters of a coordinate reference system.
// Unset angular and linear values are zero; K0 of zero means "use the
// projection default".
type Params struct {
	Proj    string
	Datum   string
	Ellps   string
	A       float64
	B       float64
	RF      float64
	Lat0    float64
	Lon0    float64
	Lat1    float64
	Lat2    float64
	LatTS   float64
	K0      float64
	X0      float64
	Y0      float64
	Zone    int
	South   bool
	Units   string
	ToWGS84 string
	NoDefs  bool
}

// CRS is a coordinate reference system. The zero value is undefined.
type CRS struct {
	epsg   int
	name   string
	params Params
}

// FromEPSG builds a CRS from an EPSG code using the built-in registry.
func FromEPSG(code int) (CRS, error) {
	entry, err := lookupEPSG(code)
	if err != nil {
		return CRS{}, err
	}

	params, err := parseProj4(entry.proj4)
	if err != nil {
		return CRS{}, fmt.Errorf("failed to parse registry entry for EPSG:%d: %w", code, err)
	}

	return CRS{epsg: code, name: entry.name, params: params}, nil
}

// FromProj4 builds a CRS from a proj4 string such as
// "+proj=aea +lat_1=20 +lat_2=60 +lat_0=40 +lon_0=-96 +ellps=GRS80".
func FromProj4(proj4 string) (CRS, error) {
	params, err := parseProj4(proj4)
	if err != nil {
		return CRS{}, err
	}

	return CRS{params: params}, nil
}

// Parse builds a CRS from a flexible reference: a bare EPSG code ("4326"),
// an EPSG string ("EPSG:4326", case-insensitive), or a proj4 string.
func Parse(value string) (CRS, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return CRS{}, ErrUndefinedCRS
	}

	lower := strings.ToLower(trimmed)
	if code, found := strings.CutPrefix(lower, "epsg:"); found {
		parsed, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil {
			return CRS{}, fmt.Errorf("%w: %q", ErrInvalidCRS, value)
		}

		return FromEPSG(parsed)
	}

	if code, err := strconv.Atoi(trimmed); err == nil {
		return FromEPSG(code)
	}

	if strings.HasPrefix(trimmed, "+") {
		return FromProj4(trimmed)
	}

	return CRS{}, fmt.Errorf("%w: %q", ErrInvalidCRS, value)
}

// Defined reports whether the CRS carries a projection.
func (c CRS) Defined() bool {
	return c.params.Proj != ""
}

// EPSG returns the EPSG code, or zero when the CRS was not built from one.
func (c CRS) EPSG() int {
	return c.epsg
}

// Name returns a display name for the CRS.
func (c CRS) Name() string {
	if c.name != "" {
		return c.name
	}

	if !c.Defined() {
		return "undefined"
	}

	if c.IsGeographic() {
		return "unnamed geographic"
	}

	return "unnamed projected (" + c.params.Proj + ")"
}

// Params returns the parsed proj4 parameters.
func (c CRS) Params() Params {
	return c.params
}

// IsGeographic reports whether coordinates are longitude/latitude degrees.
func (c CRS) IsGeographic() bool {
	switch c.params.Proj {
	case "longlat", "latlong", "lonlat", "latlon":
		return true
	}

	return false
}

// Equal reports whether two systems have the same normalized proj4 form.
func (c CRS) Equal(other CRS) bool {
	if c.epsg != 0 && c.epsg == other.epsg {
		return true
	}

	return c.Defined() && other.Defined() && c.Proj4() == other.Proj4()
}

// Proj4 renders the normalized proj4 string.
func (c CRS) Proj4() string {
	if !c.Defined() {
		return ""
	}

	p := c.params
	parts := []string{"+proj=" + p.Proj}

	appendFloat := func(key string, value float64) {
		parts = append(parts, fmt.Sprintf("+%s=%s", key, strconv.FormatFloat(value, 'f', -1, 64)))
	}

	if p.Zone != 0 {
		parts = append(parts, fmt.Sprintf("+zone=%d", p.Zone))
	}

	if p.South {
		parts = append(parts, "+south")
	}

	if p.Lat0 != 0 || p.Proj == "aea" || p.Proj == "lcc" || p.Proj == "tmerc" {
		appendFloat("lat_0", p.Lat0)
	}

	if p.Lon0 != 0 || p.Proj == "aea" || p.Proj == "lcc" || p.Proj == "tmerc" {
		appendFloat("lon_0", p.Lon0)
	}

	if p.Lat1 != 0 {
		appendFloat("lat_1", p.Lat1)
	}

	if p.Lat2 != 0 {
		appendFloat("lat_2", p.Lat2)
	}

	if p.LatTS != 0 {
		appendFloat("lat_ts", p.LatTS)
	}

	if p.K0 != 0 && p.K0 != 1 {
		appendFloat("k_0", p.K0)
	}

	// UTM implies its false easting/northing, so only explicit offsets
	// are emitted for it.
	if p.X0 != 0 || (!c.IsGeographic() && p.Proj != "utm") {
		appendFloat("x_0", p.X0)
	}

	if p.Y0 != 0 || (!c.IsGeographic() && p.Proj != "utm") {
		appendFloat("y_0", p.Y0)
	}

	switch {
	case p.Datum != "":
		parts = append(parts, "+datum="+p.Datum)
	case p.Ellps != "":
		parts = append(parts, "+ellps="+p.Ellps)
	case p.A != 0:
		appendFloat("a", p.A)

		if p.B != 0 {
			appendFloat("b", p.B)
		} else if p.RF != 0 {
			appendFloat("rf", p.RF)
		}
	}

	if p.ToWGS84 != "" {
		parts = append(parts, "+towgs84="+p.ToWGS84)
	}

	if !c.IsGeographic() {
		units := p.Units
		if units == "" {
			units = "m"
		}

		parts = append(parts, "+units="+units)
	}

	parts = append(parts, "+no_defs")

	return strings.Join(parts, " ")
}

// parseProj4 splits a proj4 string into Params. Unknown keys are ignored
// the way proj itself ignores them.
func parseProj4(proj4 string) (Params, error) {
	fields := strings.Fields(proj4)
	if len(fields) == 0 {
		return Params{}, fmt.Errorf("%w: empty string", ErrInvalidProj4)
	}

	var params Params

	parseFloat := func(key, value string) (float64, error) {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad value for +%s: %q", ErrInvalidProj4, key, value)
		}

		return parsed, nil
	}

	for _, field := range fields {
		if !strings.HasPrefix(field, "+") {
			return Params{}, fmt.Errorf("%w: token %q lacks a + prefix", ErrInvalidProj4, field)
		}

		key, value, _ := strings.Cut(field[1:], "=")

		var err error

		switch key {
		case "proj":
			params.Proj = value
		case "datum":
			params.Datum = value
		case "ellps":
			params.Ellps = value
		case "a":
			params.A, err = parseFloat(key, value)
		case "b":
			params.B, err = parseFloat(key, value)
		case "rf":
			params.RF, err = parseFloat(key, value)
		case "lat_0":
			params.Lat0, err = parseFloat(key, value)
		case "lon_0":
			params.Lon0, err = parseFloat(key, value)
		case "lat_1":
			params.Lat1, err = parseFloat(key, value)
		case "lat_2":
			params.Lat2, err = parseFloat(key, value)
		case "lat_ts":
			params.LatTS, err = parseFloat(key, value)
		case "k", "k_0":
			params.K0, err = parseFloat(key, value)
		case "x_0":
			params.X0, err = parseFloat(key, value)
		case "y_0":
			params.Y0, err = parseFloat(key, value)
		case "zone":
			var zone int64

			zone, err = strconv.ParseInt(value, 10, 32)
			if err != nil {
				err = fmt.Errorf("%w: bad value for +zone: %q", ErrInvalidProj4, value)
			}

			params.Zone = int(zone)
		case "south":
			params.South = true
		case "units":
			params.Units = value
		case "towgs84":
			params.ToWGS84 = value
		case "no_defs":
			params.NoDefs = true
		default:
			// Unrecognized parameters are ignored, as proj does.
		}

		if err != nil {
			return Params{}, err
		}
	}

	if params.Proj == "" {
		return Params{}, fmt.Errorf("%w: missing +proj", ErrInvalidProj4)
	}

	return params, nil
}
