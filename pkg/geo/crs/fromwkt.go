package crs

import (
	"fmt"
	"strconv"
	"strings"
)

// FromWKT builds a CRS from a WKT1 description, such as the contents of a
// shapefile .prj sidecar. An EPSG authority in the text resolves through the
// built-in registry; otherwise the projection method and parameters are
// translated to their proj4 equivalents.
func FromWKT(text string) (CRS, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CRS{}, fmt.Errorf("%w: empty text", ErrInvalidWKT)
	}

	if code, found := lastEPSGAuthority(trimmed); found {
		if parsed, err := FromEPSG(code); err == nil {
			return parsed, nil
		}
		// Codes outside the registry fall through to parameter parsing.
	}

	if name, found := wktQuoted(trimmed, "PROJCS"); found {
		return fromProjectedWKT(trimmed, name)
	}

	if name, found := wktQuoted(trimmed, "GEOGCS"); found {
		return CRS{name: name, params: Params{Proj: "longlat", Datum: wktDatum(trimmed)}}, nil
	}

	return CRS{}, fmt.Errorf("%w: expected a PROJCS or GEOGCS node", ErrInvalidWKT)
}

// fromProjectedWKT interprets a PROJCS node, accepting both the OGC and the
// ESRI spellings of the method and parameter names.
func fromProjectedWKT(text, name string) (CRS, error) {
	method, found := wktQuoted(text, "PROJECTION")
	if !found {
		return CRS{}, fmt.Errorf("%w: missing PROJECTION node", ErrInvalidWKT)
	}

	values, err := wktParameters(text)
	if err != nil {
		return CRS{}, err
	}

	params := Params{
		Datum: wktDatum(text),
		X0:    values["false_easting"],
		Y0:    values["false_northing"],
		Units: "m",
	}

	switch strings.ToLower(method) {
	case "albers_conic_equal_area", "albers":
		params.Proj = "aea"
		params.Lat1 = values["standard_parallel_1"]
		params.Lat2 = values["standard_parallel_2"]
		params.Lat0 = firstOf(values, "latitude_of_center", "latitude_of_origin")
		params.Lon0 = firstOf(values, "longitude_of_center", "central_meridian")
	case "lambert_conformal_conic_2sp", "lambert_conformal_conic":
		params.Proj = "lcc"
		params.Lat1 = values["standard_parallel_1"]
		params.Lat2 = values["standard_parallel_2"]
		params.Lat0 = values["latitude_of_origin"]
		params.Lon0 = values["central_meridian"]
	case "transverse_mercator":
		params.Proj = "tmerc"
		params.Lat0 = values["latitude_of_origin"]
		params.Lon0 = values["central_meridian"]
		params.K0 = values["scale_factor"]
	case "mercator_1sp", "mercator":
		params.Proj = "merc"
		params.Lon0 = values["central_meridian"]
		params.K0 = values["scale_factor"]
	case "mercator_auxiliary_sphere":
		params.Proj = "webmerc"
	default:
		return CRS{}, fmt.Errorf("%w: %q", ErrUnsupportedProjection, method)
	}

	return CRS{name: name, params: params}, nil
}

// firstOf returns the value of the first key present in values.
func firstOf(values map[string]float64, keys ...string) float64 {
	for _, key := range keys {
		if value, ok := values[key]; ok {
			return value
		}
	}

	return 0
}

// wktDatum maps the DATUM node name onto a proj4 datum code. North American
// datums resolve to NAD83; everything else defaults to WGS84.
func wktDatum(text string) string {
	name, found := wktQuoted(text, "DATUM")
	if !found {
		return "WGS84"
	}

	upper := strings.ToUpper(name)
	if strings.Contains(upper, "1983") || strings.Contains(upper, "NAD83") {
		return "NAD83"
	}

	return "WGS84"
}

// wktQuoted returns the first quoted token inside the named node, matching
// the node keyword case-insensitively.
func wktQuoted(text, node string) (string, bool) {
	upper := strings.ToUpper(text)
	key := strings.ToUpper(node)

	for start := 0; ; {
		idx := strings.Index(upper[start:], key)
		if idx < 0 {
			return "", false
		}

		start += idx + len(key)

		rest := strings.TrimLeft(text[start:], " \t\r\n")
		if !strings.HasPrefix(rest, "[") {
			continue
		}

		return quotedToken(rest)
	}
}

// quotedToken extracts the first double-quoted string from text.
func quotedToken(text string) (string, bool) {
	open := strings.IndexByte(text, '"')
	if open < 0 {
		return "", false
	}

	closing := strings.IndexByte(text[open+1:], '"')
	if closing < 0 {
		return "", false
	}

	return text[open+1 : open+1+closing], true
}

// wktParameters collects every PARAMETER["name",value] pair in the text,
// with names lowercased for lookup.
func wktParameters(text string) (map[string]float64, error) {
	values := map[string]float64{}
	upper := strings.ToUpper(text)

	for start := 0; ; {
		idx := strings.Index(upper[start:], "PARAMETER")
		if idx < 0 {
			return values, nil
		}

		start += idx + len("PARAMETER")

		rest := strings.TrimLeft(text[start:], " \t\r\n")
		if !strings.HasPrefix(rest, "[") {
			continue
		}

		open := strings.IndexByte(rest, '"')
		if open < 0 {
			return nil, fmt.Errorf("%w: PARAMETER without a name", ErrInvalidWKT)
		}

		closing := strings.IndexByte(rest[open+1:], '"')
		if closing < 0 {
			return nil, fmt.Errorf("%w: unterminated PARAMETER name", ErrInvalidWKT)
		}

		name := rest[open+1 : open+1+closing]

		tail := rest[open+closing+2:]

		comma := strings.IndexByte(tail, ',')
		if comma < 0 {
			return nil, fmt.Errorf("%w: PARAMETER %q has no value", ErrInvalidWKT, name)
		}

		tail = tail[comma+1:]

		end := strings.IndexAny(tail, ",]")
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated PARAMETER %q", ErrInvalidWKT, name)
		}

		raw := strings.TrimSpace(tail[:end])

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad value %q for PARAMETER %q", ErrInvalidWKT, raw, name)
		}

		values[strings.ToLower(name)] = value
	}
}

// lastEPSGAuthority returns the EPSG code of the outermost AUTHORITY node.
// WKT nests authorities inside out, so the last one names the whole system.
func lastEPSGAuthority(text string) (int, bool) {
	upper := strings.ToUpper(text)

	code := 0
	found := false

	for start := 0; ; {
		idx := strings.Index(upper[start:], "AUTHORITY")
		if idx < 0 {
			return code, found
		}

		start += idx + len("AUTHORITY")

		rest := strings.TrimLeft(text[start:], " \t\r\n")
		if !strings.HasPrefix(rest, "[") {
			continue
		}

		open := strings.IndexByte(rest, '"')
		if open < 0 {
			continue
		}

		closing := strings.IndexByte(rest[open+1:], '"')
		if closing < 0 {
			continue
		}

		if !strings.EqualFold(rest[open+1:open+1+closing], "EPSG") {
			continue
		}

		value, ok := quotedToken(rest[open+closing+2:])
		if !ok {
			continue
		}

		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			continue
		}

		code = parsed
		found = true
	}
}
