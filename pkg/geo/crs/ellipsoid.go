package crs

import (
	"fmt"
	"math"
)

// ellipsoid holds the reference ellipsoid constants used by the projection
// formulas.
type ellipsoid struct {
	a  float64 // semi-major axis in meters
	f  float64 // flattening, 0 for a sphere
	e  float64 // first eccentricity
	e2 float64 // first eccentricity squared
}

func newEllipsoid(a, f float64) ellipsoid {
	e2 := f * (2 - f)

	return ellipsoid{a: a, f: f, e: math.Sqrt(e2), e2: e2}
}

// Named ellipsoids, resolved from +datum/+ellps.
//
//nolint:gochecknoglobals // Constant table.
var namedEllipsoids = map[string]ellipsoid{
	"WGS84":  newEllipsoid(6378137, 1/298.257223563),
	"GRS80":  newEllipsoid(6378137, 1/298.257222101),
	"clrk66": newEllipsoid(6378206.4, 1-6356583.8/6378206.4),
	"sphere": newEllipsoid(6370997, 0),
}

// datumEllipsoids maps datum names to their ellipsoids. Datum shift grids
// are not applied; the WGS84/GRS80/NAD83 family is treated as coincident.
//
//nolint:gochecknoglobals // Constant table.
var datumEllipsoids = map[string]string{
	"WGS84": "WGS84",
	"NAD83": "GRS80",
}

// resolveEllipsoid derives the ellipsoid from proj4 parameters, preferring
// +datum, then +ellps, then explicit +a with +b or +rf. The default is
// WGS84, matching proj.
func resolveEllipsoid(params Params) (ellipsoid, error) {
	if params.Datum != "" {
		name, ok := datumEllipsoids[params.Datum]
		if !ok {
			return ellipsoid{}, fmt.Errorf("%w: datum %q", ErrUnsupportedProjection, params.Datum)
		}

		return namedEllipsoids[name], nil
	}

	if params.Ellps != "" {
		ell, ok := namedEllipsoids[params.Ellps]
		if !ok {
			return ellipsoid{}, fmt.Errorf("%w: ellipsoid %q", ErrUnsupportedProjection, params.Ellps)
		}

		return ell, nil
	}

	if params.A != 0 {
		switch {
		case params.B != 0:
			return newEllipsoid(params.A, 1-params.B/params.A), nil
		case params.RF != 0:
			return newEllipsoid(params.A, 1/params.RF), nil
		default:
			return newEllipsoid(params.A, 0), nil
		}
	}

	return namedEllipsoids["WGS84"], nil
}
