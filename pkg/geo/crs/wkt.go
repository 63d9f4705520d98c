package crs

import (
	"fmt"
	"strconv"
	"strings"
)

// ToWKT renders a WKT1 description of the CRS, sufficient for display and
// for GeoTIFF citation tags. Undefined systems render as an empty string.
func (c CRS) ToWKT() string {
	if !c.Defined() {
		return ""
	}

	geogcs := c.geographicWKT()
	if c.IsGeographic() {
		return geogcs
	}

	p := c.params

	var parameters []string

	addParameter := func(name string, value float64) {
		parameters = append(parameters,
			fmt.Sprintf("PARAMETER[%q,%s]", name, strconv.FormatFloat(value, 'f', -1, 64)))
	}

	method := ""

	switch p.Proj {
	case "aea":
		method = "Albers_Conic_Equal_Area"

		addParameter("standard_parallel_1", p.Lat1)
		addParameter("standard_parallel_2", p.Lat2)
		addParameter("latitude_of_center", p.Lat0)
		addParameter("longitude_of_center", p.Lon0)
	case "lcc":
		method = "Lambert_Conformal_Conic_2SP"

		addParameter("standard_parallel_1", p.Lat1)
		addParameter("standard_parallel_2", p.Lat2)
		addParameter("latitude_of_origin", p.Lat0)
		addParameter("central_meridian", p.Lon0)
	case "tmerc":
		method = "Transverse_Mercator"

		scale := p.K0
		if scale == 0 {
			scale = 1
		}

		addParameter("latitude_of_origin", p.Lat0)
		addParameter("central_meridian", p.Lon0)
		addParameter("scale_factor", scale)
	case "utm":
		method = "Transverse_Mercator"

		addParameter("latitude_of_origin", 0)
		addParameter("central_meridian", float64(p.Zone*6-183))
		addParameter("scale_factor", utmScaleFactor)
	case "merc", "webmerc":
		method = "Mercator_1SP"

		scale := p.K0
		if scale == 0 {
			scale = 1
		}

		addParameter("central_meridian", p.Lon0)
		addParameter("scale_factor", scale)
	default:
		method = p.Proj
	}

	x0, y0 := p.X0, p.Y0
	if p.Proj == "utm" {
		x0 = utmFalseEasting

		y0 = 0
		if p.South {
			y0 = utmFalseNorthing
		}
	}

	addParameter("false_easting", x0)
	addParameter("false_northing", y0)

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("PROJCS[%q,", c.Name()))
	builder.WriteString(geogcs)
	builder.WriteString(fmt.Sprintf(",PROJECTION[%q],", method))
	builder.WriteString(strings.Join(parameters, ","))
	builder.WriteString(`,UNIT["metre",1]`)

	if c.epsg != 0 {
		builder.WriteString(fmt.Sprintf(`,AUTHORITY["EPSG","%d"]`, c.epsg))
	}

	builder.WriteString("]")

	return builder.String()
}

// geographicWKT renders the GEOGCS node for the system's datum.
func (c CRS) geographicWKT() string {
	ell, err := resolveEllipsoid(c.params)
	if err != nil {
		ell = namedEllipsoids["WGS84"]
	}

	datumName := "WGS_1984"
	geogName := "WGS 84"
	spheroidName := "WGS 84"

	if c.params.Datum == "NAD83" || c.params.Ellps == "GRS80" {
		datumName = "North_American_Datum_1983"
		geogName = "NAD83"
		spheroidName = "GRS 1980"
	}

	inverseFlattening := 0.0
	if ell.f != 0 {
		inverseFlattening = 1 / ell.f
	}

	return fmt.Sprintf(
		`GEOGCS[%q,DATUM[%q,SPHEROID[%q,%s,%s]],PRIMEM["Greenwich",0],`+
			`UNIT["degree",0.0174532925199433]]`,
		geogName, datumName, spheroidName,
		strconv.FormatFloat(ell.a, 'f', -1, 64),
		strconv.FormatFloat(inverseFlattening, 'f', -1, 64),
	)
}
