package crs

import "fmt"

// epsgEntry pairs a registry proj4 definition with a display name.
type epsgEntry struct {
	proj4 string
	name  string
}

// Built-in EPSG definitions. UTM zones are matched by pattern in lookupEPSG
// instead of being enumerated here.
//
//nolint:gochecknoglobals // Registry is immutable package configuration.
var epsgRegistry = map[int]epsgEntry{
	4326: {
		proj4: "+proj=longlat +datum=WGS84 +no_defs",
		name:  "WGS 84",
	},
	4269: {
		proj4: "+proj=longlat +datum=NAD83 +no_defs",
		name:  "NAD83",
	},
	3857: {
		proj4: "+proj=webmerc +datum=WGS84 +x_0=0 +y_0=0 +units=m +no_defs",
		name:  "WGS 84 / Pseudo-Mercator",
	},
	5070: {
		proj4: "+proj=aea +lat_0=23 +lon_0=-96 +lat_1=29.5 +lat_2=45.5 +x_0=0 +y_0=0 " +
			"+datum=NAD83 +units=m +no_defs",
		name: "NAD83 / Conus Albers",
	},
	6350: {
		proj4: "+proj=aea +lat_0=23 +lon_0=-96 +lat_1=29.5 +lat_2=45.5 +x_0=0 +y_0=0 " +
			"+datum=NAD83 +units=m +no_defs",
		name: "NAD83(2011) / Conus Albers",
	},
	// ESRI's North America Albers, common in continental climate work.
	102008: {
		proj4: "+proj=aea +lat_1=20 +lat_2=60 +lat_0=40 +lon_0=-96 +x_0=0 +y_0=0 " +
			"+ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
		name: "North America Albers Equal Area Conic",
	},
}

// UTM code blocks.
const (
	utmWGS84NorthBase = 32600
	utmWGS84SouthBase = 32700
	utmNAD83Base      = 26900
	utmZoneMax        = 60
	utmNAD83ZoneMax   = 23
)

// lookupEPSG resolves a code from the registry or the UTM code patterns.
func lookupEPSG(code int) (epsgEntry, error) {
	if entry, ok := epsgRegistry[code]; ok {
		return entry, nil
	}

	if zone := code - utmWGS84NorthBase; zone >= 1 && zone <= utmZoneMax {
		return epsgEntry{
			proj4: fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone),
			name:  fmt.Sprintf("WGS 84 / UTM zone %dN", zone),
		}, nil
	}

	if zone := code - utmWGS84SouthBase; zone >= 1 && zone <= utmZoneMax {
		return epsgEntry{
			proj4: fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", zone),
			name:  fmt.Sprintf("WGS 84 / UTM zone %dS", zone),
		}, nil
	}

	if zone := code - utmNAD83Base; zone >= 1 && zone <= utmNAD83ZoneMax {
		return epsgEntry{
			proj4: fmt.Sprintf("+proj=utm +zone=%d +datum=NAD83 +units=m +no_defs", zone),
			name:  fmt.Sprintf("NAD83 / UTM zone %dN", zone),
		}, nil
	}

	return epsgEntry{}, fmt.Errorf("%w: %d (pass a proj4 string for systems outside the registry)",
		ErrUnknownEPSG, code)
}
