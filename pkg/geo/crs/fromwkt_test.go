package crs_test

import (
	"testing"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const esriUTMWKT = `PROJCS["NAD_1983_UTM_Zone_13N",` +
	`GEOGCS["GCS_North_American_1983",` +
	`DATUM["D_North_American_1983",SPHEROID["GRS_1980",6378137.0,298.257222101]],` +
	`PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]],` +
	`PROJECTION["Transverse_Mercator"],` +
	`PARAMETER["False_Easting",500000.0],` +
	`PARAMETER["False_Northing",0.0],` +
	`PARAMETER["Central_Meridian",-105.0],` +
	`PARAMETER["Scale_Factor",0.9996],` +
	`PARAMETER["Latitude_Of_Origin",0.0],` +
	`UNIT["Meter",1.0]]`

func TestFromWKTRecoversAuthority(t *testing.T) {
	t.Parallel()

	conus, err := crs.FromEPSG(5070)
	require.NoError(t, err)

	parsed, err := crs.FromWKT(conus.ToWKT())

	require.NoError(t, err, "registry WKT should parse")
	assert.Equal(t, 5070, parsed.EPSG(), "authority code should win")
	assert.True(t, parsed.Equal(conus), "round-tripped CRS should be equal")
}

func TestFromWKTGeographic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     int
		wantName string
	}{
		{name: "wgs84", code: 4326, wantName: "WGS 84"},
		{name: "nad83", code: 4269, wantName: "NAD83"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			original, err := crs.FromEPSG(testCase.code)
			require.NoError(t, err)

			parsed, err := crs.FromWKT(original.ToWKT())

			require.NoError(t, err, "geographic WKT should parse")
			assert.True(t, parsed.IsGeographic(), "system should stay geographic")
			assert.True(t, parsed.Equal(original), "round-tripped CRS should be equal")
			assert.Equal(t, testCase.wantName, parsed.Name(), "name from GEOGCS node")
		})
	}
}

func TestFromWKTESRITransverseMercator(t *testing.T) {
	t.Parallel()

	parsed, err := crs.FromWKT(esriUTMWKT)
	require.NoError(t, err, "ESRI projected WKT should parse")

	params := parsed.Params()

	assert.Equal(t, "NAD_1983_UTM_Zone_13N", parsed.Name(), "name from PROJCS node")
	assert.Equal(t, "tmerc", params.Proj, "projection method")
	assert.Equal(t, "NAD83", params.Datum, "datum from DATUM node")
	assert.InDelta(t, -105.0, params.Lon0, 1e-12, "central meridian")
	assert.InDelta(t, 0.9996, params.K0, 1e-12, "scale factor")
	assert.InDelta(t, 500000.0, params.X0, 1e-12, "false easting")
	assert.InDelta(t, 0.0, params.Y0, 1e-12, "false northing")
}

func TestFromWKTMatchesRegistryTransform(t *testing.T) {
	t.Parallel()

	wgs84, err := crs.FromEPSG(4326)
	require.NoError(t, err)

	utm, err := crs.FromEPSG(26913)
	require.NoError(t, err)

	parsed, err := crs.FromWKT(esriUTMWKT)
	require.NoError(t, err)

	fromRegistry, err := crs.NewTransformer(wgs84, utm)
	require.NoError(t, err)

	fromWKT, err := crs.NewTransformer(wgs84, parsed)
	require.NoError(t, err)

	wantX, wantY := fromRegistry.Transform(-104.5, 39.75)
	gotX, gotY := fromWKT.Transform(-104.5, 39.75)

	assert.InDelta(t, wantX, gotX, 1e-6, "easting should match the registry system")
	assert.InDelta(t, wantY, gotY, 1e-6, "northing should match the registry system")
}

func TestFromWKTAlbersWithoutAuthority(t *testing.T) {
	t.Parallel()

	original, err := crs.FromProj4(albersProj4)
	require.NoError(t, err)

	parsed, err := crs.FromWKT(original.ToWKT())
	require.NoError(t, err, "authority-less projected WKT should parse")

	params := parsed.Params()

	assert.Equal(t, 0, parsed.EPSG(), "no authority to recover")
	assert.Equal(t, "aea", params.Proj, "projection method")
	assert.InDelta(t, 20.0, params.Lat1, 1e-12, "first standard parallel")
	assert.InDelta(t, 60.0, params.Lat2, 1e-12, "second standard parallel")
	assert.InDelta(t, 40.0, params.Lat0, 1e-12, "latitude of center")
	assert.InDelta(t, -96.0, params.Lon0, 1e-12, "longitude of center")
	assert.Equal(t, "NAD83", params.Datum, "GRS 1980 spheroid implies NAD83")
}

func TestFromWKTUnknownAuthorityFallsBack(t *testing.T) {
	t.Parallel()

	text := esriUTMWKT[:len(esriUTMWKT)-1] + `,AUTHORITY["EPSG","99999"]]`

	parsed, err := crs.FromWKT(text)

	require.NoError(t, err, "unknown authority should fall back to parameters")
	assert.Equal(t, 0, parsed.EPSG(), "unknown code is not kept")
	assert.Equal(t, "tmerc", parsed.Params().Proj, "projection method")
}

func TestFromWKTUnknownProjection(t *testing.T) {
	t.Parallel()

	text := `PROJCS["Custom Sinusoidal",GEOGCS["WGS 84",` +
		`DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563]],` +
		`PRIMEM["Greenwich",0],UNIT["degree",0.0174532925199433]],` +
		`PROJECTION["Sinusoidal"],PARAMETER["central_meridian",0],` +
		`UNIT["metre",1]]`

	_, err := crs.FromWKT(text)

	require.ErrorIs(t, err, crs.ErrUnsupportedProjection, "unsupported method should be rejected")
	assert.ErrorContains(t, err, "Sinusoidal", "error should name the method")
}

func TestFromWKTRejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "prose", text: "not a coordinate system"},
		{name: "missing projection", text: `PROJCS["Partial"]`},
		{
			name: "bad parameter value",
			text: `PROJCS["P",GEOGCS["G",DATUM["WGS_1984"]],` +
				`PROJECTION["Mercator_1SP"],PARAMETER["central_meridian",abc]]`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := crs.FromWKT(testCase.text)

			require.ErrorIs(t, err, crs.ErrInvalidWKT, "sentinel mismatch for %q", testCase.text)
		})
	}
}
