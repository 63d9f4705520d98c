package vector_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	"github.com/gdstools/gdskit/pkg/geo/vector"
	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRing(xmin, ymin, xmax, ymax float64) []shp.Point {
	return []shp.Point{
		{X: xmin, Y: ymin},
		{X: xmax, Y: ymin},
		{X: xmax, Y: ymax},
		{X: xmin, Y: ymax},
		{X: xmin, Y: ymin},
	}
}

func writePolygonLayer(t *testing.T, path string, rings [][]shp.Point, names []string) {
	t.Helper()

	writer, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err, "fixture shapefile should create")

	writer.SetFields([]shp.Field{shp.StringField("NAME", 32)})

	for i, ring := range rings {
		writer.Write(&shp.Polygon{
			Box:       shp.BBoxFromPoints(ring),
			NumParts:  1,
			NumPoints: int32(len(ring)),
			Parts:     []int32{0},
			Points:    ring,
		})
		require.NoError(t, writer.WriteAttribute(i, 0, names[i]), "fixture attribute should write")
	}

	writer.Close()
}

func writePointLayer(t *testing.T, path string, points []shp.Point, names []string) {
	t.Helper()

	writer, err := shp.Create(path, shp.POINT)
	require.NoError(t, err, "fixture shapefile should create")

	writer.SetFields([]shp.Field{shp.StringField("NAME", 32)})

	for i, point := range points {
		writer.Write(&point)
		require.NoError(t, writer.WriteAttribute(i, 0, names[i]), "fixture attribute should write")
	}

	writer.Close()
}

func writePrj(t *testing.T, path string, epsg int) {
	t.Helper()

	system, err := crs.FromEPSG(epsg)
	require.NoError(t, err, "fixture EPSG should resolve")

	require.NoError(t, vector.WriteProjection(path, system), "fixture projection should write")
}

func readShapes(t *testing.T, path string) (shp.ShapeType, []shp.Shape, []string) {
	t.Helper()

	reader, err := shp.Open(path)
	require.NoError(t, err, "output shapefile should open")

	defer func() { _ = reader.Close() }()

	var (
		shapes []shp.Shape
		names  []string
	)

	for reader.Next() {
		index, shape := reader.Shape()
		shapes = append(shapes, shape)
		names = append(names, reader.ReadAttribute(index, 0))
	}

	require.NoError(t, reader.Err(), "output shapefile should read")

	return reader.GeometryType, shapes, names
}

func TestReprojectPolygonsIdentity(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_wgs84.shp")
	ring := squareRing(-105.5, 39.5, -104.5, 40.5)

	writePolygonLayer(t, src, [][]shp.Point{ring}, []string{"meadow"})
	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPolygons(context.Background(), src, dst, "EPSG:4326"),
		"identity reprojection should succeed")

	kind, shapes, names := readShapes(t, dst)

	require.Equal(t, shp.POLYGON, kind, "output shape type")
	require.Len(t, shapes, 1, "feature count")
	assert.Equal(t, []string{"meadow"}, names, "attributes should copy through")

	polygon, ok := shapes[0].(*shp.Polygon)
	require.True(t, ok, "feature should be a polygon")
	require.Len(t, polygon.Points, len(ring), "vertex count")

	for i, point := range ring {
		assert.InDelta(t, point.X, polygon.Points[i].X, 1e-12, "vertex %d x", i)
		assert.InDelta(t, point.Y, polygon.Points[i].Y, 1e-12, "vertex %d y", i)
	}

	system, err := vector.ReadProjection(dst)
	require.NoError(t, err, "output projection should read back")

	wgs84, err := crs.FromEPSG(4326)
	require.NoError(t, err)
	assert.True(t, system.Equal(wgs84), "output system should stay WGS 84")
}

func TestReprojectPolygonsTransformsVertices(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_merc.shp")
	ring := squareRing(-105.5, 39.5, -104.5, 40.5)

	writePolygonLayer(t, src, [][]shp.Point{ring}, []string{"meadow"})
	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPolygons(context.Background(), src, dst, "EPSG:3857"),
		"reprojection should succeed")

	wgs84, err := crs.FromEPSG(4326)
	require.NoError(t, err)

	mercator, err := crs.FromEPSG(3857)
	require.NoError(t, err)

	transformer, err := crs.NewTransformer(wgs84, mercator)
	require.NoError(t, err)

	_, shapes, _ := readShapes(t, dst)
	require.Len(t, shapes, 1, "feature count")

	polygon, ok := shapes[0].(*shp.Polygon)
	require.True(t, ok, "feature should be a polygon")
	require.Len(t, polygon.Points, len(ring), "vertex count")

	for i, point := range ring {
		wantX, wantY := transformer.Transform(point.X, point.Y)

		assert.InDelta(t, wantX, polygon.Points[i].X, 1e-6, "vertex %d easting", i)
		assert.InDelta(t, wantY, polygon.Points[i].Y, 1e-6, "vertex %d northing", i)
	}

	system, err := vector.ReadProjection(dst)
	require.NoError(t, err, "output projection should read back")
	assert.Equal(t, 3857, system.EPSG(), "output system")
}

func TestReprojectPolygonsFlattensZ(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "terrain.shp")
	dst := filepath.Join(dir, "terrain_utm.shp")
	ring := squareRing(-105.5, 39.5, -104.5, 40.5)

	writer, err := shp.Create(src, shp.POLYGONZ)
	require.NoError(t, err, "fixture shapefile should create")

	writer.SetFields([]shp.Field{shp.StringField("NAME", 32)})
	writer.Write(&shp.PolygonZ{
		Box:       shp.BBoxFromPoints(ring),
		NumParts:  1,
		NumPoints: int32(len(ring)),
		Parts:     []int32{0},
		Points:    ring,
		ZArray:    make([]float64, len(ring)),
	})
	require.NoError(t, writer.WriteAttribute(0, 0, "ridge"), "fixture attribute should write")
	writer.Close()

	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPolygons(context.Background(), src, dst, "EPSG:32613"),
		"reprojection should succeed")

	kind, shapes, names := readShapes(t, dst)

	assert.Equal(t, shp.POLYGON, kind, "Z level should flatten away")
	require.Len(t, shapes, 1, "feature count")
	assert.Equal(t, []string{"ridge"}, names, "attributes should copy through")
}

func TestReprojectPointsTransformsVertices(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "sites.shp")
	dst := filepath.Join(dir, "sites_utm.shp")
	points := []shp.Point{{X: -105.5, Y: 39.75}, {X: -104.2, Y: 40.1}}

	writePointLayer(t, src, points, []string{"depot", "yard"})
	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPoints(context.Background(), src, dst, "EPSG:32613"),
		"reprojection should succeed")

	wgs84, err := crs.FromEPSG(4326)
	require.NoError(t, err)

	utm, err := crs.FromEPSG(32613)
	require.NoError(t, err)

	transformer, err := crs.NewTransformer(wgs84, utm)
	require.NoError(t, err)

	kind, shapes, names := readShapes(t, dst)

	require.Equal(t, shp.POINT, kind, "output shape type")
	require.Len(t, shapes, len(points), "feature count")
	assert.Equal(t, []string{"depot", "yard"}, names, "attributes should copy through")

	for i, original := range points {
		point, ok := shapes[i].(*shp.Point)
		require.True(t, ok, "feature %d should be a point", i)

		wantX, wantY := transformer.Transform(original.X, original.Y)

		assert.InDelta(t, wantX, point.X, 1e-6, "feature %d easting", i)
		assert.InDelta(t, wantY, point.Y, 1e-6, "feature %d northing", i)
	}
}

func TestReprojectPointsFlattensZ(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "peaks.shp")
	dst := filepath.Join(dir, "peaks_utm.shp")

	writer, err := shp.Create(src, shp.POINTZ)
	require.NoError(t, err, "fixture shapefile should create")

	writer.SetFields([]shp.Field{shp.StringField("NAME", 32)})
	writer.Write(&shp.PointZ{X: -105.27, Y: 40.01, Z: 4346})
	require.NoError(t, writer.WriteAttribute(0, 0, "longs"), "fixture attribute should write")
	writer.Close()

	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPoints(context.Background(), src, dst, "EPSG:32613"),
		"reprojection should succeed")

	kind, shapes, _ := readShapes(t, dst)

	assert.Equal(t, shp.POINT, kind, "Z level should flatten away")
	require.Len(t, shapes, 1, "feature count")
}

func TestReprojectPointsRejectsPolygons(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_utm.shp")

	writePolygonLayer(t, src, [][]shp.Point{squareRing(0, 0, 1, 1)}, []string{"meadow"})
	writePrj(t, src, 4326)

	err := vector.ReprojectPoints(context.Background(), src, dst, "EPSG:32613")

	require.ErrorIs(t, err, vector.ErrUnsupportedShape, "polygon input should be rejected")
}

func TestReprojectMissingProjection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_utm.shp")

	writePolygonLayer(t, src, [][]shp.Point{squareRing(0, 0, 1, 1)}, []string{"meadow"})

	err := vector.ReprojectPolygons(context.Background(), src, dst, "EPSG:32613")

	require.ErrorIs(t, err, vector.ErrMissingProjection, "missing sidecar should be reported")
	assert.ErrorContains(t, err, ".prj", "error should name the sidecar")
}

func TestReprojectBadTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_utm.shp")

	writePolygonLayer(t, src, [][]shp.Point{squareRing(0, 0, 1, 1)}, []string{"meadow"})
	writePrj(t, src, 4326)

	err := vector.ReprojectPolygons(context.Background(), src, dst, "not-a-system")

	require.ErrorIs(t, err, crs.ErrInvalidCRS, "garbage target should be rejected")
	assert.ErrorContains(t, err, "failed to parse target system", "error should name the stage")
}

func TestReprojectReplacesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_out.shp")

	writePolygonLayer(t, dst,
		[][]shp.Point{squareRing(0, 0, 1, 1), squareRing(2, 2, 3, 3)},
		[]string{"before", "before"})

	writePolygonLayer(t, src, [][]shp.Point{squareRing(-105, 39, -104, 40)}, []string{"after"})
	writePrj(t, src, 4326)

	require.NoError(t, vector.ReprojectPolygons(context.Background(), src, dst, "EPSG:4326"),
		"existing output should be replaced")

	_, shapes, names := readShapes(t, dst)

	require.Len(t, shapes, 1, "old features should be gone")
	assert.Equal(t, []string{"after"}, names, "new attributes should be present")
}

func TestReprojectHonorsCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "fields.shp")
	dst := filepath.Join(dir, "fields_utm.shp")

	writePolygonLayer(t, src, [][]shp.Point{squareRing(0, 0, 1, 1)}, []string{"meadow"})
	writePrj(t, src, 4326)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := vector.ReprojectPolygons(ctx, src, dst, "EPSG:32613")

	require.ErrorIs(t, err, context.Canceled, "canceled context should stop the copy")
}
