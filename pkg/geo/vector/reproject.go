package vector

import (
	"context"
	"fmt"

	"github.com/gdstools/gdskit/pkg/geo/crs"
	shp "github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"
)

// ReprojectPolygons rewrites a polygon shapefile with every vertex converted
// to the target system, an EPSG reference or proj4 string. The source system
// comes from the .prj sidecar, attributes are copied through, and any
// existing destination layer is replaced. Z and M levels flatten to 2D.
func ReprojectPolygons(ctx context.Context, src, dst, target string) error {
	return reproject(ctx, src, dst, target, shp.POLYGON, transformPolygon)
}

// ReprojectPoints rewrites a point shapefile with every vertex converted to
// the target system. It behaves like ReprojectPolygons otherwise.
func ReprojectPoints(ctx context.Context, src, dst, target string) error {
	return reproject(ctx, src, dst, target, shp.POINT, transformPoint)
}

// reproject streams features from src into a fresh dst layer, converting
// each shape with the supplied function.
func reproject(
	ctx context.Context,
	src, dst, target string,
	kind shp.ShapeType,
	convert func(*crs.Transformer, shp.Shape) (shp.Shape, error),
) error {
	reader, err := shp.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer func() { _ = reader.Close() }()

	source, err := ReadProjection(src)
	if err != nil {
		return err
	}

	targetCRS, err := crs.Parse(target)
	if err != nil {
		return fmt.Errorf("failed to parse target system: %w", err)
	}

	transformer, err := crs.NewTransformer(source, targetCRS)
	if err != nil {
		return fmt.Errorf("failed to build transform: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"src":    src,
		"dst":    dst,
		"source": source.Name(),
		"target": targetCRS.Name(),
	}).Debug("reprojecting layer")

	if err := removeLayer(dst); err != nil {
		return err
	}

	writer, err := shp.Create(dst, kind)
	if err != nil {
		return fmt.Errorf("failed to create shapefile: %w", err)
	}

	writer.SetFields(reader.Fields())

	features, err := copyFeatures(ctx, reader, writer, transformer, convert)

	writer.Close()

	if err != nil {
		return err
	}

	logrus.WithField("features", features).Debug("reprojected layer written")

	return WriteProjection(dst, targetCRS)
}

// copyFeatures streams every feature through the shape converter, copying
// attributes along.
func copyFeatures(
	ctx context.Context,
	reader *shp.Reader,
	writer *shp.Writer,
	transformer *crs.Transformer,
	convert func(*crs.Transformer, shp.Shape) (shp.Shape, error),
) (int, error) {
	fields := reader.Fields()
	features := 0

	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return features, fmt.Errorf("reproject canceled: %w", err)
		}

		index, shape := reader.Shape()

		converted, err := convert(transformer, shape)
		if err != nil {
			return features, fmt.Errorf("feature %d: %w", index, err)
		}

		row := writer.Write(converted)

		for field := range fields {
			value := reader.ReadAttribute(index, field)
			if err := writer.WriteAttribute(int(row), field, value); err != nil {
				return features, fmt.Errorf("feature %d: failed to copy attribute %d: %w",
					index, field, err)
			}
		}

		features++
	}

	if err := reader.Err(); err != nil {
		return features, fmt.Errorf("failed to read shapefile: %w", err)
	}

	return features, nil
}

// transformPolygon rebuilds a polygon shape with converted vertices. Z and M
// variants lose their extra levels.
func transformPolygon(transformer *crs.Transformer, shape shp.Shape) (shp.Shape, error) {
	var (
		points []shp.Point
		parts  []int32
	)

	switch polygon := shape.(type) {
	case *shp.Polygon:
		points, parts = polygon.Points, polygon.Parts
	case *shp.PolygonZ:
		points, parts = polygon.Points, polygon.Parts
	case *shp.PolygonM:
		points, parts = polygon.Points, polygon.Parts
	case *shp.Null:
		return shape, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, shape)
	}

	if len(points) == 0 {
		return &shp.Null{}, nil
	}

	transformed := transformPoints(transformer, points)

	return &shp.Polygon{
		Box:       shp.BBoxFromPoints(transformed),
		NumParts:  int32(len(parts)),
		NumPoints: int32(len(transformed)),
		Parts:     parts,
		Points:    transformed,
	}, nil
}

// transformPoint rebuilds a point shape with converted coordinates.
func transformPoint(transformer *crs.Transformer, shape shp.Shape) (shp.Shape, error) {
	var x, y float64

	switch point := shape.(type) {
	case *shp.Point:
		x, y = point.X, point.Y
	case *shp.PointZ:
		x, y = point.X, point.Y
	case *shp.PointM:
		x, y = point.X, point.Y
	case *shp.Null:
		return shape, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, shape)
	}

	x, y = transformer.Transform(x, y)

	return &shp.Point{X: x, Y: y}, nil
}

// transformPoints converts a vertex slice through the transformer.
func transformPoints(transformer *crs.Transformer, points []shp.Point) []shp.Point {
	transformed := make([]shp.Point, len(points))

	for i, point := range points {
		x, y := transformer.Transform(point.X, point.Y)
		transformed[i] = shp.Point{X: x, Y: y}
	}

	return transformed
}
