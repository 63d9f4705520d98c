package rasterize

import (
	"math"
	"sort"

	"github.com/gdstools/gdskit/pkg/geo/raster"
	shp "github.com/jonas-p/go-shp"
)

// vertex is a position in fractional pixel coordinates.
type vertex struct {
	x float64
	y float64
}

// burn writes a feature's value into the grid cells it covers.
func burn(grid *raster.Grid, transform raster.GeoTransform, shape shp.Shape, value float64, allTouched bool) error {
	switch s := shape.(type) {
	case *shp.Null:
		return nil
	case *shp.Point:
		burnPoint(grid, transform, s.X, s.Y, value)
	case *shp.PointZ:
		burnPoint(grid, transform, s.X, s.Y, value)
	case *shp.PointM:
		burnPoint(grid, transform, s.X, s.Y, value)
	case *shp.MultiPoint:
		for _, point := range s.Points {
			burnPoint(grid, transform, point.X, point.Y, value)
		}
	case *shp.Polygon:
		burnPolygon(grid, pixelRings(transform, s.Points, s.Parts), value, allTouched)
	case *shp.PolygonZ:
		burnPolygon(grid, pixelRings(transform, s.Points, s.Parts), value, allTouched)
	case *shp.PolygonM:
		burnPolygon(grid, pixelRings(transform, s.Points, s.Parts), value, allTouched)
	default:
		return ErrUnsupportedGeometry
	}

	return nil
}

// burnPoint writes the value into the cell containing the coordinate.
func burnPoint(grid *raster.Grid, transform raster.GeoTransform, x, y, value float64) {
	col, row, err := transform.GeoToPixel(x, y)
	if err != nil {
		return
	}

	c := int(math.Floor(col))
	r := int(math.Floor(row))

	if c >= 0 && r >= 0 && c < grid.Width && r < grid.Height {
		grid.Set(r, c, value)
	}
}

// pixelRings converts shapefile part-indexed points into per-ring vertex
// lists in pixel space.
func pixelRings(transform raster.GeoTransform, points []shp.Point, parts []int32) [][]vertex {
	if len(parts) == 0 {
		parts = []int32{0}
	}

	rings := make([][]vertex, 0, len(parts))

	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}

		if int(start) >= end {
			continue
		}

		ring := make([]vertex, 0, end-int(start))

		for _, point := range points[start:end] {
			col, row, err := transform.GeoToPixel(point.X, point.Y)
			if err != nil {
				return nil
			}

			ring = append(ring, vertex{x: col, y: row})
		}

		rings = append(rings, ring)
	}

	return rings
}

// burnPolygon rasterizes rings with an even-odd scanline fill against cell
// centers. Holes cancel out through the crossing parity. With allTouched
// every cell a ring edge passes through burns as well.
func burnPolygon(grid *raster.Grid, rings [][]vertex, value float64, allTouched bool) {
	if len(rings) == 0 {
		return
	}

	minY, maxY := math.Inf(1), math.Inf(-1)

	for _, ring := range rings {
		for _, v := range ring {
			minY = math.Min(minY, v.y)
			maxY = math.Max(maxY, v.y)
		}
	}

	rowStart := int(math.Ceil(minY - 0.5))
	rowEnd := int(math.Floor(maxY - 0.5))

	if rowStart < 0 {
		rowStart = 0
	}

	if rowEnd > grid.Height-1 {
		rowEnd = grid.Height - 1
	}

	crossings := make([]float64, 0, 8)

	for row := rowStart; row <= rowEnd; row++ {
		centerY := float64(row) + 0.5
		crossings = crossings[:0]

		for _, ring := range rings {
			for i := range ring {
				a := ring[i]
				b := ring[(i+1)%len(ring)]

				if (a.y > centerY) == (b.y > centerY) {
					continue
				}

				crossings = append(crossings, a.x+(centerY-a.y)/(b.y-a.y)*(b.x-a.x))
			}
		}

		sort.Float64s(crossings)

		for i := 0; i+1 < len(crossings); i += 2 {
			fillSpan(grid, row, crossings[i], crossings[i+1], value)
		}
	}

	if !allTouched {
		return
	}

	for _, ring := range rings {
		for i := range ring {
			burnSegment(grid, ring[i], ring[(i+1)%len(ring)], value)
		}
	}
}

// fillSpan burns cells whose center x lies in the half open span [from, to).
func fillSpan(grid *raster.Grid, row int, from, to float64, value float64) {
	colStart := int(math.Ceil(from - 0.5))
	colEnd := int(math.Ceil(to-0.5)) - 1

	if colStart < 0 {
		colStart = 0
	}

	if colEnd > grid.Width-1 {
		colEnd = grid.Width - 1
	}

	for col := colStart; col <= colEnd; col++ {
		grid.Set(row, col, value)
	}
}

// burnSegment burns every cell the segment passes through, walking the
// pixel grid boundary to boundary.
func burnSegment(grid *raster.Grid, a, b vertex, value float64) {
	setCell := func(col, row int) {
		if col >= 0 && row >= 0 && col < grid.Width && row < grid.Height {
			grid.Set(row, col, value)
		}
	}

	col := int(math.Floor(a.x))
	row := int(math.Floor(a.y))
	endCol := int(math.Floor(b.x))
	endRow := int(math.Floor(b.y))

	setCell(col, row)

	deltaX := b.x - a.x
	deltaY := b.y - a.y

	stepCol, stepRow := 0, 0
	nextX, nextY := math.Inf(1), math.Inf(1)
	strideX, strideY := math.Inf(1), math.Inf(1)

	if deltaX > 0 {
		stepCol = 1
		nextX = (math.Floor(a.x) + 1 - a.x) / deltaX
		strideX = 1 / deltaX
	} else if deltaX < 0 {
		stepCol = -1
		nextX = (a.x - math.Floor(a.x)) / -deltaX
		strideX = -1 / deltaX
	}

	if deltaY > 0 {
		stepRow = 1
		nextY = (math.Floor(a.y) + 1 - a.y) / deltaY
		strideY = 1 / deltaY
	} else if deltaY < 0 {
		stepRow = -1
		nextY = (a.y - math.Floor(a.y)) / -deltaY
		strideY = -1 / deltaY
	}

	// Each iteration advances exactly one cell toward the end cell.
	maxSteps := abs(endCol-col) + abs(endRow-row)

	for step := 0; step < maxSteps && (col != endCol || row != endRow); step++ {
		if nextX < nextY {
			nextX += strideX
			col += stepCol
		} else {
			nextY += strideY
			row += stepRow
		}

		setCell(col, row)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
