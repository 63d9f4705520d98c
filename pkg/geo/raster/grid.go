package raster

import "math"

// Grid is a dense row-major float64 cell buffer. Cells are addressed by
// (row, col) with row zero at the top. Values are held as float64 in memory
// regardless of their on-disk type; nodata cells are NaN once masked.
type Grid struct {
	Width  int
	Height int
	Data   []float64
}

// NewGrid allocates a zeroed grid of the given shape.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Data:   make([]float64, width*height),
	}
}

// NewGridFrom wraps existing row-major data in a grid. The data length must
// equal width*height.
func NewGridFrom(width, height int, data []float64) (*Grid, error) {
	if len(data) != width*height {
		return nil, ErrGridShape
	}

	return &Grid{Width: width, Height: height, Data: data}, nil
}

// At returns the cell value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Data[row*g.Width+col]
}

// Set writes the cell value at (row, col).
func (g *Grid) Set(row, col int, value float64) {
	g.Data[row*g.Width+col] = value
}

// Fill sets every cell to the given value.
func (g *Grid) Fill(value float64) {
	for i := range g.Data {
		g.Data[i] = value
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)

	return &Grid{Width: g.Width, Height: g.Height, Data: data}
}

// MaskNoData replaces cells equal to nodata with NaN.
func (g *Grid) MaskNoData(nodata float64) {
	for i, v := range g.Data {
		if v == nodata {
			g.Data[i] = math.NaN()
		}
	}
}

// UnmaskNoData replaces NaN cells with the given nodata value.
func (g *Grid) UnmaskNoData(nodata float64) {
	for i, v := range g.Data {
		if math.IsNaN(v) {
			g.Data[i] = nodata
		}
	}
}

// Min returns the smallest non-NaN cell value. The bool is false when every
// cell is NaN or the grid is empty.
func (g *Grid) Min() (float64, bool) {
	minValue := math.Inf(1)
	found := false

	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}

		if v < minValue {
			minValue = v
		}

		found = true
	}

	if !found {
		return 0, false
	}

	return minValue, true
}

// Max returns the largest non-NaN cell value. The bool is false when every
// cell is NaN or the grid is empty.
func (g *Grid) Max() (float64, bool) {
	maxValue := math.Inf(-1)
	found := false

	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}

		if v > maxValue {
			maxValue = v
		}

		found = true
	}

	if !found {
		return 0, false
	}

	return maxValue, true
}

// Mean returns the average of non-NaN cells. The bool is false when every
// cell is NaN or the grid is empty.
func (g *Grid) Mean() (float64, bool) {
	sum := 0.0
	count := 0

	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}

		sum += v
		count++
	}

	if count == 0 {
		return 0, false
	}

	return sum / float64(count), true
}
