package raster

import "errors"

// GeoTransform maps pixel coordinates to world coordinates with the six
// affine coefficients in GDAL's order:
//
//	x = gt[0] + col*gt[1] + row*gt[2]
//	y = gt[3] + col*gt[4] + row*gt[5]
//
// For a north-up raster gt[2] and gt[4] are zero, gt[0]/gt[3] are the
// coordinates of the top-left corner, gt[1] is the cell width, and gt[5] is
// the negative cell height.
type GeoTransform [6]float64

// ErrSingularTransform indicates a geotransform that cannot be inverted.
var ErrSingularTransform = errors.New("geotransform is not invertible")

// XRes returns the cell width coefficient.
func (gt GeoTransform) XRes() float64 {
	return gt[1]
}

// YRes returns the cell height coefficient (negative for north-up rasters).
func (gt GeoTransform) YRes() float64 {
	return gt[5]
}

// PixelToGeo converts fractional pixel coordinates to world coordinates.
// Whole-number coordinates address the top-left corner of a cell; add 0.5
// to each for the cell center.
func (gt GeoTransform) PixelToGeo(col, row float64) (float64, float64) {
	x := gt[0] + col*gt[1] + row*gt[2]
	y := gt[3] + col*gt[4] + row*gt[5]

	return x, y
}

// GeoToPixel converts world coordinates to fractional pixel coordinates.
func (gt GeoTransform) GeoToPixel(x, y float64) (float64, float64, error) {
	det := gt[1]*gt[5] - gt[2]*gt[4]
	if det == 0 {
		return 0, 0, ErrSingularTransform
	}

	dx := x - gt[0]
	dy := y - gt[3]

	col := (dx*gt[5] - dy*gt[2]) / det
	row := (dy*gt[1] - dx*gt[4]) / det

	return col, row, nil
}

// Bounds returns the extent covered by a raster of the given shape as
// (xmin, ymin, xmax, ymax).
func (gt GeoTransform) Bounds(width, height int) (float64, float64, float64, float64) {
	corners := [4][2]float64{}
	corners[0][0], corners[0][1] = gt.PixelToGeo(0, 0)
	corners[1][0], corners[1][1] = gt.PixelToGeo(float64(width), 0)
	corners[2][0], corners[2][1] = gt.PixelToGeo(0, float64(height))
	corners[3][0], corners[3][1] = gt.PixelToGeo(float64(width), float64(height))

	xmin, ymin := corners[0][0], corners[0][1]
	xmax, ymax := xmin, ymin

	for _, corner := range corners[1:] {
		if corner[0] < xmin {
			xmin = corner[0]
		}

		if corner[0] > xmax {
			xmax = corner[0]
		}

		if corner[1] < ymin {
			ymin = corner[1]
		}

		if corner[1] > ymax {
			ymax = corner[1]
		}
	}

	return xmin, ymin, xmax, ymax
}

// NorthUp reports whether the transform has no rotation terms.
func (gt GeoTransform) NorthUp() bool {
	return gt[2] == 0 && gt[4] == 0
}
