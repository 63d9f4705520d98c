// Package raster provides the in-memory raster model and GeoTIFF-backed IO.
//
// Key functionality:
//   - Grid: dense row-major float64 cell storage with NaN nodata masking.
//   - GeoTransform: affine pixel/world mapping in GDAL coefficient order.
//   - Dataset: grid + georeferencing + CRS + nodata + cell type.
//   - Read, Write: GeoTIFF IO with nodata handling, templates, and an
//     overwrite gate.
//   - DType, Compression: cell type and compression enums usable as CLI
//     flag values.
//
// Subpackages:
//   - geotiff: the GeoTIFF codec.
package raster
