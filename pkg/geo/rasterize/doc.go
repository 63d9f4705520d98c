// Package rasterize burns shapefile attributes into GeoTIFF grids.
//
// Key functionality:
//   - Burn polygon interiors with an even-odd scanline fill against cell
//     centers, optionally extended to every cell a boundary passes through.
//   - Burn point features into their containing cells.
//   - Pull burn values from a named DBF attribute field.
//   - Fill the background with the nodata marker so untouched cells read
//     back as missing rather than zero.
package rasterize
