// Package tile cuts rasters into edge-aligned rectangular tiles.
//
// Key functionality:
//   - Split an extent into an approximately square chunk grid whose
//     boundaries land exactly on cell edges, leaving no seams.
//   - Write one cropped GeoTIFF per chunk in parallel, skipping tiles a
//     previous run already produced.
package tile
