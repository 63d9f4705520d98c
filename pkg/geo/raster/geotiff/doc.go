// Package geotiff reads and writes single band GeoTIFF files without cgo.
//
// The codec covers the subset of the TIFF 6.0 and GeoTIFF 1.1 specifications
// that gdal-produced single band data rasters use in practice: strip
// organized images, none or deflate compression, integer and floating point
// samples, and the private tags that carry georeferencing, nodata, and
// metadata.
//
// Key functionality:
//   - Decode parses little and big endian files.
//   - Encode writes little endian, strip organized output.
//   - Coordinate systems travel as EPSG geokeys when the code fits in a
//     TIFF SHORT, with a proj4 citation as the fallback.
//   - GDAL's nodata and metadata tags round-trip.
package geotiff
