// Package mapvalues rewrites raster cell values through a lookup table,
// commonly to translate classification codes between schemes. Cells whose
// value has no entry, the nodata marker included, collapse to a single
// error value so unexpected codes stand out in the output.
package mapvalues
