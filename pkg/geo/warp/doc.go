// Package warp reprojects and resamples rasters between coordinate systems.
//
// Key functionality:
//   - Run warps a GeoTIFF to a new grid defined by options, a template
//     raster, or the source itself.
//   - TemplateOptions lifts the target geometry from an existing raster;
//     template values take precedence over explicit ones, matching the
//     long-standing gdalwarp wrapper convention.
//   - An option registry documents and validates the warp and rasterize
//     option sets for the options command.
package warp
