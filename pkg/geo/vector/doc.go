// Package vector reprojects shapefile layers and converts delimited
// coordinate tables into GeoJSON features.
//
// Key functionality:
//   - Rewrite polygon and point layers into another coordinate system,
//     carrying DBF attributes through and replacing any existing output.
//   - Read and write the .prj sidecars that tie a layer to its system.
//   - Turn a CSV of longitude/latitude rows into a point feature
//     collection with the remaining columns as properties.
package vector
