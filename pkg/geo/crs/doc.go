// Package crs models coordinate reference systems and transforms
// coordinates between them.
//
// Key functionality:
//   - Parse, FromEPSG, FromProj4: build a CRS from an EPSG code, an
//     "EPSG:n" string, or a proj4 string.
//   - Transformer: project coordinates between two systems through a
//     geographic pivot.
//   - ToWKT: render a WKT1 description for display and GeoTIFF citations.
//
// The supported projections are longlat, Web Mercator, Mercator,
// transverse Mercator (including UTM), Albers equal area, and Lambert
// conformal conic. All systems are assumed to share the WGS84/GRS80 datum
// family; grid-based datum shifts are out of scope.
package crs
