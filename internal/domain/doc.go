// Package domain models the Cook East soil-survey samples and the
// georeference grid they are keyed to.
//
// # Data Source
//
// Samples come from the NRCS soil-series survey spreadsheet for the Cook East
// field. Each row carries a sample ID, a UTM zone 11N position (EPSG:32611,
// metres) and a numeric soil-series code:
//
//	ID | Easting | Northing | (unused) | Series
//
// The reference grid is the Cook East georeference point set, a GeoJSON
// FeatureCollection of points in WGS 84 longitude/latitude (EPSG:4326) each
// tagged with an integer "ID2".
//
// # Series Codes
//
//	 1 Caldwell        6 Palouse
//	 2 Unknown         7 Palouse
//	 3 Latah           8 Staley
//	 4 Naff            9 Thatuna
//	 5 Naff           10 Buried/Altered
//
// Codes outside 1–10 have no name. Non-numeric series cells are carried through
// as the name verbatim. See [SeriesName].
//
// # Output
//
// One CSV per run, named by [OutputFileName], holding ID2, SeriesName,
// Latitude and Longitude for every sample, ordered by ID2.
package domain
