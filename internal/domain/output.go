package domain

import "fmt"

// OutputColumns is the exact header of the cleaned CSV.
var OutputColumns = []string{"ID2", "SeriesName", "Latitude", "Longitude"}

// OutputFileName returns the dated name of the cleaned CSV for the current
// clock, e.g. "CookEastNrcsSoilSeries_20190924_P1A1.csv".
func OutputFileName() string {
	return fmt.Sprintf("CookEastNrcsSoilSeries_%s_P1A1.csv", clock.Now().Format("20060102"))
}
