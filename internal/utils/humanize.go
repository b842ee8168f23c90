package utils

import (
	"fmt"     // Formatting
	"strconv" // Integer formatting
)

// TotalGridCells is the fixed number of addressable cells covering the
// Earth's surface.
const TotalGridCells int64 = 459216307166210800

// HumanizeLargeNumber renders a count in abbreviated form: values below
// 1000 as plain integers, larger values with two decimals and a magnitude
// suffix (1500 -> "1.50K", 2500000 -> "2.50M").
func HumanizeLargeNumber(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	v := float64(n)
	for _, unit := range [...]string{"K", "M", "B", "T", "P", "E"} {
		v /= 1000.0
		if v < 1000 {
			return fmt.Sprintf("%.2f%s", v, unit)
		}
	}
	return fmt.Sprintf("%.2fZ", v)
}

// PercentagePixelsPlaced returns the share of the Earth's grid cells the
// world pixel count represents, as a percentage.
func PercentagePixelsPlaced(worldPixels int64) float64 {
	return float64(worldPixels) / float64(TotalGridCells) * 100
}
