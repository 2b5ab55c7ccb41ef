package util

import (
	"math"
	"strconv"
)

func Round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))

	return math.Round(value*factor) / factor
}

// FormatDecimal prints the shortest representation of value, always keeping one decimal place
func FormatDecimal(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)

	if value == math.Trunc(value) {
		formatted = strconv.FormatFloat(value, 'f', 1, 64)
	}

	return formatted
}
