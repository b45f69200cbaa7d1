package view

import (
	"math"
	"strconv"
)

const (
	largeIconURL = "http://openweathermap.org/img/wn/%s@2x.png"
	smallIconURL = "http://openweathermap.org/img/w/%s.png"

	clockLayout = "15:04"

	// msToKmh converts the provider's m/s wind speed for display.
	msToKmh = 3.6
)

// round rounds halves up: 2.5 -> 3, -2.5 -> -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// number prints v with the shortest exact representation: 66, 66.5, 1010.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
