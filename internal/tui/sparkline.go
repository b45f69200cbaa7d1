package tui

import (
	"strconv"
	"strings"
)

var bars = []rune("▁▂▃▄▅▆▇█")

// sparkline draws one bar per value, scaled between lo and hi. Each bar is
// two cells wide so it lines up with hourAxis.
func sparkline(values []float64, lo, hi float64) string {
	var b strings.Builder
	for _, v := range values {
		idx := len(bars) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(bars)-1))
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= len(bars) {
			idx = len(bars) - 1
		}
		b.WriteRune(bars[idx])
		b.WriteRune(bars[idx])
	}
	return b.String()
}

// hourAxis labels every sixth hour.
func hourAxis(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i%6 == 0 {
			label := strconv.Itoa(i)
			b.WriteString(label)
			b.WriteString(strings.Repeat(" ", 2-len(label)))
			continue
		}
		b.WriteString("  ")
	}
	return b.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
