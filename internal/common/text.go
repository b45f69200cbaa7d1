package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ConditionSymbol maps a provider condition description such as
// "light rain" or "broken clouds" to a single terminal symbol.
func ConditionSymbol(description string) string {
	d := strings.ToLower(description)

	switch {
	case HasAny(d, "thunder", "storm"):
		return "⛈"
	case HasAny(d, "snow", "sleet"):
		return "🌨"
	case HasAny(d, "drizzle", "light rain", "shower"):
		return "🌦"
	case HasAny(d, "rain"):
		return "🌧"
	case HasAny(d, "mist", "fog", "haze", "smoke", "dust", "sand", "ash"):
		return "🌫"
	case HasAny(d, "few clouds", "scattered"):
		return "🌤"
	case HasAny(d, "broken"):
		return "🌥"
	case HasAny(d, "cloud", "overcast"):
		return "☁"
	case HasAny(d, "clear", "sun"):
		return "☀"
	default:
		return "·"
	}
}
