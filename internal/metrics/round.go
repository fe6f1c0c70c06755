package metrics

import "math"

// round matches the dashboard's half-up integer rounding.
func round(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

// round10 rounds to one decimal place.
func round10(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x*10+0.5) / 10
}

// percent returns round(100*part/whole), or 0 when whole is 0.
func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return round(100 * part / whole)
}

// ClipPercent bounds a percentage to [0,100] for display.
func ClipPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
