package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentChange retorna a variação percentual de previous para current.
// Quando previous é zero a variação é zero.
func PercentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return RoundWithTwoDecimalPlace((current - previous) / previous * 100)
}
