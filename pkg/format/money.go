// Package format provides display formatting helpers shared by the report
// and server layers.
package format

import (
	"fmt"
	"math"
)

// Money returns a price string in millions with a pound sign (e.g. "£10.5m").
func Money(millions float64) string {
	if millions < 0 {
		return fmt.Sprintf("-£%.1fm", math.Abs(millions))
	}
	return fmt.Sprintf("£%.1fm", millions)
}

// MoneyDelta returns a signed price delta string (e.g. "+£0.5m", "-£1.2m").
func MoneyDelta(millions float64) string {
	if millions >= 0 {
		return fmt.Sprintf("+£%.1fm", millions)
	}
	return fmt.Sprintf("-£%.1fm", math.Abs(millions))
}

// Points returns a projected-points string with one decimal (e.g. "24.3").
func Points(points float64) string {
	return fmt.Sprintf("%.1f", points)
}

// PointsDelta returns a signed projected-points delta (e.g. "+3.2").
func PointsDelta(points float64) string {
	if points >= 0 {
		return fmt.Sprintf("+%.1f", points)
	}
	return fmt.Sprintf("%.1f", points)
}

// Ownership returns an ownership percentage string (e.g. "45.1%").
func Ownership(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
