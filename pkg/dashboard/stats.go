package dashboard

import (
	"math"
	"time"
)

// MonthBounds returns the start of the month containing now, the start of the
// previous month and the start of the next one, in now's location.
func MonthBounds(now time.Time) (current, previous, next time.Time) {
	current = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return current, current.AddDate(0, -1, 0), current.AddDate(0, 1, 0)
}

// GrowthPercentage compares a period with the one before it. Growth from
// zero is reported as 100 when anything happened, otherwise 0.
func GrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func AverageOrderValue(revenue float64, orders int64) float64 {
	if orders == 0 {
		return 0
	}
	return round2(revenue / float64(orders))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
