package order

import (
	"math"

	"canteen-backend/domain"
)

// Money is summed in hundredths so the result does not depend on line order.

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

func lineTotalCents(quantity int, unitPrice float64) int64 {
	return int64(quantity) * toCents(unitPrice)
}

// ComputeOrderTotal sums quantity x unit price per line. Lines whose menu item
// is missing from priceLookup contribute zero.
func ComputeOrderTotal(lines []domain.OrderLineRequest, priceLookup map[string]float64) float64 {
	var cents int64
	for _, line := range lines {
		price, ok := priceLookup[line.MenuItemID]
		if !ok {
			continue
		}
		cents += lineTotalCents(line.Quantity, price)
	}
	return fromCents(cents)
}
