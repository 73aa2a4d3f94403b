package order

import (
	"testing"

	"canteen-backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestComputeOrderTotal(t *testing.T) {
	prices := map[string]float64{"a": 150, "b": 15, "c": 0.1, "d": 0.2}

	assert.Equal(t, 165.0, ComputeOrderTotal([]domain.OrderLineRequest{
		{MenuItemID: "a", Quantity: 1},
		{MenuItemID: "b", Quantity: 1},
	}, prices))

	assert.Equal(t, 0.3, ComputeOrderTotal([]domain.OrderLineRequest{
		{MenuItemID: "c", Quantity: 1},
		{MenuItemID: "d", Quantity: 1},
	}, prices))

	assert.Equal(t, 330.0, ComputeOrderTotal([]domain.OrderLineRequest{
		{MenuItemID: "a", Quantity: 2},
		{MenuItemID: "b", Quantity: 2},
	}, prices))
}

func TestComputeOrderTotalUnknownItemsContributeZero(t *testing.T) {
	prices := map[string]float64{"a": 40}
	assert.Equal(t, 40.0, ComputeOrderTotal([]domain.OrderLineRequest{
		{MenuItemID: "a", Quantity: 1},
		{MenuItemID: "missing", Quantity: 3},
	}, prices))
	assert.Zero(t, ComputeOrderTotal(nil, prices))
}

func TestComputeOrderTotalIsOrderInvariant(t *testing.T) {
	prices := map[string]float64{"a": 10.1, "b": 0.7, "c": 99.99, "d": 3.35}
	lines := []domain.OrderLineRequest{
		{MenuItemID: "a", Quantity: 3},
		{MenuItemID: "b", Quantity: 7},
		{MenuItemID: "c", Quantity: 1},
		{MenuItemID: "d", Quantity: 9},
	}
	want := ComputeOrderTotal(lines, prices)

	// every rotation and the reversal give the same total
	for i := range lines {
		rotated := append(append([]domain.OrderLineRequest{}, lines[i:]...), lines[:i]...)
		assert.Equal(t, want, ComputeOrderTotal(rotated, prices))
	}
	reversed := make([]domain.OrderLineRequest, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	assert.Equal(t, want, ComputeOrderTotal(reversed, prices))
	assert.Equal(t, 165.34, want)
}
