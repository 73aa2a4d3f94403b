package order

import "canteen-backend/domain"

// transitions lists the legal next statuses; completed and cancelled have none.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusPending:   {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusReady, domain.OrderStatusCancelled},
	domain.OrderStatusReady:     {domain.OrderStatusCompleted, domain.OrderStatusCancelled},
}

func CanTransition(from, to domain.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func NextStatuses(from domain.OrderStatus) []domain.OrderStatus {
	return append([]domain.OrderStatus(nil), transitions[from]...)
}

func checkTransition(from, to domain.OrderStatus) error {
	if !to.Valid() {
		return domain.ErrUnknownOrderStatus
	}
	if from.Terminal() {
		return domain.ErrOrderTerminal
	}
	if !CanTransition(from, to) {
		return domain.ErrIllegalTransition
	}
	return nil
}
