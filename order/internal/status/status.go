// Package status holds the order lifecycle rules. An order moves
// pending -> confirmed -> shipped -> delivered, and can be cancelled
// while it is still pending or confirmed. Which moves are legal depends
// on the role of the caller: herders drive the fulfillment path, admins
// can additionally cancel a confirmed order, customers cannot change
// status at all.
package status

import (
	"github.com/malchin/market/internal/repository"
)

var transitions = map[repository.UserRole]map[repository.OrderStatus][]repository.OrderStatus{
	repository.UserRoleHerder: {
		repository.OrderStatusPending:   {repository.OrderStatusConfirmed, repository.OrderStatusCancelled},
		repository.OrderStatusConfirmed: {repository.OrderStatusShipped},
		repository.OrderStatusShipped:   {repository.OrderStatusDelivered},
	},
	repository.UserRoleAdmin: {
		repository.OrderStatusPending:   {repository.OrderStatusConfirmed, repository.OrderStatusCancelled},
		repository.OrderStatusConfirmed: {repository.OrderStatusShipped, repository.OrderStatusCancelled},
		repository.OrderStatusShipped:   {repository.OrderStatusDelivered},
	},
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s repository.OrderStatus) bool {
	return s == repository.OrderStatusDelivered || s == repository.OrderStatusCancelled
}

// Allowed returns the statuses the given role may move an order to from
// the given status. The returned slice is shared and must not be mutated.
func Allowed(role repository.UserRole, from repository.OrderStatus) []repository.OrderStatus {
	return transitions[role][from]
}

// CanTransition reports whether role may move an order from one status
// to another.
func CanTransition(role repository.UserRole, from, to repository.OrderStatus) bool {
	for _, allowed := range transitions[role][from] {
		if allowed == to {
			return true
		}
	}
	return false
}
