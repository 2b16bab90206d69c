package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/malchin/market/internal/repository"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		role     repository.UserRole
		from     repository.OrderStatus
		to       repository.OrderStatus
		expected bool
	}{
		{
			name:     "herder confirms pending order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusPending,
			to:       repository.OrderStatusConfirmed,
			expected: true,
		},
		{
			name:     "herder cancels pending order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusPending,
			to:       repository.OrderStatusCancelled,
			expected: true,
		},
		{
			name:     "herder ships confirmed order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusConfirmed,
			to:       repository.OrderStatusShipped,
			expected: true,
		},
		{
			name:     "herder delivers shipped order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusShipped,
			to:       repository.OrderStatusDelivered,
			expected: true,
		},
		{
			name:     "herder cannot cancel confirmed order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusConfirmed,
			to:       repository.OrderStatusCancelled,
			expected: false,
		},
		{
			name:     "herder cannot skip from pending to shipped",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusPending,
			to:       repository.OrderStatusShipped,
			expected: false,
		},
		{
			name:     "herder cannot revive delivered order",
			role:     repository.UserRoleHerder,
			from:     repository.OrderStatusDelivered,
			to:       repository.OrderStatusPending,
			expected: false,
		},
		{
			name:     "admin cancels confirmed order",
			role:     repository.UserRoleAdmin,
			from:     repository.OrderStatusConfirmed,
			to:       repository.OrderStatusCancelled,
			expected: true,
		},
		{
			name:     "admin cannot cancel shipped order",
			role:     repository.UserRoleAdmin,
			from:     repository.OrderStatusShipped,
			to:       repository.OrderStatusCancelled,
			expected: false,
		},
		{
			name:     "admin cannot revive cancelled order",
			role:     repository.UserRoleAdmin,
			from:     repository.OrderStatusCancelled,
			to:       repository.OrderStatusPending,
			expected: false,
		},
		{
			name:     "customer cannot confirm pending order",
			role:     repository.UserRoleCustomer,
			from:     repository.OrderStatusPending,
			to:       repository.OrderStatusConfirmed,
			expected: false,
		},
		{
			name:     "customer cannot cancel pending order",
			role:     repository.UserRoleCustomer,
			from:     repository.OrderStatusPending,
			to:       repository.OrderStatusCancelled,
			expected: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanTransition(tt.role, tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(repository.OrderStatusDelivered))
	assert.True(t, IsTerminal(repository.OrderStatusCancelled))
	assert.False(t, IsTerminal(repository.OrderStatusPending))
	assert.False(t, IsTerminal(repository.OrderStatusConfirmed))
	assert.False(t, IsTerminal(repository.OrderStatusShipped))
}

func TestTerminalStatusHasNoTransitions(t *testing.T) {
	roles := []repository.UserRole{
		repository.UserRoleCustomer,
		repository.UserRoleHerder,
		repository.UserRoleAdmin,
	}
	terminals := []repository.OrderStatus{
		repository.OrderStatusDelivered,
		repository.OrderStatusCancelled,
	}
	for _, role := range roles {
		for _, from := range terminals {
			assert.Emptyf(t, Allowed(role, from), "role=%s from=%s", role, from)
		}
	}
}
