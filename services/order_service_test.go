package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ileke_server/structs/tables"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to tables.OrderStatus }{
		{tables.OrderStatusPending, tables.OrderStatusProcessing},
		{tables.OrderStatusPending, tables.OrderStatusCancelled},
		{tables.OrderStatusProcessing, tables.OrderStatusCompleted},
		{tables.OrderStatusProcessing, tables.OrderStatusCancelled},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransitionOrderStatus(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to tables.OrderStatus }{
		{tables.OrderStatusPending, tables.OrderStatusCompleted},
		{tables.OrderStatusCompleted, tables.OrderStatusProcessing},
		{tables.OrderStatusCompleted, tables.OrderStatusCancelled},
		{tables.OrderStatusCancelled, tables.OrderStatusPending},
		{tables.OrderStatusProcessing, tables.OrderStatusPending},
	}
	for _, tt := range denied {
		assert.False(t, CanTransitionOrderStatus(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDeliveryStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to tables.DeliveryStatus }{
		{tables.DeliveryStatusProduction, tables.DeliveryStatusSorting},
		{tables.DeliveryStatusSorting, tables.DeliveryStatusDispatch},
		{tables.DeliveryStatusDispatch, tables.DeliveryStatusCompleted},
		{tables.DeliveryStatusProduction, tables.DeliveryStatusPaused},
		{tables.DeliveryStatusPaused, tables.DeliveryStatusProduction},
		{tables.DeliveryStatusPaused, tables.DeliveryStatusDispatch},
		{tables.DeliveryStatusSorting, tables.DeliveryStatusCancelled},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransitionDeliveryStatus(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to tables.DeliveryStatus }{
		{tables.DeliveryStatusProduction, tables.DeliveryStatusDispatch},
		{tables.DeliveryStatusProduction, tables.DeliveryStatusCompleted},
		{tables.DeliveryStatusSorting, tables.DeliveryStatusProduction},
		{tables.DeliveryStatusCompleted, tables.DeliveryStatusDispatch},
		{tables.DeliveryStatusCancelled, tables.DeliveryStatusProduction},
		{tables.DeliveryStatusPaused, tables.DeliveryStatusCompleted},
	}
	for _, tt := range denied {
		assert.False(t, CanTransitionDeliveryStatus(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, to := range []tables.OrderStatus{
		tables.OrderStatusPending,
		tables.OrderStatusProcessing,
		tables.OrderStatusCompleted,
		tables.OrderStatusCancelled,
	} {
		assert.False(t, CanTransitionOrderStatus(tables.OrderStatusCompleted, to))
		assert.False(t, CanTransitionOrderStatus(tables.OrderStatusCancelled, to))
	}
}

func TestFirstNameOf(t *testing.T) {
	assert.Equal(t, "Adaeze", firstNameOf("Adaeze Okonkwo"))
	assert.Equal(t, "Adaeze", firstNameOf("Adaeze"))
	assert.Equal(t, "customer", firstNameOf(""))
	assert.Equal(t, "customer", firstNameOf("   "))
}
