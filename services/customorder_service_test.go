package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ileke_server/structs/tables"
)

func TestCustomRequestHappyPathTransitions(t *testing.T) {
	path := []tables.CustomOrderRequestStatus{
		tables.CustomRequestStatusSubmitted,
		tables.CustomRequestStatusUnderReview,
		tables.CustomRequestStatusQuoted,
		tables.CustomRequestStatusAwaitingPayment,
		tables.CustomRequestStatusPaid,
		tables.CustomRequestStatusInProduction,
		tables.CustomRequestStatusCompleted,
	}

	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransitionRequestStatus(path[i], path[i+1]), "%s -> %s", path[i], path[i+1])
	}
}

func TestCustomRequestRollbacks(t *testing.T) {
	// A quote can be withdrawn back to review, and an unpaid acceptance can
	// fall back to quoted.
	assert.True(t, CanTransitionRequestStatus(tables.CustomRequestStatusQuoted, tables.CustomRequestStatusUnderReview))
	assert.True(t, CanTransitionRequestStatus(tables.CustomRequestStatusAwaitingPayment, tables.CustomRequestStatusQuoted))

	// Paid work cannot roll back.
	assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusPaid, tables.CustomRequestStatusQuoted))
	assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusInProduction, tables.CustomRequestStatusAwaitingPayment))
}

func TestCustomRequestTerminalStatuses(t *testing.T) {
	all := []tables.CustomOrderRequestStatus{
		tables.CustomRequestStatusSubmitted,
		tables.CustomRequestStatusUnderReview,
		tables.CustomRequestStatusQuoted,
		tables.CustomRequestStatusAwaitingPayment,
		tables.CustomRequestStatusPaid,
		tables.CustomRequestStatusInProduction,
		tables.CustomRequestStatusCompleted,
		tables.CustomRequestStatusCancelled,
		tables.CustomRequestStatusRejected,
	}

	for _, to := range all {
		assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusCompleted, to))
		assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusCancelled, to))
		assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusRejected, to))
	}
}

func TestCustomRequestCancellationWindow(t *testing.T) {
	// Cancellation is possible any time before payment, never after.
	for _, from := range []tables.CustomOrderRequestStatus{
		tables.CustomRequestStatusSubmitted,
		tables.CustomRequestStatusUnderReview,
		tables.CustomRequestStatusQuoted,
		tables.CustomRequestStatusAwaitingPayment,
	} {
		assert.True(t, CanTransitionRequestStatus(from, tables.CustomRequestStatusCancelled), string(from))
	}

	assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusPaid, tables.CustomRequestStatusCancelled))
	assert.False(t, CanTransitionRequestStatus(tables.CustomRequestStatusInProduction, tables.CustomRequestStatusCancelled))
}
