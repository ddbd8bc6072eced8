package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, IsValidStatus(status), "expected '%s' to be valid", status)
	}
	assert.False(t, IsValidStatus("completed"))
	assert.False(t, IsValidStatus(""))
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "expected '%s' -> '%s' to be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to OrderStatus }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusProcessing},
		{StatusPending, StatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "expected '%s' -> '%s' to be rejected", tc.from, tc.to)
	}
}
