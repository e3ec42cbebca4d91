package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ileke_server/structs/tables"
)

func TestIsLagosState(t *testing.T) {
	assert.True(t, IsLagosState("Lagos"))
	assert.True(t, IsLagosState("lagos"))
	assert.True(t, IsLagosState("  LAGOS  "))
	assert.False(t, IsLagosState("Ogun"))
	assert.False(t, IsLagosState(""))
}

func TestEstimateArrivalLeadTimes(t *testing.T) {
	from := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status tables.DeliveryStatus
		state  string
		days   int
	}{
		{"production is state independent", tables.DeliveryStatusProduction, "Lagos", 7},
		{"production outside lagos", tables.DeliveryStatusProduction, "Kano", 7},
		{"sorting within lagos", tables.DeliveryStatusSorting, "Lagos", 3},
		{"sorting outside lagos", tables.DeliveryStatusSorting, "Rivers", 5},
		{"dispatch within lagos", tables.DeliveryStatusDispatch, "lagos", 1},
		{"dispatch outside lagos", tables.DeliveryStatusDispatch, "Abuja", 2},
		{"unknown status falls back", tables.DeliveryStatus("mystery"), "Lagos", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arrival := EstimateArrival(tt.status, from, tt.state)
			require.NotNil(t, arrival)
			assert.Equal(t, from.AddDate(0, 0, tt.days), *arrival)
			assert.True(t, arrival.After(from))
		})
	}
}

func TestEstimateArrivalNoEstimateForTerminalStages(t *testing.T) {
	from := time.Now()

	for _, status := range []tables.DeliveryStatus{
		tables.DeliveryStatusPaused,
		tables.DeliveryStatusCompleted,
		tables.DeliveryStatusCancelled,
	} {
		assert.Nil(t, EstimateArrival(status, from, "Lagos"), string(status))
	}
}

func TestEstimateArrivalLagosNeverSlowerThanInterstate(t *testing.T) {
	from := time.Now()

	for _, status := range []tables.DeliveryStatus{
		tables.DeliveryStatusProduction,
		tables.DeliveryStatusSorting,
		tables.DeliveryStatusDispatch,
	} {
		lagos := EstimateArrival(status, from, "Lagos")
		other := EstimateArrival(status, from, "Enugu")
		require.NotNil(t, lagos)
		require.NotNil(t, other)
		assert.False(t, lagos.After(*other), string(status))
	}
}

func TestDeliveryProgress(t *testing.T) {
	assert.Equal(t, 25, DeliveryProgress(tables.DeliveryStatusProduction))
	assert.Equal(t, 55, DeliveryProgress(tables.DeliveryStatusSorting))
	assert.Equal(t, 80, DeliveryProgress(tables.DeliveryStatusDispatch))
	assert.Equal(t, 100, DeliveryProgress(tables.DeliveryStatusCompleted))
	assert.Equal(t, 0, DeliveryProgress(tables.DeliveryStatusPaused))
}
