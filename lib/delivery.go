package lib

import (
	"strings"
	"time"

	"ileke_server/structs/tables"
)

// Every pair is handmade to order, so the estimate is driven by the
// fulfillment stage, not a courier SLA. Lagos deliveries dispatch from the
// workshop directly; everything else goes through interstate logistics.
const (
	productionLeadDays    = 7
	sortingLeadDaysLagos  = 3
	sortingLeadDaysOther  = 5
	dispatchLeadDaysLagos = 1
	dispatchLeadDaysOther = 2
	defaultFallbackDays   = 7
)

// IsLagosState reports whether a shipping state resolves to Lagos.
func IsLagosState(state string) bool {
	return strings.EqualFold(strings.TrimSpace(state), "lagos")
}

// EstimateArrival computes the estimated arrival date for an order given its
// delivery status, the reference date (order placement or last status change),
// and the shipping state. Returns nil for terminal or paused statuses, where
// no estimate is meaningful.
func EstimateArrival(status tables.DeliveryStatus, from time.Time, state string) *time.Time {
	lagos := IsLagosState(state)

	var days int
	switch status {
	case tables.DeliveryStatusProduction:
		days = productionLeadDays
	case tables.DeliveryStatusSorting:
		if lagos {
			days = sortingLeadDaysLagos
		} else {
			days = sortingLeadDaysOther
		}
	case tables.DeliveryStatusDispatch:
		if lagos {
			days = dispatchLeadDaysLagos
		} else {
			days = dispatchLeadDaysOther
		}
	case tables.DeliveryStatusPaused, tables.DeliveryStatusCompleted, tables.DeliveryStatusCancelled:
		return nil
	default:
		days = defaultFallbackDays
	}

	arrival := from.AddDate(0, 0, days)
	return &arrival
}

// DeliveryStatusDescription returns the customer-facing copy for a stage.
func DeliveryStatusDescription(status tables.DeliveryStatus) string {
	switch status {
	case tables.DeliveryStatusProduction:
		return "Your order is being handcrafted in our workshop."
	case tables.DeliveryStatusSorting:
		return "Your order is finished and being prepared for dispatch."
	case tables.DeliveryStatusDispatch:
		return "Your order is on its way to you."
	case tables.DeliveryStatusPaused:
		return "Your order is temporarily on hold. We will be in touch."
	case tables.DeliveryStatusCompleted:
		return "Your order has been delivered."
	case tables.DeliveryStatusCancelled:
		return "This order has been cancelled."
	default:
		return "Your order is being processed."
	}
}

// DeliveryProgress maps a stage to a 0-100 progress value for tracking UI.
func DeliveryProgress(status tables.DeliveryStatus) int {
	switch status {
	case tables.DeliveryStatusProduction:
		return 25
	case tables.DeliveryStatusSorting:
		return 55
	case tables.DeliveryStatusDispatch:
		return 80
	case tables.DeliveryStatusCompleted:
		return 100
	default:
		return 0
	}
}
