package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ileke_server/structs/tables"
)

func TestComputeDiscountPercentage(t *testing.T) {
	coupon := &tables.Coupon{
		DiscountType:  tables.DiscountTypePercentage,
		DiscountValue: 10,
	}

	assert.Equal(t, uint64(50000), ComputeDiscount(coupon, 500000))
	assert.Equal(t, uint64(0), ComputeDiscount(coupon, 0))

	// 100% takes the whole cart, never more
	coupon.DiscountValue = 100
	assert.Equal(t, uint64(500000), ComputeDiscount(coupon, 500000))
}

func TestComputeDiscountFixed(t *testing.T) {
	coupon := &tables.Coupon{
		DiscountType:  tables.DiscountTypeFixed,
		DiscountValue: 200000, // ₦2,000
	}

	assert.Equal(t, uint64(200000), ComputeDiscount(coupon, 500000))
}

func TestComputeDiscountCappedAtCartTotal(t *testing.T) {
	coupon := &tables.Coupon{
		DiscountType:  tables.DiscountTypeFixed,
		DiscountValue: 1000000,
	}

	// A fixed coupon larger than the cart cannot push the order negative.
	assert.Equal(t, uint64(300000), ComputeDiscount(coupon, 300000))
}

func TestComputeDiscountUnknownTypeGivesNothing(t *testing.T) {
	coupon := &tables.Coupon{
		DiscountType:  tables.DiscountType("mystery"),
		DiscountValue: 50,
	}

	assert.Equal(t, uint64(0), ComputeDiscount(coupon, 500000))
}
