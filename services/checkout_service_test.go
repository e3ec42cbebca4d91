package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ileke_server/config"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

func TestCheckoutSessionSealRoundTrip(t *testing.T) {
	chs := &CheckoutService{cfg: config.GetConfig()}

	userID := uuid.New()
	session := &structs.CheckoutSession{
		Email: "ada@example.com",
		Phone: "+2348012345678",
		ShippingAddress: tables.Address{
			FirstName: "Adaeze",
			LastName:  "Okonkwo",
			Line1:     "14 Bode Thomas St",
			City:      "Surulere",
			State:     "Lagos",
			Country:   "NG",
		},
		UserId:         &userID,
		CartId:         uuid.New(),
		CouponCode:     "LAUNCH10",
		SubtotalAmount: 500000,
		DiscountAmount: 50000,
		ShippingAmount: 200000,
		TotalAmount:    650000,
	}

	sealed, err := chs.EncodeSession(session)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "ada@example.com")

	opened, err := chs.DecodeSession(sealed)
	require.NoError(t, err)
	assert.Equal(t, session, opened)
}

func TestDecodeSessionRejectsTamperedValue(t *testing.T) {
	chs := &CheckoutService{cfg: config.GetConfig()}

	sealed, err := chs.EncodeSession(&structs.CheckoutSession{CartId: uuid.New()})
	require.NoError(t, err)

	tampered := []byte(sealed)
	tampered[len(tampered)/2] ^= 0x01

	_, err = chs.DecodeSession(string(tampered))
	assert.Error(t, err)

	_, err = chs.DecodeSession("garbage")
	assert.Error(t, err)
}

func TestQuoteSessionSealRoundTrip(t *testing.T) {
	cos := &CustomOrderService{cfg: config.GetConfig()}

	session := &structs.QuoteSession{
		QuoteId:      uuid.New(),
		RequestId:    uuid.New(),
		TokenHash:    "abc123",
		Email:        "ada@example.com",
		CustomerName: "Adaeze Okonkwo",
		Amount:       4500000,
		CurrencyCode: "NGN",
	}

	sealed, err := cos.EncodeQuoteSession(session)
	require.NoError(t, err)

	opened, err := cos.DecodeQuoteSession(sealed)
	require.NoError(t, err)
	assert.Equal(t, session, opened)
}

func TestOrderItemsSnapshotRepricedSessionLines(t *testing.T) {
	// A catalog price change between add-to-cart and initialize must land in
	// the order items: they freeze the session's repriced lines, so line
	// totals always sum to the subtotal the customer was charged.
	variantID := uuid.New()
	lines := []structs.CheckoutSessionLine{
		{ProductId: uuid.New(), Quantity: 2, UnitPrice: 1250000},
		{ProductId: uuid.New(), ProductVariantId: &variantID, Quantity: 1, UnitPrice: 3200000},
	}

	subtotal := SessionSubtotal(lines)
	assert.Equal(t, uint64(2*1250000+3200000), subtotal)

	orderID := uuid.New()
	var itemTotal uint64
	for _, line := range lines {
		item := snapshotSessionLine(orderID, line, "NGN")
		assert.Equal(t, line.UnitPrice, item.UnitPrice)
		assert.Equal(t, line.UnitPrice*uint64(line.Quantity), item.LineTotal)
		assert.Equal(t, line.ProductVariantId, item.ProductVariantId)
		itemTotal += item.LineTotal
	}
	assert.Equal(t, subtotal, itemTotal)

	// A stale cart price plays no part in the snapshot
	staleCartPrice := uint64(1000000)
	item := snapshotSessionLine(orderID, lines[0], "NGN")
	assert.NotEqual(t, staleCartPrice, item.UnitPrice)
}

func TestSessionSubtotalEmpty(t *testing.T) {
	assert.Zero(t, SessionSubtotal(nil))
}
