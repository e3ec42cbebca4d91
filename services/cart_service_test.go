package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ileke_server/structs/tables"
)

func TestSubtotal(t *testing.T) {
	cart := &tables.Cart{
		Lines: []*tables.CartLine{
			{UnitPrice: 150000, Quantity: 2},
			{UnitPrice: 80000, Quantity: 1},
		},
	}

	assert.Equal(t, uint64(380000), Subtotal(cart))
	assert.Equal(t, uint64(0), Subtotal(&tables.Cart{}))
}

func TestFindCartLineMatchesProductAndVariant(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()
	otherVariant := uuid.New()

	cart := &tables.Cart{
		Lines: []*tables.CartLine{
			{Id: uuid.New(), ProductId: productID, ProductVariantId: &variantID},
			{Id: uuid.New(), ProductId: productID, ProductVariantId: nil},
		},
	}

	withVariant := findCartLine(cart, productID, &variantID)
	require.NotNil(t, withVariant)
	assert.Equal(t, cart.Lines[0].Id, withVariant.Id)

	noVariant := findCartLine(cart, productID, nil)
	require.NotNil(t, noVariant)
	assert.Equal(t, cart.Lines[1].Id, noVariant.Id)

	// Same product, different variant: no merge
	assert.Nil(t, findCartLine(cart, productID, &otherVariant))
	assert.Nil(t, findCartLine(cart, uuid.New(), &variantID))
}
