package user

import (
	"testing"

	"souqora_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertCartItemAddsWithQuantityOne(t *testing.T) {
	productID := primitive.NewObjectID()

	items := upsertCartItem(nil, productID, "rouge", 25)

	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].Product)
	assert.Equal(t, "rouge", items[0].Color)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 25.0, items[0].Price)
	assert.False(t, items[0].ID.IsZero())
}

func TestUpsertCartItemMergesSameProductAndColor(t *testing.T) {
	productID := primitive.NewObjectID()

	items := upsertCartItem(nil, productID, "rouge", 25)
	items = upsertCartItem(items, productID, "rouge", 25)

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestUpsertCartItemDifferentColorIsNewLine(t *testing.T) {
	productID := primitive.NewObjectID()

	items := upsertCartItem(nil, productID, "rouge", 25)
	items = upsertCartItem(items, productID, "bleu", 25)

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestUpsertThenRecomputeTotal(t *testing.T) {
	productID := primitive.NewObjectID()

	cart := models.Cart{CartItems: upsertCartItem(nil, productID, "", 12.5)}
	cart.CartItems = upsertCartItem(cart.CartItems, productID, "", 12.5)
	cart.RecomputeTotal()

	assert.Equal(t, 25.0, cart.TotalCartPrice)
}

func TestDiscountedTotalRoundsToTwoDecimals(t *testing.T) {
	// 25 − 20 % = 20.00
	assert.Equal(t, 20.0, discountedTotal(25, 20))

	// 99.99 − 15 % = 84.9915 → 84.99
	assert.Equal(t, 84.99, discountedTotal(99.99, 15))

	// 10 − 33 % = 6.70 (et non 6.7000000000000002)
	assert.Equal(t, 6.7, discountedTotal(10, 33))
}

func TestDiscountedTotalFullDiscount(t *testing.T) {
	assert.Equal(t, 0.0, discountedTotal(50, 100))
}
