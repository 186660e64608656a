package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecomputeTotalSumsItems(t *testing.T) {
	cart := Cart{CartItems: []CartItem{
		{Product: primitive.NewObjectID(), Quantity: 2, Price: 10},
		{Product: primitive.NewObjectID(), Quantity: 1, Price: 5},
	}}

	cart.RecomputeTotal()

	assert.Equal(t, 25.0, cart.TotalCartPrice)
}

func TestRecomputeTotalDropsDiscount(t *testing.T) {
	discounted := 20.0
	cart := Cart{
		CartItems:               []CartItem{{Quantity: 1, Price: 25}},
		TotalPriceAfterDiscount: &discounted,
	}

	// Toute modification du panier invalide la remise en cours
	cart.RecomputeTotal()

	assert.Nil(t, cart.TotalPriceAfterDiscount)
	assert.Equal(t, 25.0, cart.TotalCartPrice)
}

func TestRecomputeTotalEmptyCart(t *testing.T) {
	cart := Cart{}
	cart.RecomputeTotal()
	assert.Equal(t, 0.0, cart.TotalCartPrice)
}

func TestCouponExpired(t *testing.T) {
	now := time.Now()

	future := Coupon{Expire: now.Add(time.Hour)}
	assert.False(t, future.Expired(now))

	past := Coupon{Expire: now.Add(-time.Hour)}
	assert.True(t, past.Expired(now))

	// Expiration à l'instant exact : le coupon ne passe plus
	exact := Coupon{Expire: now}
	assert.True(t, exact.Expired(now))
}
