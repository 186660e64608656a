package payment

import (
	"testing"

	"souqora_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCartOrderPricePrefersDiscount(t *testing.T) {
	discounted := 20.0
	cart := &models.Cart{
		TotalCartPrice:          25,
		TotalPriceAfterDiscount: &discounted,
	}

	assert.Equal(t, 20.0, cartOrderPrice(cart))
}

func TestCartOrderPriceWithoutDiscount(t *testing.T) {
	cart := &models.Cart{TotalCartPrice: 25}
	assert.Equal(t, 25.0, cartOrderPrice(cart))
}

func TestTaxAndShippingDefaultToZero(t *testing.T) {
	t.Setenv("ORDER_TAX_PRICE", "")
	t.Setenv("ORDER_SHIPPING_PRICE", "")

	assert.Equal(t, 0.0, taxPrice())
	assert.Equal(t, 0.0, shippingPrice())
}

func TestTaxAndShippingFromEnv(t *testing.T) {
	t.Setenv("ORDER_TAX_PRICE", "2.5")
	t.Setenv("ORDER_SHIPPING_PRICE", "4.99")

	assert.Equal(t, 2.5, taxPrice())
	assert.Equal(t, 4.99, shippingPrice())
}
