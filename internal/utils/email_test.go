package utils

import (
	"strings"
	"testing"

	"souqora_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateOrderConfirmationHTML(t *testing.T) {
	productID := primitive.NewObjectID()
	order := models.Order{
		ID: primitive.NewObjectID(),
		CartItems: []models.CartItem{
			{Product: productID, Quantity: 2, Price: 12.5},
		},
		TotalOrderPrice: 25,
	}

	html := GenerateOrderConfirmationHTML(order, map[string]string{
		productID.Hex(): "Casque Bluetooth",
	})

	assert.Contains(t, html, "Casque Bluetooth")
	assert.Contains(t, html, "12.50€")
	assert.Contains(t, html, "25.00€")
	assert.Contains(t, html, order.ID.Hex())
	// QR de suivi embarqué en data URI
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestGenerateOrderConfirmationHTMLUnknownTitleFallsBack(t *testing.T) {
	productID := primitive.NewObjectID()
	order := models.Order{
		ID:        primitive.NewObjectID(),
		CartItems: []models.CartItem{{Product: productID, Quantity: 1, Price: 5}},
	}

	html := GenerateOrderConfirmationHTML(order, nil)

	assert.True(t, strings.Contains(html, "Produit "+productID.Hex()))
}
