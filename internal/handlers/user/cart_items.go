package user

import (
	"souqora_back_end/internal/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// upsertCartItem ajoute le produit avec quantité 1, ou incrémente l'item
// existant pour le même couple (produit, couleur)
func upsertCartItem(items []models.CartItem, productID primitive.ObjectID, color string, price float64) []models.CartItem {
	for i := range items {
		if items[i].Product == productID && items[i].Color == color {
			items[i].Quantity++
			return items
		}
	}
	return append(items, models.CartItem{
		ID:       primitive.NewObjectID(),
		Product:  productID,
		Color:    color,
		Quantity: 1,
		Price:    price,
	})
}

// discountedTotal applique une remise en pourcentage, arrondie à 2 décimales
func discountedTotal(total, discount float64) float64 {
	result, _ := decimal.NewFromFloat(total).
		Mul(decimal.NewFromFloat(1).Sub(decimal.NewFromFloat(discount).Div(decimal.NewFromInt(100)))).
		Round(2).
		Float64()
	return result
}
