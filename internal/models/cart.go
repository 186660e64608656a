package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem référence un produit avec sa couleur choisie, sa quantité et le
// prix figé au moment de l'ajout au panier.
type CartItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// Cart — un seul panier actif par utilisateur. TotalCartPrice est toujours
// recalculé depuis les items avant lecture ou persistance, jamais relu tel quel.
type Cart struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User                    primitive.ObjectID `bson:"user" json:"user"`
	CartItems               []CartItem         `bson:"cartItems" json:"cartItems"`
	TotalCartPrice          float64            `bson:"totalCartPrice" json:"totalCartPrice"`
	TotalPriceAfterDiscount *float64           `bson:"totalPriceAfterDiscount,omitempty" json:"totalPriceAfterDiscount,omitempty"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecomputeTotal recalcule le total depuis les items et annule toute remise
// appliquée : un panier modifié doit repasser par le coupon.
func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, item := range c.CartItems {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalCartPrice = total
	c.TotalPriceAfterDiscount = nil
}
