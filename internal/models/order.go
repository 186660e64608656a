package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
)

type ShippingAddress struct {
	Details    string `bson:"details,omitempty" json:"details,omitempty"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// Order est une copie figée des items du panier au moment du checkout —
// indépendante des mutations ultérieures du panier ou des produits.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User              primitive.ObjectID `bson:"user" json:"user"`
	CartItems         []CartItem         `bson:"cartItems" json:"cartItems"`
	TaxPrice          float64            `bson:"taxPrice" json:"taxPrice"`
	ShippingPrice     float64            `bson:"shippingPrice" json:"shippingPrice"`
	ShippingAddress   ShippingAddress    `bson:"shippingAddress,omitempty" json:"shippingAddress,omitempty"`
	TotalOrderPrice   float64            `bson:"totalOrderPrice" json:"totalOrderPrice"`
	PaymentMethodType string             `bson:"paymentMethodType" json:"paymentMethodType"`
	IsPaid            bool               `bson:"isPaid" json:"isPaid"`
	PaidAt            *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered       bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt       *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
