package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

func Orders() *Collection[models.Order] {
	return NewCollection[models.Order](database.Orders, "Order", nil)
}

// CreateOrder fige les items du panier dans une nouvelle commande
func CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	now := time.Now()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := database.Orders.InsertOne(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkOrderPaid bascule le drapeau payé et horodate
func MarkOrderPaid(ctx context.Context, orderID string) (*models.Order, error) {
	now := time.Now()
	return Orders().UpdateByID(ctx, orderID, bson.M{
		"isPaid":    true,
		"paidAt":    now,
		"updatedAt": now,
	})
}

// MarkOrderDelivered bascule le drapeau livré et horodate
func MarkOrderDelivered(ctx context.Context, orderID string) (*models.Order, error) {
	now := time.Now()
	return Orders().UpdateByID(ctx, orderID, bson.M{
		"isDelivered": true,
		"deliveredAt": now,
		"updatedAt":   now,
	})
}
