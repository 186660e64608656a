package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon — réduction en pourcentage, limitée dans le temps. Le nom est
// unique (index) et stocké en majuscules.
type Coupon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Expire    time.Time          `bson:"expire" json:"expire" binding:"required"`
	Discount  float64            `bson:"discount" json:"discount" binding:"required,gt=0,lte=100"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Expired indique si le coupon n'est plus utilisable à l'instant t
func (c Coupon) Expired(t time.Time) bool {
	return !t.Before(c.Expire)
}
