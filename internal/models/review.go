package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review — un seul avis par couple (user, product), garanti par index unique.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Ratings   float64            `bson:"ratings" json:"ratings" binding:"required,min=1,max=5"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
