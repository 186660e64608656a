package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title              string               `bson:"title" json:"title" binding:"required,min=3,max=100"`
	Slug               string               `bson:"slug" json:"slug"`
	Description        string               `bson:"description" json:"description" binding:"required,min=20"`
	Quantity           int                  `bson:"quantity" json:"quantity"`
	Sold               int                  `bson:"sold" json:"sold"`
	Price              float64              `bson:"price" json:"price" binding:"required,gt=0,max=20000"`
	PriceAfterDiscount *float64             `bson:"priceAfterDiscount,omitempty" json:"priceAfterDiscount,omitempty"`
	Colors             []string             `bson:"colors,omitempty" json:"colors,omitempty"`
	ImageCover         string               `bson:"imageCover" json:"imageCover"`
	Images             []string             `bson:"images,omitempty" json:"images,omitempty"`
	Category           primitive.ObjectID   `bson:"category" json:"category" binding:"required"`
	Subcategories      []primitive.ObjectID `bson:"subcategories,omitempty" json:"subcategories,omitempty"`
	Brand              *primitive.ObjectID  `bson:"brand,omitempty" json:"brand,omitempty"`
	RatingsAverage     float64              `bson:"ratingsAverage,omitempty" json:"ratingsAverage,omitempty"`
	RatingsQuantity    int                  `bson:"ratingsQuantity" json:"ratingsQuantity"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}
