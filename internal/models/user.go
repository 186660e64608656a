package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Alias      string             `bson:"alias,omitempty" json:"alias,omitempty"`
	Details    string             `bson:"details" json:"details" binding:"required"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	City       string             `bson:"city" json:"city" binding:"required"`
	PostalCode string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Slug         string               `bson:"slug,omitempty" json:"slug,omitempty"`
	Email        string               `bson:"email" json:"email"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImage string               `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Password     string               `bson:"password,omitempty" json:"-"`
	Role         string               `bson:"role" json:"role"`
	Provider     string               `bson:"provider" json:"provider"`
	Active       bool                 `bson:"active" json:"active"`
	Wishlist     []primitive.ObjectID `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	Addresses    []Address            `bson:"addresses,omitempty" json:"addresses,omitempty"`

	PasswordChangedAt     *time.Time `bson:"passwordChangedAt,omitempty" json:"-"`
	PasswordResetCode     string     `bson:"passwordResetCode,omitempty" json:"-"`
	PasswordResetExpires  *time.Time `bson:"passwordResetExpires,omitempty" json:"-"`
	PasswordResetVerified *bool      `bson:"passwordResetVerified,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Rôles connus (défaut : user)
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)
