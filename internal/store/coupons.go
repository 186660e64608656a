package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

func Coupons() *Collection[models.Coupon] {
	return NewCollection[models.Coupon](database.Coupons, "Coupon", nil)
}

// FindValidCoupon cherche un coupon non expiré par nom exact (insensible à la
// casse : les noms sont stockés en majuscules). Absent ou expiré → NotFound.
func FindValidCoupon(ctx context.Context, name string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := database.Coupons.FindOne(ctx, bson.M{
		"name":   strings.ToUpper(name),
		"expire": bson.M{"$gt": time.Now()},
	}).Decode(&coupon)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Ce coupon est invalide ou expiré")
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
