package store

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

func Reviews() *Collection[models.Review] {
	return NewCollection[models.Review](database.Reviews, "Review", nil)
}

// HasReview indique si l'utilisateur a déjà noté ce produit
func HasReview(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	count, err := database.Reviews.CountDocuments(ctx, bson.M{
		"user":    userID,
		"product": productID,
	})
	return count > 0, err
}

// SyncProductRatings recalcule la moyenne et le nombre d'avis d'un produit et
// les écrit sur le document produit. Invoquée explicitement par les handlers
// après chaque création/mise à jour/suppression d'avis — remplace le hook
// post-save du schéma d'origine.
func SyncProductRatings(ctx context.Context, productID primitive.ObjectID) error {
	cursor, err := database.Reviews.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"product": productID}},
		bson.M{"$group": bson.M{
			"_id":             "$product",
			"ratingsAverage":  bson.M{"$avg": "$ratings"},
			"ratingsQuantity": bson.M{"$sum": 1},
		}},
	})
	if err != nil {
		return err
	}

	var results []struct {
		RatingsAverage  float64 `bson:"ratingsAverage"`
		RatingsQuantity int     `bson:"ratingsQuantity"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return err
	}

	set := bson.M{"ratingsAverage": 0.0, "ratingsQuantity": 0}
	if len(results) > 0 {
		set["ratingsAverage"] = results[0].RatingsAverage
		set["ratingsQuantity"] = results[0].RatingsQuantity
	}

	_, err = database.Products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": set})
	if err != nil {
		log.Printf("⚠️ Erreur synchronisation notes produit %s: %v", productID.Hex(), err)
	}
	return err
}
