package cache

import (
	"context"
	"encoding/json"
	"time"

	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis ou MongoDB
func GetUserFromCache(userID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer depuis MongoDB
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return &user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "user:"+userID)
}

// GetProductTitlesFromCache récupère les titres de plusieurs produits,
// Redis d'abord puis MongoDB pour les manquants
func GetProductTitlesFromCache(productIDs []primitive.ObjectID) map[string]string {
	ctx := context.Background()
	result := make(map[string]string)
	missing := []primitive.ObjectID{}

	for _, id := range productIDs {
		key := "product_title:" + id.Hex()
		title, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			result[id.Hex()] = title
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		cursor, err := database.Products.Find(ctx,
			bson.M{"_id": bson.M{"$in": missing}},
			options.Find().SetProjection(bson.M{"title": 1}))
		if err == nil {
			var docs []struct {
				ID    primitive.ObjectID `bson:"_id"`
				Title string             `bson:"title"`
			}
			if cursor.All(ctx, &docs) == nil {
				for _, d := range docs {
					result[d.ID.Hex()] = d.Title
					database.Redis.Set(ctx, "product_title:"+d.ID.Hex(), d.Title, ProductCacheTTL)
				}
			}
		}
	}

	return result
}

// InvalidateProductCache invalide le cache d'un produit
func InvalidateProductCache(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID, "product_title:"+productID)
}
