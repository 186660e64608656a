package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"
)

// FindCartByUser retourne le panier actif de l'utilisateur, NotFound sinon
func FindCartByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := database.Carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun panier pour cet utilisateur")
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func FindCartByID(ctx context.Context, cartID string) (*models.Cart, error) {
	oid, err := ParseID(cartID)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	err = database.Carts.FindOne(ctx, bson.M{"_id": oid}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun panier avec cet id " + cartID)
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func CreateCart(ctx context.Context, cart *models.Cart) error {
	now := time.Now()
	cart.ID = primitive.NewObjectID()
	cart.CreatedAt = now
	cart.UpdatedAt = now

	_, err := database.Carts.InsertOne(ctx, cart)
	if mongo.IsDuplicateKeyError(err) {
		return apierror.Conflict("Un panier existe déjà pour cet utilisateur")
	}
	return err
}

// SaveCart persiste les items et les totaux recalculés du panier
func SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	set := bson.M{
		"cartItems":      cart.CartItems,
		"totalCartPrice": cart.TotalCartPrice,
		"updatedAt":      cart.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if cart.TotalPriceAfterDiscount != nil {
		set["totalPriceAfterDiscount"] = *cart.TotalPriceAfterDiscount
	} else {
		update["$unset"] = bson.M{"totalPriceAfterDiscount": ""}
	}

	res, err := database.Carts.UpdateOne(ctx, bson.M{"_id": cart.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierror.NotFound("Aucun panier avec cet id " + cart.ID.Hex())
	}
	return nil
}

// PullCartItem retire atomiquement un item ($pull) et retourne le panier
// résultant, dont les totaux restent à recalculer par l'appelant
func PullCartItem(ctx context.Context, userID primitive.ObjectID, itemID string) (*models.Cart, error) {
	oid, err := ParseID(itemID)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	err = database.Carts.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{"cartItems": bson.M{"_id": oid}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun panier pour cet utilisateur")
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// DeleteCartByUser supprime le panier de l'utilisateur. Idempotent :
// l'absence de panier n'est pas une erreur.
func DeleteCartByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := database.Carts.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

func DeleteCartByID(ctx context.Context, cartID primitive.ObjectID) error {
	_, err := database.Carts.DeleteOne(ctx, bson.M{"_id": cartID})
	return err
}
