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

func Users() *Collection[models.User] {
	return NewCollection(database.Users, "User", ApplyUserImageURL)
}

// ApplyUserImageURL préfixe l'image de profil par l'URL publique
func ApplyUserImageURL(u *models.User) {
	u.ProfileImage = publicImageURL("users", u.ProfileImage)
}

func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun utilisateur avec cet email")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun utilisateur avec cet id " + userID.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Wishlist : ajout/retrait atomiques sur le document utilisateur ---

func AddToWishlist(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	return updateUser(ctx, userID, bson.M{"$addToSet": bson.M{"wishlist": productID}})
}

func RemoveFromWishlist(ctx context.Context, userID, productID primitive.ObjectID) (*models.User, error) {
	return updateUser(ctx, userID, bson.M{"$pull": bson.M{"wishlist": productID}})
}

// --- Adresses : tableau embarqué dans le document utilisateur ---

func AddAddress(ctx context.Context, userID primitive.ObjectID, address models.Address) (*models.User, error) {
	address.ID = primitive.NewObjectID()
	return updateUser(ctx, userID, bson.M{"$push": bson.M{"addresses": address}})
}

func RemoveAddress(ctx context.Context, userID primitive.ObjectID, addressID string) (*models.User, error) {
	oid, err := ParseID(addressID)
	if err != nil {
		return nil, err
	}
	return updateUser(ctx, userID, bson.M{"$pull": bson.M{"addresses": bson.M{"_id": oid}}})
}

func updateUser(ctx context.Context, userID primitive.ObjectID, update bson.M) (*models.User, error) {
	if set, ok := update["$set"].(bson.M); ok {
		set["updatedAt"] = time.Now()
	}

	var user models.User
	err := database.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apierror.NotFound("Aucun utilisateur avec cet id " + userID.Hex())
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
