package store

import (
	"context"
	"testing"

	"souqora_back_end/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDeleteCartByUserIsIdempotent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("panier absent", func(mt *mtest.T) {
		prev := database.Carts
		defer func() { database.Carts = prev }()
		database.Carts = mt.Coll

		// Aucun document supprimé : pas une erreur
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := DeleteCartByUser(context.Background(), primitive.NewObjectID())

		assert.NoError(mt, err)
	})
}

func TestDeleteCartByIDRemovesCheckedOutCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("panier consommé par le checkout", func(mt *mtest.T) {
		prev := database.Carts
		defer func() { database.Carts = prev }()
		database.Carts = mt.Coll

		cartID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := DeleteCartByID(context.Background(), cartID)

		require.NoError(mt, err)
		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)

		deletes := events[0].Command.Lookup("deletes").Array().Index(0).Value().Document()
		oid, ok := deletes.Lookup("q", "_id").ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, cartID, oid)
	})
}
