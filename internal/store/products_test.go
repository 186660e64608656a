package store

import (
	"context"
	"net/http"
	"testing"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"
	"souqora_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStockFilterGuardsAgainstOverselling(t *testing.T) {
	productID := primitive.NewObjectID()
	item := models.CartItem{Product: productID, Quantity: 3}

	filter := stockFilter(item)

	assert.Equal(t, productID, filter["_id"])
	// Le match exige quantity >= demandé : jamais de stock négatif
	assert.Equal(t, bson.M{"$gte": 3}, filter["quantity"])
}

func TestStockUpdateMovesQuantityToSold(t *testing.T) {
	item := models.CartItem{Product: primitive.NewObjectID(), Quantity: 3}

	update := stockUpdate(item)

	inc, ok := update["$inc"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, -3, inc["quantity"])
	assert.Equal(t, 3, inc["sold"])
}

func TestStockRollbackInvertsUpdate(t *testing.T) {
	item := models.CartItem{Product: primitive.NewObjectID(), Quantity: 2}

	update := stockUpdate(item)
	rollback := stockRollback(item)

	inc := update["$inc"].(bson.M)
	back := rollback["$inc"].(bson.M)
	assert.Equal(t, -(inc["quantity"].(int)), back["quantity"].(int))
	assert.Equal(t, -(inc["sold"].(int)), back["sold"].(int))
}

func updateApplied() bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 1},
		bson.E{Key: "nModified", Value: 1},
	)
}

func updateUnmatched() bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: 0},
		bson.E{Key: "nModified", Value: 0},
	)
}

func TestAdjustStockAppliesEveryItem(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stock couvert", func(mt *mtest.T) {
		prev := database.Products
		defer func() { database.Products = prev }()
		database.Products = mt.Coll

		items := []models.CartItem{
			{Product: primitive.NewObjectID(), Quantity: 3},
			{Product: primitive.NewObjectID(), Quantity: 1},
		}
		mt.AddMockResponses(updateApplied(), updateApplied())

		err := AdjustStock(context.Background(), items)

		require.NoError(mt, err)
		assert.Len(mt, mt.GetAllStartedEvents(), 2)
	})
}

func TestAdjustStockInsufficientStockCompensates(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stock insuffisant sur le second item", func(mt *mtest.T) {
		prev := database.Products
		defer func() { database.Products = prev }()
		database.Products = mt.Coll

		first := models.CartItem{Product: primitive.NewObjectID(), Quantity: 2}
		second := models.CartItem{Product: primitive.NewObjectID(), Quantity: 3}

		// La garde quantity >= demandé ne matche pas le second item ;
		// le premier, déjà décrémenté, doit être ré-incrémenté
		mt.AddMockResponses(updateApplied(), updateUnmatched(), updateApplied())

		err := AdjustStock(context.Background(), []models.CartItem{first, second})

		require.Error(mt, err)
		assert.Equal(mt, http.StatusBadRequest, apierror.StatusOf(err))
		assert.Contains(mt, err.Error(), "Stock insuffisant")
		assert.Contains(mt, err.Error(), second.Product.Hex())

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 3)

		compensation := events[2].Command.Lookup("updates").Array().Index(0).Value().Document()
		oid, ok := compensation.Lookup("q", "_id").ObjectIDOK()
		require.True(mt, ok)
		assert.Equal(mt, first.Product, oid)

		qty, ok := compensation.Lookup("u", "$inc", "quantity").AsInt64OK()
		require.True(mt, ok)
		assert.Equal(mt, int64(first.Quantity), qty)

		sold, ok := compensation.Lookup("u", "$inc", "sold").AsInt64OK()
		require.True(mt, ok)
		assert.Equal(mt, int64(-first.Quantity), sold)
	})
}

func TestRestoreStockReincrementsEveryItem(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("compensation après échec aval", func(mt *mtest.T) {
		prev := database.Products
		defer func() { database.Products = prev }()
		database.Products = mt.Coll

		items := []models.CartItem{
			{Product: primitive.NewObjectID(), Quantity: 2},
			{Product: primitive.NewObjectID(), Quantity: 5},
		}
		mt.AddMockResponses(updateApplied(), updateApplied())

		RestoreStock(context.Background(), items)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 2)
		for i, ev := range events {
			update := ev.Command.Lookup("updates").Array().Index(0).Value().Document()
			qty, ok := update.Lookup("u", "$inc", "quantity").AsInt64OK()
			require.True(mt, ok)
			assert.Equal(mt, int64(items[i].Quantity), qty)
		}
	})
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ParseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)

	_, err = ParseID("pas-un-objectid")
	assert.Error(t, err)
}
