package store

import (
	"context"
	"testing"
	"time"

	"souqora_back_end/internal/apierror"
	"souqora_back_end/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindValidCouponExpiredIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("coupon expiré", func(mt *mtest.T) {
		prev := database.Coupons
		defer func() { database.Coupons = prev }()
		database.Coupons = mt.Coll

		// Le filtre expire > maintenant exclut le coupon : curseur vide
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := FindValidCoupon(context.Background(), "promo10")

		require.Error(mt, err)
		assert.True(mt, apierror.IsNotFound(err))

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		filter := events[0].Command.Lookup("filter")

		name, ok := filter.Document().Lookup("name").StringValueOK()
		require.True(mt, ok)
		assert.Equal(mt, "PROMO10", name)

		_, ok = filter.Document().Lookup("expire", "$gt").TimeOK()
		assert.True(mt, ok)
	})
}

func TestFindValidCouponReturnsMatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("coupon valide", func(mt *mtest.T) {
		prev := database.Coupons
		defer func() { database.Coupons = prev }()
		database.Coupons = mt.Coll

		expire := time.Now().Add(24 * time.Hour)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "PROMO10"},
			{Key: "expire", Value: primitive.NewDateTimeFromTime(expire)},
			{Key: "discount", Value: 10.0},
		}))

		coupon, err := FindValidCoupon(context.Background(), "promo10")

		require.NoError(mt, err)
		assert.Equal(mt, "PROMO10", coupon.Name)
		assert.Equal(mt, 10.0, coupon.Discount)
	})
}
