package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestOfferRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create assigns the inserted id", func(mt *mtest.T) {
		repo := NewOfferRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		offer, err := repo.CreateOffer(ctx, &models.Offer{Author: primitive.NewObjectID(), Header: "Bike", Text: "Red"})
		require.NoError(mt, err)
		assert.False(mt, offer.ID.IsZero())
	})

	mt.Run("get by id decodes the document", func(mt *mtest.T) {
		repo := NewOfferRepository(mt.DB)
		id := primitive.NewObjectID()
		author := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.offers", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "author", Value: author},
			{Key: "header", Value: "Bike"},
			{Key: "text", Value: "Red"},
		}))

		offer, err := repo.GetOfferByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, offer.ID)
		assert.Equal(mt, author, offer.Author)
		assert.Equal(mt, "Bike", offer.Header)
	})

	mt.Run("get by id maps a miss to not found", func(mt *mtest.T) {
		repo := NewOfferRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.offers", mtest.FirstBatch))

		_, err := repo.GetOfferByID(ctx, primitive.NewObjectID())
		assert.True(mt, apperrors.Is(err, apperrors.KindNotFound))
	})

	mt.Run("search quotes the term and ignores case", func(mt *mtest.T) {
		repo := NewOfferRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.offers", mtest.FirstBatch))

		offers, err := repo.SearchOffers(ctx, "a+b")
		require.NoError(mt, err)
		assert.NotNil(mt, offers)
		assert.Empty(mt, offers)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		header := started.Command.Lookup("filter", "header")
		assert.Equal(mt, `a\+b`, header.Document().Lookup("$regex").StringValue())
		assert.Equal(mt, "i", header.Document().Lookup("$options").StringValue())
	})

	mt.Run("delete returns the removed document", func(mt *mtest.T) {
		repo := NewOfferRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "header", Value: "Bike"},
			{Key: "deletionDate", Value: time.Now()},
		}}))

		offer, err := repo.DeleteOffer(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, id, offer.ID)
	})
}

func TestCategoryRepositoryDuplicateName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key becomes a validation error", func(mt *mtest.T) {
		repo := NewCategoryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.CreateCategory(context.Background(), &models.Category{Name: "Bikes"})
		assert.True(mt, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestCascadeCollectionMethods(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find ids", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.comments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}},
			bson.D{{Key: "_id", Value: b}},
		))

		ids, err := repo.FindIDs(ctx, "author", []primitive.ObjectID{primitive.NewObjectID()})
		require.NoError(mt, err)
		assert.Equal(mt, []primitive.ObjectID{a, b}, ids)
	})

	mt.Run("delete many reports the count", func(mt *mtest.T) {
		repo := NewCommentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))

		n, err := repo.DeleteMany(ctx, "post.id", []primitive.ObjectID{primitive.NewObjectID()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestNotificationRepositoryCreateMany(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ids are assigned per receiver", func(mt *mtest.T) {
		repo := NewNotificationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		notifs, err := repo.CreateNotifications(context.Background(), []models.Notification{
			{Receiver: primitive.NewObjectID(), Text: "hi"},
			{Receiver: primitive.NewObjectID(), Text: "hi"},
		})
		require.NoError(mt, err)
		require.Len(mt, notifs, 2)
		assert.False(mt, notifs[0].ID.IsZero())
		assert.NotEqual(mt, notifs[0].ID, notifs[1].ID)
	})
}
