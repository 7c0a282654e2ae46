package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documents is the plumbing shared by every repository: one collection holding
// documents of type T. Its exported methods satisfy cascade.Collection.
type documents[T any] struct {
	collection *mongo.Collection
	entity     string
}

func newDocuments[T any](db *mongo.Database, name, entity string) documents[T] {
	return documents[T]{collection: db.Collection(name), entity: entity}
}

func (d documents[T]) insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	result, err := d.collection.InsertOne(ctx, doc)
	if err != nil {
		logger.Log.WithError(err).WithField("entity", d.entity).Error("Failed to insert document")
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.WithField("entity", d.entity).Error("Failed to cast inserted ID")
		return primitive.NilObjectID, fmt.Errorf("failed to cast inserted %s id", d.entity)
	}
	return insertedID, nil
}

func (d documents[T]) findByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := d.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(d.entity)
	}
	if err != nil {
		logger.Log.WithError(err).WithField(d.entity+"_id", id.Hex()).Error("Failed to find document by ID")
		return nil, fmt.Errorf("failed to find %s: %w", d.entity, err)
	}
	return &doc, nil
}

func (d documents[T]) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := d.collection.Find(ctx, filter, opts...)
	if err != nil {
		logger.Log.WithError(err).WithField("entity", d.entity).Error("Failed to query documents")
		return nil, fmt.Errorf("failed to fetch %ss: %w", d.entity, err)
	}
	defer cursor.Close(ctx)

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Log.WithError(err).WithField("entity", d.entity).Error("Failed to decode documents")
		return nil, fmt.Errorf("failed to decode %ss: %w", d.entity, err)
	}
	if docs == nil {
		docs = []T{}
	}
	return docs, nil
}

// search runs a case-insensitive substring match of term against field.
func (d documents[T]) search(ctx context.Context, field, term string, opts ...*options.FindOptions) ([]T, error) {
	filter := bson.M{field: bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}}
	return d.find(ctx, filter, opts...)
}

// updateByID applies set and returns the document as it is after the update.
func (d documents[T]) updateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error) {
	if len(set) == 0 {
		return d.findByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := d.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(d.entity)
	}
	if err != nil {
		logger.Log.WithError(err).WithField(d.entity+"_id", id.Hex()).Error("Failed to update document")
		return nil, fmt.Errorf("failed to update %s: %w", d.entity, err)
	}
	return &doc, nil
}

// deleteByID removes the document and returns its last state.
func (d documents[T]) deleteByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var doc T
	err := d.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(d.entity)
	}
	if err != nil {
		logger.Log.WithError(err).WithField(d.entity+"_id", id.Hex()).Error("Failed to delete document")
		return nil, fmt.Errorf("failed to delete %s: %w", d.entity, err)
	}
	return &doc, nil
}

// FindIDs returns the ids of documents whose field holds one of values.
func (d documents[T]) FindIDs(ctx context.Context, field string, values []primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := d.collection.Find(ctx, bson.M{field: bson.M{"$in": values}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s ids: %w", d.entity, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s ids: %w", d.entity, err)
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// DeleteMany removes every document whose field holds one of values.
func (d documents[T]) DeleteMany(ctx context.Context, field string, values []primitive.ObjectID) (int64, error) {
	result, err := d.collection.DeleteMany(ctx, bson.M{field: bson.M{"$in": values}})
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"entity": d.entity,
			"field":  field,
		}).Error("Failed to delete documents")
		return 0, fmt.Errorf("failed to delete %ss: %w", d.entity, err)
	}
	return result.DeletedCount, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "publicationDate", Value: -1}})
}
