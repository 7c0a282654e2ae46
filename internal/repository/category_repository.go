package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepository handles database operations related to categories.
type CategoryRepository struct {
	documents[models.Category]
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{documents: newDocuments[models.Category](db, "categories", "category")}
}

// EnsureIndexes makes category names unique.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create category index: %w", err)
	}
	return nil
}

// CreateCategory inserts a new category.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	id, err := r.insert(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperrors.Validation("category %q already exists", category.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.ID = id

	logger.Log.WithField("category_id", id.Hex()).Info("Category created successfully")
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return r.findByID(ctx, id)
}

func (r *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	return r.find(ctx, bson.M{}, byName())
}

// GetCategoriesByIDs fetches the categories a user follows.
func (r *CategoryRepository) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, byName())
}

func (r *CategoryRepository) SearchCategories(ctx context.Context, term string) ([]models.Category, error) {
	return r.search(ctx, "name", term, byName())
}

// UpdateCategory renames a category.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, id primitive.ObjectID, name string) (*models.Category, error) {
	category, err := r.updateByID(ctx, id, bson.M{"name": name})
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperrors.Validation("category %q already exists", name)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("category_id", id.Hex()).Info("Category updated successfully")
	return category, nil
}

// DeleteCategory removes a category and returns it.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := r.deleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("category_id", id.Hex()).Info("Category deleted successfully")
	return category, nil
}

func byName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}
