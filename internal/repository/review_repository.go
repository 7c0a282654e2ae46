package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository handles database operations related to reviews.
type ReviewRepository struct {
	documents[models.Review]
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{documents: newDocuments[models.Review](db, "reviews", "review")}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	id, err := r.insert(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	review.ID = id

	logger.Log.WithFields(map[string]interface{}{
		"review_id": id.Hex(),
		"author":    review.Author.Hex(),
	}).Info("Review created successfully")
	return review, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.findByID(ctx, id)
}

// GetReviews lists reviews filtered by any combination of author, category and rating.
func (r *ReviewRepository) GetReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	query := bson.M{}
	if filter.Author != nil {
		query["author"] = *filter.Author
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	if filter.Rating != nil {
		query["rating"] = *filter.Rating
	}
	return r.find(ctx, query, newestFirst())
}

func (r *ReviewRepository) SearchReviews(ctx context.Context, term string) ([]models.Review, error) {
	return r.search(ctx, "header", term, newestFirst())
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id primitive.ObjectID, patch models.ReviewPatch) (*models.Review, error) {
	set := bson.M{}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Header != nil {
		set["header"] = *patch.Header
	}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Filename != nil {
		set["filename"] = *patch.Filename
	}

	review, err := r.updateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("review_id", id.Hex()).Info("Review updated successfully")
	return review, nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := r.deleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("review_id", id.Hex()).Info("Review deleted successfully")
	return review, nil
}
