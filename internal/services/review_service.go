package services

import (
	"context"
	"strings"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/access"
	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	repo       ReviewStore
	categories CategoryStore
	tx         Transactor
	cascader   Cascader
	now        func() time.Time
}

func NewReviewService(repo ReviewStore, categories CategoryStore, tx Transactor, cascader Cascader) *ReviewService {
	return &ReviewService{repo: repo, categories: categories, tx: tx, cascader: cascader, now: time.Now}
}

func (s *ReviewService) GetReviews(ctx context.Context) ([]models.Review, error) {
	return s.repo.GetReviews(ctx, models.ReviewFilter{})
}

func (s *ReviewService) GetReview(ctx context.Context, id string) (*models.Review, error) {
	objID, err := parseID("review", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetReviewByID(ctx, objID)
}

func (s *ReviewService) SearchReviews(ctx context.Context, term string) ([]models.Review, error) {
	return s.repo.SearchReviews(ctx, term)
}

func (s *ReviewService) GetReviewsByCategory(ctx context.Context, categoryID string) ([]models.Review, error) {
	objID, err := parseID("category", categoryID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetReviews(ctx, models.ReviewFilter{Category: &objID})
}

func (s *ReviewService) GetReviewsByAuthor(ctx context.Context, authorID string) ([]models.Review, error) {
	objID, err := parseID("author", authorID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetReviews(ctx, models.ReviewFilter{Author: &objID})
}

func (s *ReviewService) GetReviewsByRating(ctx context.Context, rating int) ([]models.Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	return s.repo.GetReviews(ctx, models.ReviewFilter{Rating: &rating})
}

func (s *ReviewService) CreateReview(ctx context.Context, caller *models.Caller, input models.ReviewInput) (*models.Review, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	author, err := access.CallerObjectID(caller)
	if err != nil {
		return nil, err
	}

	header := strings.TrimSpace(input.Header)
	text := strings.TrimSpace(input.Text)
	if header == "" || text == "" {
		return nil, apperrors.Validation("review header and text are required")
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateReview(ctx, &models.Review{
		Author:          author,
		Category:        category,
		Header:          header,
		Text:            text,
		Rating:          input.Rating,
		Filename:        input.Filename,
		PublicationDate: s.now(),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"review_id": created.ID.Hex(),
		"author":    caller.ID,
		"rating":    created.Rating,
	}).Info("Review created")
	return created, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, caller *models.Caller, id string, update models.ReviewUpdate) (*models.Review, error) {
	review, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	patch := models.ReviewPatch{Filename: update.Filename}
	if update.Header != nil {
		header := strings.TrimSpace(*update.Header)
		if header == "" {
			return nil, apperrors.Validation("review header cannot be empty")
		}
		patch.Header = &header
	}
	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if text == "" {
			return nil, apperrors.Validation("review text cannot be empty")
		}
		patch.Text = &text
	}
	if update.Rating != nil {
		if err := validateRating(*update.Rating); err != nil {
			return nil, err
		}
		patch.Rating = update.Rating
	}
	if update.Category != nil {
		if patch.Category, err = s.resolveCategory(ctx, update.Category); err != nil {
			return nil, err
		}
	}

	return s.repo.UpdateReview(ctx, review.ID, patch)
}

// DeleteReview removes the review and the comments posted under it.
func (s *ReviewService) DeleteReview(ctx context.Context, caller *models.Caller, id string) (*models.Review, error) {
	review, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var deleted *models.Review
	err = deleteWithDependents(ctx, s.tx, s.cascader, cascade.Review, []primitive.ObjectID{review.ID}, func(ctx context.Context) error {
		r, err := s.repo.DeleteReview(ctx, review.ID)
		deleted = r
		return err
	})
	if err != nil {
		logger.Log.WithError(err).WithField("review_id", id).Error("Failed to delete review")
		return nil, err
	}

	logger.Log.WithField("review_id", id).Info("Review deleted")
	return deleted, nil
}

func (s *ReviewService) authorize(ctx context.Context, caller *models.Caller, id string) (*models.Review, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	objID, err := parseID("review", id)
	if err != nil {
		return nil, err
	}
	review, err := s.repo.GetReviewByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if _, err := access.RequireOwnerOrAdmin(caller, review.Author); err != nil {
		logger.Log.WithFields(logrus.Fields{"review_id": id, "caller": caller.ID}).Warn("Rejected review change by non-owner")
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) resolveCategory(ctx context.Context, id *string) (*primitive.ObjectID, error) {
	objID, err := parseOptionalID("category", id)
	if err != nil || objID == nil {
		return nil, err
	}
	if _, err := s.categories.GetCategoryByID(ctx, *objID); err != nil {
		return nil, err
	}
	return objID, nil
}

func validateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return apperrors.Validation("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}
