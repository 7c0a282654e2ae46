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

// CommentService handles comments on offers and reviews.
type CommentService struct {
	repo     CommentStore
	offers   OfferStore
	reviews  ReviewStore
	tx       Transactor
	cascader Cascader
	now      func() time.Time
}

func NewCommentService(repo CommentStore, offers OfferStore, reviews ReviewStore, tx Transactor, cascader Cascader) *CommentService {
	return &CommentService{repo: repo, offers: offers, reviews: reviews, tx: tx, cascader: cascader, now: time.Now}
}

func (s *CommentService) GetComments(ctx context.Context) ([]models.Comment, error) {
	return s.repo.GetComments(ctx, models.CommentFilter{})
}

func (s *CommentService) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := parseID("comment", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCommentByID(ctx, objID)
}

func (s *CommentService) SearchComments(ctx context.Context, term string) ([]models.Comment, error) {
	return s.repo.SearchComments(ctx, term)
}

// GetCommentsByPost lists the comments on an offer or a review.
func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	objID, err := parseID("post", postID)
	if err != nil {
		return nil, err
	}
	return s.GetCommentsByPostID(ctx, objID)
}

func (s *CommentService) GetCommentsByPostID(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	return s.repo.GetComments(ctx, models.CommentFilter{Post: &postID})
}

// GetPost loads the post a comment points at. The result is a *models.Offer or a
// *models.Review depending on ref.Kind.
func (s *CommentService) GetPost(ctx context.Context, ref models.PostRef) (interface{}, error) {
	switch ref.Kind {
	case models.PostOffer:
		offer, err := s.offers.GetOfferByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return offer, nil
	case models.PostReview:
		review, err := s.reviews.GetReviewByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return review, nil
	default:
		return nil, apperrors.Validation("unknown post kind %q", ref.Kind)
	}
}

// CreateComment attaches a comment to an existing post. When the input does not name
// the post kind, offers are probed before reviews.
func (s *CommentService) CreateComment(ctx context.Context, caller *models.Caller, input models.CommentInput) (*models.Comment, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	author, err := access.CallerObjectID(caller)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperrors.Validation("comment text is required")
	}
	postID, err := parseID("post", input.PostID)
	if err != nil {
		return nil, err
	}
	ref, err := s.resolvePost(ctx, input.PostKind, postID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateComment(ctx, &models.Comment{
		Author:          author,
		Text:            text,
		PublicationDate: s.now(),
		Post:            ref,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"comment_id": created.ID.Hex(),
		"post_kind":  ref.Kind,
		"post_id":    ref.ID.Hex(),
	}).Info("Comment created")
	return created, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, caller *models.Caller, id string, patch models.CommentPatch) (*models.Comment, error) {
	comment, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, apperrors.Validation("comment text cannot be empty")
		}
		patch.Text = &text
	}
	return s.repo.UpdateComment(ctx, comment.ID, patch)
}

func (s *CommentService) DeleteComment(ctx context.Context, caller *models.Caller, id string) (*models.Comment, error) {
	comment, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var deleted *models.Comment
	err = deleteWithDependents(ctx, s.tx, s.cascader, cascade.Comment, []primitive.ObjectID{comment.ID}, func(ctx context.Context) error {
		c, err := s.repo.DeleteComment(ctx, comment.ID)
		deleted = c
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("comment_id", id).Info("Comment deleted")
	return deleted, nil
}

func (s *CommentService) authorize(ctx context.Context, caller *models.Caller, id string) (*models.Comment, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	objID, err := parseID("comment", id)
	if err != nil {
		return nil, err
	}
	comment, err := s.repo.GetCommentByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if _, err := access.RequireOwnerOrAdmin(caller, comment.Author); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) resolvePost(ctx context.Context, kind models.PostKind, id primitive.ObjectID) (models.PostRef, error) {
	if kind != "" {
		ref := models.PostRef{Kind: kind, ID: id}
		if !kind.Valid() {
			return ref, apperrors.Validation("unknown post kind %q", kind)
		}
		_, err := s.GetPost(ctx, ref)
		return ref, err
	}

	if _, err := s.offers.GetOfferByID(ctx, id); err == nil {
		return models.PostRef{Kind: models.PostOffer, ID: id}, nil
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return models.PostRef{}, err
	}
	if _, err := s.reviews.GetReviewByID(ctx, id); err == nil {
		return models.PostRef{Kind: models.PostReview, ID: id}, nil
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return models.PostRef{}, err
	}
	return models.PostRef{}, apperrors.NotFound("post")
}
