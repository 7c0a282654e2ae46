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

// CommentRepository handles database operations related to comments.
type CommentRepository struct {
	documents[models.Comment]
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{documents: newDocuments[models.Comment](db, "comments", "comment")}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	id, err := r.insert(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.ID = id

	logger.Log.WithFields(map[string]interface{}{
		"comment_id": id.Hex(),
		"post_kind":  comment.Post.Kind,
		"post_id":    comment.Post.ID.Hex(),
	}).Info("Comment created successfully")
	return comment, nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return r.findByID(ctx, id)
}

// GetComments lists comments, optionally for one author or one post.
func (r *CommentRepository) GetComments(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error) {
	query := bson.M{}
	if filter.Author != nil {
		query["author"] = *filter.Author
	}
	if filter.Post != nil {
		query["post.id"] = *filter.Post
	}
	return r.find(ctx, query, newestFirst())
}

func (r *CommentRepository) SearchComments(ctx context.Context, term string) ([]models.Comment, error) {
	return r.search(ctx, "text", term, newestFirst())
}

func (r *CommentRepository) UpdateComment(ctx context.Context, id primitive.ObjectID, patch models.CommentPatch) (*models.Comment, error) {
	set := bson.M{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}

	comment, err := r.updateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("comment_id", id.Hex()).Info("Comment updated successfully")
	return comment, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment, err := r.deleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("comment_id", id.Hex()).Info("Comment deleted successfully")
	return comment, nil
}
