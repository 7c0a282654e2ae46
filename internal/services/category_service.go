package services

import (
	"context"
	"strings"

	"github.com/Dias221467/Marketplace_Hub/internal/access"
	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/cascade"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService manages categories. Every write is reserved to admins.
type CategoryService struct {
	repo     CategoryStore
	users    AuthService
	tx       Transactor
	cascader Cascader
}

func NewCategoryService(repo CategoryStore, users AuthService, tx Transactor, cascader Cascader) *CategoryService {
	return &CategoryService{repo: repo, users: users, tx: tx, cascader: cascader}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	objID, err := parseID("category", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCategoryByID(ctx, objID)
}

func (s *CategoryService) SearchCategories(ctx context.Context, term string) ([]models.Category, error) {
	return s.repo.SearchCategories(ctx, term)
}

// GetCategoriesByIDs resolves a list of category ids such as a user's isFollowing.
// Ids that are not valid ObjectIDs cannot match and are skipped.
func (s *CategoryService) GetCategoriesByIDs(ctx context.Context, ids []string) ([]models.Category, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			logger.Log.WithField("category_id", id).Warn("Skipping malformed category id")
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Category{}, nil
	}
	return s.repo.GetCategoriesByIDs(ctx, objIDs)
}

// GetCategoriesByUser asks the auth service which categories the user follows.
func (s *CategoryService) GetCategoriesByUser(ctx context.Context, userID string) ([]models.Category, error) {
	user, err := s.users.CategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.GetCategoriesByIDs(ctx, user.IsFollowing)
}

func (s *CategoryService) CreateCategory(ctx context.Context, caller *models.Caller, name string) (*models.Category, error) {
	if _, err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	category, err := s.repo.CreateCategory(ctx, &models.Category{Name: name})
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("category_id", category.ID.Hex()).Info("Category created")
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, caller *models.Caller, id, name string) (*models.Category, error) {
	if _, err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	objID, err := parseID("category", id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}

	return s.repo.UpdateCategory(ctx, objID, name)
}

// DeleteCategory removes the category together with the reviews filed under it.
func (s *CategoryService) DeleteCategory(ctx context.Context, caller *models.Caller, id string) (*models.Category, error) {
	if _, err := access.RequireAdmin(caller); err != nil {
		return nil, err
	}
	objID, err := parseID("category", id)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCategoryByID(ctx, objID); err != nil {
		return nil, err
	}

	var deleted *models.Category
	err = deleteWithDependents(ctx, s.tx, s.cascader, cascade.Category, []primitive.ObjectID{objID}, func(ctx context.Context) error {
		category, err := s.repo.DeleteCategory(ctx, objID)
		deleted = category
		return err
	})
	if err != nil {
		logger.Log.WithError(err).WithField("category_id", id).Error("Failed to delete category")
		return nil, err
	}

	logger.Log.WithField("category_id", id).Info("Category deleted")
	return deleted, nil
}
