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

// OfferService holds the offer queries and mutations.
type OfferService struct {
	repo       OfferStore
	categories CategoryStore
	tx         Transactor
	cascader   Cascader
	now        func() time.Time
}

func NewOfferService(repo OfferStore, categories CategoryStore, tx Transactor, cascader Cascader) *OfferService {
	return &OfferService{repo: repo, categories: categories, tx: tx, cascader: cascader, now: time.Now}
}

func (s *OfferService) GetOffers(ctx context.Context) ([]models.Offer, error) {
	return s.repo.GetOffers(ctx, models.OfferFilter{})
}

func (s *OfferService) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	objID, err := parseID("offer", id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOfferByID(ctx, objID)
}

func (s *OfferService) SearchOffers(ctx context.Context, term string) ([]models.Offer, error) {
	return s.repo.SearchOffers(ctx, term)
}

func (s *OfferService) GetOffersByCategory(ctx context.Context, categoryID string) ([]models.Offer, error) {
	objID, err := parseID("category", categoryID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOffers(ctx, models.OfferFilter{Category: &objID})
}

func (s *OfferService) GetOffersByAuthor(ctx context.Context, authorID string) ([]models.Offer, error) {
	objID, err := parseID("author", authorID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetOffers(ctx, models.OfferFilter{Author: &objID})
}

// CreateOffer stores a new offer authored by the caller. Without a deletion date the
// offer expires OfferLifetime after publication.
func (s *OfferService) CreateOffer(ctx context.Context, caller *models.Caller, input models.OfferInput) (*models.Offer, error) {
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
		return nil, apperrors.Validation("offer header and text are required")
	}
	category, err := s.resolveCategory(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	now := s.now()
	offer := &models.Offer{
		Author:          author,
		Category:        category,
		Header:          header,
		Text:            text,
		PublicationDate: now,
		DeletionDate:    now.Add(models.OfferLifetime),
	}
	if input.DeletionDate != nil {
		if !input.DeletionDate.After(now) {
			return nil, apperrors.Validation("deletionDate must be in the future")
		}
		offer.DeletionDate = *input.DeletionDate
	}

	created, err := s.repo.CreateOffer(ctx, offer)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"offer_id": created.ID.Hex(),
		"author":   caller.ID,
	}).Info("Offer created")
	return created, nil
}

// UpdateOffer applies the client-editable fields. Only the author or an admin may
// update an offer.
func (s *OfferService) UpdateOffer(ctx context.Context, caller *models.Caller, id string, update models.OfferUpdate) (*models.Offer, error) {
	offer, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var patch models.OfferPatch
	if update.Header != nil {
		header := strings.TrimSpace(*update.Header)
		if header == "" {
			return nil, apperrors.Validation("offer header cannot be empty")
		}
		patch.Header = &header
	}
	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if text == "" {
			return nil, apperrors.Validation("offer text cannot be empty")
		}
		patch.Text = &text
	}
	if update.Category != nil {
		if patch.Category, err = s.resolveCategory(ctx, update.Category); err != nil {
			return nil, err
		}
	}
	if update.DeletionDate != nil {
		if !update.DeletionDate.After(offer.PublicationDate) {
			return nil, apperrors.Validation("deletionDate must be after publicationDate")
		}
		patch.DeletionDate = update.DeletionDate
	}

	return s.repo.UpdateOffer(ctx, offer.ID, patch)
}

// DeleteOffer removes the offer and the comments posted under it.
func (s *OfferService) DeleteOffer(ctx context.Context, caller *models.Caller, id string) (*models.Offer, error) {
	offer, err := s.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var deleted *models.Offer
	err = deleteWithDependents(ctx, s.tx, s.cascader, cascade.Offer, []primitive.ObjectID{offer.ID}, func(ctx context.Context) error {
		o, err := s.repo.DeleteOffer(ctx, offer.ID)
		deleted = o
		return err
	})
	if err != nil {
		logger.Log.WithError(err).WithField("offer_id", id).Error("Failed to delete offer")
		return nil, err
	}

	logger.Log.WithField("offer_id", id).Info("Offer deleted")
	return deleted, nil
}

// DeleteExpiredOffers removes every offer past its deletion date, comments included.
func (s *OfferService) DeleteExpiredOffers(ctx context.Context) (int64, error) {
	ids, err := s.repo.GetExpiredOfferIDs(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int64
	err = deleteWithDependents(ctx, s.tx, s.cascader, cascade.Offer, ids, func(ctx context.Context) error {
		n, err := s.repo.DeleteMany(ctx, "_id", ids)
		removed = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *OfferService) authorize(ctx context.Context, caller *models.Caller, id string) (*models.Offer, error) {
	caller, err := access.RequireLoggedIn(caller)
	if err != nil {
		return nil, err
	}
	objID, err := parseID("offer", id)
	if err != nil {
		return nil, err
	}
	offer, err := s.repo.GetOfferByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if _, err := access.RequireOwnerOrAdmin(caller, offer.Author); err != nil {
		logger.Log.WithFields(logrus.Fields{"offer_id": id, "caller": caller.ID}).Warn("Rejected offer change by non-owner")
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) resolveCategory(ctx context.Context, id *string) (*primitive.ObjectID, error) {
	objID, err := parseOptionalID("category", id)
	if err != nil || objID == nil {
		return nil, err
	}
	if _, err := s.categories.GetCategoryByID(ctx, *objID); err != nil {
		return nil, err
	}
	return objID, nil
}
