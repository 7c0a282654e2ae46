package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OfferRepository handles database operations related to offers.
type OfferRepository struct {
	documents[models.Offer]
}

// NewOfferRepository creates a new instance of OfferRepository.
func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{documents: newDocuments[models.Offer](db, "offers", "offer")}
}

// CreateOffer inserts a new offer.
func (r *OfferRepository) CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	id, err := r.insert(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	offer.ID = id

	logger.Log.WithFields(map[string]interface{}{
		"offer_id": id.Hex(),
		"author":   offer.Author.Hex(),
	}).Info("Offer created successfully")
	return offer, nil
}

func (r *OfferRepository) GetOfferByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return r.findByID(ctx, id)
}

// GetOffers lists offers, optionally narrowed by author and category.
func (r *OfferRepository) GetOffers(ctx context.Context, filter models.OfferFilter) ([]models.Offer, error) {
	query := bson.M{}
	if filter.Author != nil {
		query["author"] = *filter.Author
	}
	if filter.Category != nil {
		query["category"] = *filter.Category
	}
	return r.find(ctx, query, newestFirst())
}

func (r *OfferRepository) SearchOffers(ctx context.Context, term string) ([]models.Offer, error) {
	return r.search(ctx, "header", term, newestFirst())
}

// UpdateOffer applies the non-nil fields of patch.
func (r *OfferRepository) UpdateOffer(ctx context.Context, id primitive.ObjectID, patch models.OfferPatch) (*models.Offer, error) {
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
	if patch.DeletionDate != nil {
		set["deletionDate"] = *patch.DeletionDate
	}

	offer, err := r.updateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("offer_id", id.Hex()).Info("Offer updated successfully")
	return offer, nil
}

// DeleteOffer removes an offer and returns it. Comments are the caller's concern.
func (r *OfferRepository) DeleteOffer(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	offer, err := r.deleteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("offer_id", id.Hex()).Info("Offer deleted successfully")
	return offer, nil
}

// GetExpiredOfferIDs returns offers whose deletion date has passed.
func (r *OfferRepository) GetExpiredOfferIDs(ctx context.Context, now time.Time) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"deletionDate": bson.M{"$lte": now}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expired offers: %w", err)
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode expired offers: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(offers))
	for _, offer := range offers {
		ids = append(ids, offer.ID)
	}
	return ids, nil
}
