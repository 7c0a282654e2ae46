// Package memory is an in-process document store with the same surface as the Mongo
// repositories. It backs STORE=memory and the service tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/apperrors"
	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu sync.RWMutex

	Categories    *Categories
	Offers        *Offers
	Reviews       *Reviews
	Comments      *Comments
	Notifications *Notifications
}

func NewStore() *Store {
	s := &Store{}
	s.Categories = &Categories{newTable(&s.mu, "category",
		func(c *models.Category) *primitive.ObjectID { return &c.ID },
		func(*models.Category, string) (primitive.ObjectID, bool) { return primitive.NilObjectID, false })}
	s.Offers = &Offers{newTable(&s.mu, "offer",
		func(o *models.Offer) *primitive.ObjectID { return &o.ID },
		func(o *models.Offer, field string) (primitive.ObjectID, bool) {
			switch field {
			case "author":
				return o.Author, true
			case "category":
				return optionalRef(o.Category)
			}
			return primitive.NilObjectID, false
		})}
	s.Reviews = &Reviews{newTable(&s.mu, "review",
		func(r *models.Review) *primitive.ObjectID { return &r.ID },
		func(r *models.Review, field string) (primitive.ObjectID, bool) {
			switch field {
			case "author":
				return r.Author, true
			case "category":
				return optionalRef(r.Category)
			}
			return primitive.NilObjectID, false
		})}
	s.Comments = &Comments{newTable(&s.mu, "comment",
		func(c *models.Comment) *primitive.ObjectID { return &c.ID },
		func(c *models.Comment, field string) (primitive.ObjectID, bool) {
			switch field {
			case "author":
				return c.Author, true
			case "post.id":
				return c.Post.ID, true
			}
			return primitive.NilObjectID, false
		})}
	s.Notifications = &Notifications{newTable(&s.mu, "notification",
		func(n *models.Notification) *primitive.ObjectID { return &n.ID },
		func(n *models.Notification, field string) (primitive.ObjectID, bool) {
			if field == "receiver" {
				return n.Receiver, true
			}
			return primitive.NilObjectID, false
		})}
	return s
}

// WithTransaction runs fn directly; the in-memory store has no rollback.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Ping(context.Context) error {
	return nil
}

type Categories struct {
	*table[models.Category]
}

func (c *Categories) CreateCategory(_ context.Context, category *models.Category) (*models.Category, error) {
	if !c.insertUnless(category, func(existing *models.Category) bool { return existing.Name == category.Name }) {
		return nil, apperrors.Validation("category %q already exists", category.Name)
	}
	return category, nil
}

func (c *Categories) GetCategoryByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	return c.get(id)
}

func (c *Categories) GetCategories(context.Context) ([]models.Category, error) {
	return c.where(nil), nil
}

func (c *Categories) GetCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	return c.where(func(category *models.Category) bool { return c.matches(category, "_id", ids) }), nil
}

func (c *Categories) SearchCategories(_ context.Context, term string) ([]models.Category, error) {
	return c.where(func(category *models.Category) bool { return containsFold(category.Name, term) }), nil
}

func (c *Categories) UpdateCategory(_ context.Context, id primitive.ObjectID, name string) (*models.Category, error) {
	updated, err := c.updateUnless(id,
		func(existing *models.Category) bool { return existing.Name == name },
		func(category *models.Category) { category.Name = name })
	if errors.Is(err, errConflict) {
		return nil, apperrors.Validation("category %q already exists", name)
	}
	return updated, err
}

func (c *Categories) DeleteCategory(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	return c.remove(id)
}

type Offers struct {
	*table[models.Offer]
}

func (o *Offers) CreateOffer(_ context.Context, offer *models.Offer) (*models.Offer, error) {
	o.insert(offer)
	return offer, nil
}

func (o *Offers) GetOfferByID(_ context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return o.get(id)
}

func (o *Offers) GetOffers(_ context.Context, filter models.OfferFilter) ([]models.Offer, error) {
	return o.where(func(offer *models.Offer) bool {
		if filter.Author != nil && offer.Author != *filter.Author {
			return false
		}
		if filter.Category != nil && (offer.Category == nil || *offer.Category != *filter.Category) {
			return false
		}
		return true
	}), nil
}

func (o *Offers) SearchOffers(_ context.Context, term string) ([]models.Offer, error) {
	return o.where(func(offer *models.Offer) bool { return containsFold(offer.Header, term) }), nil
}

func (o *Offers) UpdateOffer(_ context.Context, id primitive.ObjectID, patch models.OfferPatch) (*models.Offer, error) {
	return o.update(id, patch.Apply)
}

func (o *Offers) DeleteOffer(_ context.Context, id primitive.ObjectID) (*models.Offer, error) {
	return o.remove(id)
}

func (o *Offers) GetExpiredOfferIDs(_ context.Context, now time.Time) ([]primitive.ObjectID, error) {
	expired := o.where(func(offer *models.Offer) bool { return !offer.DeletionDate.After(now) })
	ids := make([]primitive.ObjectID, 0, len(expired))
	for _, offer := range expired {
		ids = append(ids, offer.ID)
	}
	return ids, nil
}

type Reviews struct {
	*table[models.Review]
}

func (r *Reviews) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	r.insert(review)
	return review, nil
}

func (r *Reviews) GetReviewByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.get(id)
}

func (r *Reviews) GetReviews(_ context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	return r.where(func(review *models.Review) bool {
		if filter.Author != nil && review.Author != *filter.Author {
			return false
		}
		if filter.Category != nil && (review.Category == nil || *review.Category != *filter.Category) {
			return false
		}
		if filter.Rating != nil && review.Rating != *filter.Rating {
			return false
		}
		return true
	}), nil
}

func (r *Reviews) SearchReviews(_ context.Context, term string) ([]models.Review, error) {
	return r.where(func(review *models.Review) bool { return containsFold(review.Header, term) }), nil
}

func (r *Reviews) UpdateReview(_ context.Context, id primitive.ObjectID, patch models.ReviewPatch) (*models.Review, error) {
	return r.update(id, patch.Apply)
}

func (r *Reviews) DeleteReview(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.remove(id)
}

type Comments struct {
	*table[models.Comment]
}

func (c *Comments) CreateComment(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	c.insert(comment)
	return comment, nil
}

func (c *Comments) GetCommentByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return c.get(id)
}

func (c *Comments) GetComments(_ context.Context, filter models.CommentFilter) ([]models.Comment, error) {
	return c.where(func(comment *models.Comment) bool {
		if filter.Author != nil && comment.Author != *filter.Author {
			return false
		}
		if filter.Post != nil && comment.Post.ID != *filter.Post {
			return false
		}
		return true
	}), nil
}

func (c *Comments) SearchComments(_ context.Context, term string) ([]models.Comment, error) {
	return c.where(func(comment *models.Comment) bool { return containsFold(comment.Text, term) }), nil
}

func (c *Comments) UpdateComment(_ context.Context, id primitive.ObjectID, patch models.CommentPatch) (*models.Comment, error) {
	return c.update(id, patch.Apply)
}

func (c *Comments) DeleteComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return c.remove(id)
}

type Notifications struct {
	*table[models.Notification]
}

func (n *Notifications) CreateNotification(_ context.Context, notif *models.Notification) (*models.Notification, error) {
	n.insert(notif)
	return notif, nil
}

func (n *Notifications) CreateNotifications(_ context.Context, notifs []models.Notification) ([]models.Notification, error) {
	for i := range notifs {
		n.insert(&notifs[i])
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}
	return notifs, nil
}

func (n *Notifications) GetNotificationByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return n.get(id)
}

func (n *Notifications) GetNotifications(_ context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	return n.where(func(notif *models.Notification) bool {
		return filter.Receiver == nil || notif.Receiver == *filter.Receiver
	}), nil
}

func (n *Notifications) SearchNotifications(_ context.Context, term string) ([]models.Notification, error) {
	return n.where(func(notif *models.Notification) bool { return containsFold(notif.Text, term) }), nil
}

func (n *Notifications) DeleteNotification(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return n.remove(id)
}

func (n *Notifications) DeleteExpiredNotifications(_ context.Context, now time.Time) (int64, error) {
	return n.removeWhere(func(notif *models.Notification) bool { return !notif.Expire.After(now) }), nil
}
