package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OfferLifetime is how long an offer stays up when no deletion date is given.
const OfferLifetime = 14 * 24 * time.Hour

type Offer struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Author          primitive.ObjectID  `bson:"author" json:"author"`
	Category        *primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Header          string              `bson:"header" json:"header"`
	Text            string              `bson:"text" json:"text"`
	PublicationDate time.Time           `bson:"publicationDate" json:"publicationDate"`
	DeletionDate    time.Time           `bson:"deletionDate" json:"deletionDate"`
}

// OfferInput is what a client sends to create an offer. Ids arrive as hex strings.
type OfferInput struct {
	Category     *string
	Header       string
	Text         string
	DeletionDate *time.Time
}

// OfferUpdate is the client side of OfferPatch.
type OfferUpdate struct {
	Category     *string
	Header       *string
	Text         *string
	DeletionDate *time.Time
}

// OfferPatch holds the client-editable offer fields; nil means unchanged.
type OfferPatch struct {
	Category     *primitive.ObjectID
	Header       *string
	Text         *string
	DeletionDate *time.Time
}

func (p OfferPatch) Apply(o *Offer) {
	if p.Category != nil {
		o.Category = p.Category
	}
	if p.Header != nil {
		o.Header = *p.Header
	}
	if p.Text != nil {
		o.Text = *p.Text
	}
	if p.DeletionDate != nil {
		o.DeletionDate = *p.DeletionDate
	}
}

type OfferFilter struct {
	Author   *primitive.ObjectID
	Category *primitive.ObjectID
}
