package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Author          primitive.ObjectID  `bson:"author" json:"author"`
	Category        *primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Header          string              `bson:"header" json:"header"`
	Text            string              `bson:"text" json:"text"`
	Rating          int                 `bson:"rating" json:"rating"`
	Filename        string              `bson:"filename,omitempty" json:"filename,omitempty"`
	PublicationDate time.Time           `bson:"publicationDate" json:"publicationDate"`
}

type ReviewInput struct {
	Category *string
	Header   string
	Text     string
	Rating   int
	Filename string
}

type ReviewUpdate struct {
	Category *string
	Header   *string
	Text     *string
	Rating   *int
	Filename *string
}

type ReviewPatch struct {
	Category *primitive.ObjectID
	Header   *string
	Text     *string
	Rating   *int
	Filename *string
}

func (p ReviewPatch) Apply(r *Review) {
	if p.Category != nil {
		r.Category = p.Category
	}
	if p.Header != nil {
		r.Header = *p.Header
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Filename != nil {
		r.Filename = *p.Filename
	}
}

type ReviewFilter struct {
	Author   *primitive.ObjectID
	Category *primitive.ObjectID
	Rating   *int
}
