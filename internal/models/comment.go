package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostKind tags what a comment is attached to.
type PostKind string

const (
	PostOffer  PostKind = "offer"
	PostReview PostKind = "review"
)

func (k PostKind) Valid() bool {
	switch k {
	case PostOffer, PostReview:
		return true
	}
	return false
}

// PostRef points a comment at either an offer or a review.
type PostRef struct {
	Kind PostKind           `bson:"kind" json:"kind"`
	ID   primitive.ObjectID `bson:"id" json:"id"`
}

type Comment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author          primitive.ObjectID `bson:"author" json:"author"`
	Text            string             `bson:"text" json:"text"`
	PublicationDate time.Time          `bson:"publicationDate" json:"publicationDate"`
	Post            PostRef            `bson:"post" json:"post"`
}

// CommentInput leaves PostKind empty when the client did not say what the post is.
type CommentInput struct {
	Text     string
	PostID   string
	PostKind PostKind
}

type CommentPatch struct {
	Text *string
}

func (p CommentPatch) Apply(c *Comment) {
	if p.Text != nil {
		c.Text = *p.Text
	}
}

type CommentFilter struct {
	Author *primitive.ObjectID
	Post   *primitive.ObjectID
}
