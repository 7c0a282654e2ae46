package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationLifetime is the gap between publication and expiry.
const NotificationLifetime = 14 * 24 * time.Hour

type Notification struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Receiver        primitive.ObjectID `bson:"receiver" json:"receiver"`
	Text            string             `bson:"text" json:"text"`
	Link            string             `bson:"link,omitempty" json:"link,omitempty"`
	PublicationDate time.Time          `bson:"publicationDate" json:"publicationDate"`
	Expire          time.Time          `bson:"expire" json:"expire"`
}

type NotificationInput struct {
	Receiver string
	Text     string
	Link     string
}

type NotificationFilter struct {
	Receiver *primitive.ObjectID
}
