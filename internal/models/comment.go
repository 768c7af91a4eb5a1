package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Text      string        `bson:"text" json:"text"`
	User      bson.ObjectID `bson:"user" json:"user"`
	Hoagie    bson.ObjectID `bson:"hoagie" json:"hoagie"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
