package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Hoagie struct {
	ID            bson.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string          `bson:"name" json:"name"`
	Ingredients   []string        `bson:"ingredients" json:"ingredients"`
	Picture       string          `bson:"picture,omitempty" json:"picture,omitempty"`
	Creator       bson.ObjectID   `bson:"creator" json:"creator"`
	Collaborators []bson.ObjectID `bson:"collaborators" json:"collaborators"`
	CommentCount  int64           `bson:"commentCount" json:"commentCount"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt" json:"updatedAt"`
}

func (h *Hoagie) IsCreator(userID bson.ObjectID) bool {
	return h.Creator == userID
}

func (h *Hoagie) IsCollaborator(userID bson.ObjectID) bool {
	return slices.Contains(h.Collaborators, userID)
}

// HoagieUpdate carries the optional fields of a partial update; nil means
// "leave as is".
type HoagieUpdate struct {
	Name        *string
	Ingredients []string
	Picture     *string
}

func (u HoagieUpdate) IsEmpty() bool {
	return u.Name == nil && u.Ingredients == nil && u.Picture == nil
}
