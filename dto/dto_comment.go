package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/models"
)

type CreateCommentReq struct {
	Text     string `json:"text" validate:"required,max=2000"`
	HoagieID string `json:"hoagieId" validate:"required,mongodb"`
	UserID   string `json:"userId" validate:"required,mongodb"`
}

type DeleteCommentReq struct {
	UserID string `json:"userId" validate:"required,mongodb"`
}

type CommentResp struct {
	ID        bson.ObjectID      `json:"_id"`
	Text      string             `json:"text"`
	User      models.UserSummary `json:"user"`
	Hoagie    bson.ObjectID      `json:"hoagie"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewCommentResp(c models.Comment, users map[bson.ObjectID]models.UserSummary) CommentResp {
	return CommentResp{
		ID:        c.ID,
		Text:      c.Text,
		User:      lookupUser(users, c.User),
		Hoagie:    c.Hoagie,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
