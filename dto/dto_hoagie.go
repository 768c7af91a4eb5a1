package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/models"
)

type CreateHoagieReq struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Picture     string   `json:"picture,omitempty" validate:"omitempty,url"`
	UserID      string   `json:"userId" validate:"required,mongodb"`
}

// UpdateHoagieReq only touches the fields that are present in the body.
type UpdateHoagieReq struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Ingredients []string `json:"ingredients,omitempty" validate:"omitempty,min=1,dive,required"`
	Picture     *string  `json:"picture,omitempty" validate:"omitempty,url"`
}

func (r UpdateHoagieReq) ToModel() models.HoagieUpdate {
	return models.HoagieUpdate{Name: r.Name, Ingredients: r.Ingredients, Picture: r.Picture}
}

// HoagieResp is a hoagie with its creator and collaborators resolved to
// user summaries.
type HoagieResp struct {
	ID            bson.ObjectID        `json:"_id"`
	Name          string               `json:"name"`
	Ingredients   []string             `json:"ingredients"`
	Picture       string               `json:"picture,omitempty"`
	Creator       models.UserSummary   `json:"creator"`
	Collaborators []models.UserSummary `json:"collaborators"`
	CommentCount  int64                `json:"commentCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// NewHoagieResp resolves user ids through users; ids missing from the map are
// rendered with only their _id.
func NewHoagieResp(h models.Hoagie, users map[bson.ObjectID]models.UserSummary) HoagieResp {
	resp := HoagieResp{
		ID:            h.ID,
		Name:          h.Name,
		Ingredients:   h.Ingredients,
		Picture:       h.Picture,
		Creator:       lookupUser(users, h.Creator),
		Collaborators: make([]models.UserSummary, 0, len(h.Collaborators)),
		CommentCount:  h.CommentCount,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
	for _, id := range h.Collaborators {
		resp.Collaborators = append(resp.Collaborators, lookupUser(users, id))
	}
	return resp
}

func lookupUser(users map[bson.ObjectID]models.UserSummary, id bson.ObjectID) models.UserSummary {
	if s, ok := users[id]; ok {
		return s
	}
	return models.UserSummary{ID: id}
}
