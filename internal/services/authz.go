package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/models"
)

// CanEdit reports whether userID may change a hoagie's fields.
func CanEdit(h *models.Hoagie, userID bson.ObjectID) bool {
	return h.IsCreator(userID) || h.IsCollaborator(userID)
}

// CanManageCollaborators reports whether userID may add or remove
// collaborators. Only the creator can.
func CanManageCollaborators(h *models.Hoagie, userID bson.ObjectID) bool {
	return h.IsCreator(userID)
}
