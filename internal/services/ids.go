package services

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/apperror"
)

// parseID treats a malformed id the same as a missing document.
func parseID(resource, hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, apperror.NotFound(resource, hex)
	}
	return id, nil
}
