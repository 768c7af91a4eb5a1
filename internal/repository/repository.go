package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

// newestFirst orders by creation time and breaks ties on _id so that skip/limit
// pages never overlap.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func pageOptions(p models.PageQuery) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(newestFirst).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)
}

// findPage runs the page query and the total count for the same filter.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter any, p models.PageQuery) ([]T, int64, error) {
	cur, err := col.Find(ctx, filter, pageOptions(p))
	if err != nil {
		return nil, 0, apperror.Internal("find "+col.Name(), err)
	}
	defer cur.Close(ctx)

	items := make([]T, 0, p.Limit)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, apperror.Internal("decode "+col.Name(), err)
	}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Internal("count "+col.Name(), err)
	}
	return items, total, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, notFound *apperror.Error) (*T, error) {
	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, apperror.Internal("find "+col.Name(), err)
	}
	return &out, nil
}
