package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hoagiehub/database"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

type HoagieRepository struct {
	ColHoagies *mongo.Collection
}

func NewHoagieRepository(db *mongo.Database) *HoagieRepository {
	return &HoagieRepository{ColHoagies: db.Collection(database.CollectionHoagies)}
}

func hoagieNotFound(id bson.ObjectID) *apperror.Error {
	return apperror.NotFound("Hoagie", id.Hex())
}

func (r *HoagieRepository) Create(ctx context.Context, h *models.Hoagie) error {
	if h.ID.IsZero() {
		h.ID = bson.NewObjectID()
	}
	if h.Collaborators == nil {
		h.Collaborators = []bson.ObjectID{}
	}
	if _, err := r.ColHoagies.InsertOne(ctx, h); err != nil {
		return apperror.Internal("insert hoagie", err)
	}
	return nil
}

func (r *HoagieRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Hoagie, error) {
	return findOne[models.Hoagie](ctx, r.ColHoagies, bson.M{"_id": id}, hoagieNotFound(id))
}

func (r *HoagieRepository) List(ctx context.Context, p models.PageQuery) ([]models.Hoagie, int64, error) {
	return findPage[models.Hoagie](ctx, r.ColHoagies, bson.M{}, p)
}

// Update applies the non-nil fields of upd and returns the stored document.
func (r *HoagieRepository) Update(ctx context.Context, id bson.ObjectID, upd models.HoagieUpdate, now time.Time) (*models.Hoagie, error) {
	set := bson.M{"updatedAt": now}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Ingredients != nil {
		set["ingredients"] = upd.Ingredients
	}
	if upd.Picture != nil {
		set["picture"] = *upd.Picture
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// AddCollaborator uses $addToSet so repeated adds never duplicate a member.
func (r *HoagieRepository) AddCollaborator(ctx context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"collaborators": userID},
		"$set":      bson.M{"updatedAt": now},
	})
}

func (r *HoagieRepository) RemoveCollaborator(ctx context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"collaborators": userID},
		"$set":  bson.M{"updatedAt": now},
	})
}

func (r *HoagieRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update any) (*models.Hoagie, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var h models.Hoagie
	if err := r.ColHoagies.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hoagieNotFound(id)
		}
		return nil, apperror.Internal("update hoagie", err)
	}
	return &h, nil
}

func (r *HoagieRepository) IncrementCommentCount(ctx context.Context, id bson.ObjectID) error {
	return r.updateCount(ctx, id, bson.M{"$inc": bson.M{"commentCount": 1}})
}

// DecrementCommentCount computes max(0, commentCount-1) server side, so the
// counter cannot go negative even under concurrent deletes.
func (r *HoagieRepository) DecrementCommentCount(ctx context.Context, id bson.ObjectID) error {
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "commentCount", Value: bson.D{
				{Key: "$max", Value: bson.A{
					0,
					bson.D{{Key: "$subtract", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$commentCount", 0}}},
						1,
					}}},
				}},
			}},
		}}},
	}
	return r.updateCount(ctx, id, update)
}

func (r *HoagieRepository) SetCommentCount(ctx context.Context, id bson.ObjectID, count int64) error {
	return r.updateCount(ctx, id, bson.M{"$set": bson.M{"commentCount": count}})
}

func (r *HoagieRepository) updateCount(ctx context.Context, id bson.ObjectID, update any) error {
	res, err := r.ColHoagies.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return apperror.Internal("update comment count", err)
	}
	if res.MatchedCount == 0 {
		return hoagieNotFound(id)
	}
	return nil
}

// ListIDs returns every hoagie id, oldest first.
func (r *HoagieRepository) ListIDs(ctx context.Context) ([]bson.ObjectID, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := r.ColHoagies.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperror.Internal("list hoagie ids", err)
	}
	defer cur.Close(ctx)

	var ids []bson.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID bson.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, apperror.Internal("decode hoagie id", err)
		}
		ids = append(ids, row.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, apperror.Internal("iterate hoagie ids", err)
	}
	return ids, nil
}
