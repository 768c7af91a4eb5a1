package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hoagiehub/database"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

type UserRepository struct {
	ColUsers *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{ColUsers: db.Collection(database.CollectionUsers)}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if _, err := r.ColUsers.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Validation("Duplicate key error: email already registered")
		}
		return apperror.Internal("insert user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.ColUsers, bson.M{"_id": id}, apperror.NotFound("User", id.Hex()))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.ColUsers, bson.M{"email": email}, apperror.NotFound("User with email "+email, ""))
}

func (r *UserRepository) List(ctx context.Context, p models.PageQuery) ([]models.User, int64, error) {
	return findPage[models.User](ctx, r.ColUsers, bson.M{}, p)
}

// Search matches q as a literal, case-insensitive substring of name or email.
func (r *UserRepository) Search(ctx context.Context, q string, p models.PageQuery) ([]models.User, int64, error) {
	return findPage[models.User](ctx, r.ColUsers, SearchFilter(q), p)
}

func SearchFilter(q string) bson.M {
	re := bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"email": re},
	}}
}

// FindSummaries loads {_id, name, email} for every id in one round trip.
// Unknown ids are simply absent from the result.
func (r *UserRepository) FindSummaries(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.UserSummary, error) {
	out := make(map[bson.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cur, err := r.ColUsers.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, apperror.Internal("find user summaries", err)
	}
	defer cur.Close(ctx)

	var rows []models.UserSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperror.Internal("decode user summaries", err)
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}
