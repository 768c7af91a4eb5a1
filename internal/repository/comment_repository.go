package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hoagiehub/database"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

type CommentRepository struct {
	ColComments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{ColComments: db.Collection(database.CollectionComments)}
}

func commentNotFound(id bson.ObjectID) *apperror.Error {
	return apperror.NotFound("Comment", id.Hex())
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	if _, err := r.ColComments.InsertOne(ctx, c); err != nil {
		return apperror.Internal("insert comment", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error) {
	return findOne[models.Comment](ctx, r.ColComments, bson.M{"_id": id}, commentNotFound(id))
}

func (r *CommentRepository) ListByHoagie(ctx context.Context, hoagieID bson.ObjectID, p models.PageQuery) ([]models.Comment, int64, error) {
	return findPage[models.Comment](ctx, r.ColComments, bson.M{"hoagie": hoagieID}, p)
}

// DeleteByAuthor removes the comment only if userID wrote it. The author check
// and the delete are one atomic FindOneAndDelete; a miss is reported as
// NotFound and the caller decides whether it was really a permission problem.
func (r *CommentRepository) DeleteByAuthor(ctx context.Context, id, userID bson.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := r.ColComments.FindOneAndDelete(ctx, bson.M{"_id": id, "user": userID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, commentNotFound(id)
		}
		return nil, apperror.Internal("delete comment", err)
	}
	return &c, nil
}

func (r *CommentRepository) CountByHoagie(ctx context.Context, hoagieID bson.ObjectID) (int64, error) {
	n, err := r.ColComments.CountDocuments(ctx, bson.M{"hoagie": hoagieID})
	if err != nil {
		return 0, apperror.Internal("count comments", err)
	}
	return n, nil
}
