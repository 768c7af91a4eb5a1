package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/models"
)

// Repositories report missing documents as apperror NotFound and storage
// failures as apperror Internal.

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, p models.PageQuery) ([]models.User, int64, error)
	Search(ctx context.Context, q string, p models.PageQuery) ([]models.User, int64, error)
	FindSummaries(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.UserSummary, error)
}

type HoagieRepository interface {
	Create(ctx context.Context, h *models.Hoagie) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Hoagie, error)
	List(ctx context.Context, p models.PageQuery) ([]models.Hoagie, int64, error)
	Update(ctx context.Context, id bson.ObjectID, upd models.HoagieUpdate, now time.Time) (*models.Hoagie, error)
	AddCollaborator(ctx context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error)
	RemoveCollaborator(ctx context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error)
	IncrementCommentCount(ctx context.Context, id bson.ObjectID) error
	DecrementCommentCount(ctx context.Context, id bson.ObjectID) error
	SetCommentCount(ctx context.Context, id bson.ObjectID, count int64) error
	ListIDs(ctx context.Context) ([]bson.ObjectID, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Comment, error)
	ListByHoagie(ctx context.Context, hoagieID bson.ObjectID, p models.PageQuery) ([]models.Comment, int64, error)
	DeleteByAuthor(ctx context.Context, id, userID bson.ObjectID) (*models.Comment, error)
	CountByHoagie(ctx context.Context, hoagieID bson.ObjectID) (int64, error)
}

// CommentCounter is the slice of the hoagie service the comment service needs
// to keep cached counts in step.
type CommentCounter interface {
	IncrementCommentCount(ctx context.Context, hoagieID string) error
	DecrementCommentCount(ctx context.Context, hoagieID string) error
}

// TokenIssuer signs access tokens for logged-in users.
type TokenIssuer interface {
	Issue(uid string) (string, error)
}
