package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/dto"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

type CommentService struct {
	Comments CommentRepository
	Hoagies  HoagieRepository
	Users    UserRepository
	Counter  CommentCounter
	Log      *slog.Logger
	Now      func() time.Time
}

func NewCommentService(comments CommentRepository, hoagies HoagieRepository, users UserRepository, counter CommentCounter) *CommentService {
	return &CommentService{
		Comments: comments,
		Hoagies:  hoagies,
		Users:    users,
		Counter:  counter,
		Log:      slog.Default(),
		Now:      time.Now,
	}
}

// Create stores the comment and then bumps the hoagie's cached count. The two
// writes are not atomic: if the increment fails the comment is kept, the
// failure is logged, and RecomputeCommentCount repairs the drift.
func (s *CommentService) Create(ctx context.Context, req dto.CreateCommentReq) (*dto.CommentResp, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperror.Validation("text must not be blank")
	}

	author, err := requireActor(ctx, s.Users, req.UserID)
	if err != nil {
		return nil, err
	}
	hoagieID, err := parseID("Hoagie", req.HoagieID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Hoagies.FindByID(ctx, hoagieID); err != nil {
		return nil, err
	}

	now := s.Now().UTC()
	c := &models.Comment{
		Text:      text,
		User:      author.ID,
		Hoagie:    hoagieID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}

	if err := s.Counter.IncrementCommentCount(ctx, hoagieID.Hex()); err != nil {
		s.Log.Warn("comment count increment failed",
			"hoagie", hoagieID.Hex(), "comment", c.ID.Hex(), "error", err)
	}

	resp := dto.NewCommentResp(*c, map[bson.ObjectID]models.UserSummary{author.ID: author.Summary()})
	return &resp, nil
}

func (s *CommentService) ListByHoagie(ctx context.Context, hoagieID string, p models.PageQuery) (*dto.Page[dto.CommentResp], error) {
	oid, err := parseID("Hoagie", hoagieID)
	if err != nil {
		return nil, err
	}

	comments, total, err := s.Comments.ListByHoagie(ctx, oid, p)
	if err != nil {
		return nil, err
	}

	var ids []bson.ObjectID
	for _, c := range comments {
		ids = append(ids, c.User)
	}
	users, err := s.Users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	page := &dto.Page[dto.CommentResp]{
		Data:  make([]dto.CommentResp, 0, len(comments)),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	for _, c := range comments {
		page.Data = append(page.Data, dto.NewCommentResp(c, users))
	}
	return page, nil
}

// Delete removes a comment written by userID and decrements the cached count.
// A comment that exists but belongs to someone else yields PermissionDenied;
// either way a failed delete leaves the count untouched.
func (s *CommentService) Delete(ctx context.Context, id, userID string) (*models.Comment, error) {
	oid, err := parseID("Comment", id)
	if err != nil {
		return nil, err
	}
	author, err := parseID("User", userID)
	if err != nil {
		return nil, apperror.Validation("Invalid user ID provided")
	}

	c, err := s.Comments.DeleteByAuthor(ctx, oid, author)
	if apperror.IsNotFound(err) {
		_, ferr := s.Comments.FindByID(ctx, oid)
		switch {
		case ferr == nil:
			return nil, apperror.PermissionDenied("Only the comment author can delete it")
		case !apperror.IsNotFound(ferr):
			return nil, ferr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := s.Counter.DecrementCommentCount(ctx, c.Hoagie.Hex()); err != nil {
		s.Log.Warn("comment count decrement failed",
			"hoagie", c.Hoagie.Hex(), "comment", c.ID.Hex(), "error", err)
	}
	return c, nil
}
