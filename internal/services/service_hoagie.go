package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/dto"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

// CommentCountSource counts the comment documents that reference a hoagie.
type CommentCountSource interface {
	CountByHoagie(ctx context.Context, hoagieID bson.ObjectID) (int64, error)
}

type HoagieService struct {
	Hoagies  HoagieRepository
	Users    UserRepository
	Comments CommentCountSource
	Now      func() time.Time
}

func NewHoagieService(hoagies HoagieRepository, users UserRepository, comments CommentCountSource) *HoagieService {
	return &HoagieService{Hoagies: hoagies, Users: users, Comments: comments, Now: time.Now}
}

func (s *HoagieService) Create(ctx context.Context, req dto.CreateHoagieReq) (*dto.HoagieResp, error) {
	creator, err := requireActor(ctx, s.Users, req.UserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.Validation("name must not be blank")
	}

	now := s.Now().UTC()
	h := &models.Hoagie{
		Name:          name,
		Ingredients:   req.Ingredients,
		Picture:       req.Picture,
		Creator:       creator.ID,
		Collaborators: []bson.ObjectID{},
		CommentCount:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Hoagies.Create(ctx, h); err != nil {
		return nil, err
	}

	resp := dto.NewHoagieResp(*h, map[bson.ObjectID]models.UserSummary{creator.ID: creator.Summary()})
	return &resp, nil
}

func (s *HoagieService) Get(ctx context.Context, id string) (*dto.HoagieResp, error) {
	h, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, h)
}

func (s *HoagieService) List(ctx context.Context, p models.PageQuery) (*dto.Page[dto.HoagieResp], error) {
	hoagies, total, err := s.Hoagies.List(ctx, p)
	if err != nil {
		return nil, err
	}

	var ids []bson.ObjectID
	for _, h := range hoagies {
		ids = append(ids, h.Creator)
	}
	users, err := s.Users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	page := &dto.Page[dto.HoagieResp]{
		Data:  make([]dto.HoagieResp, 0, len(hoagies)),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	for _, h := range hoagies {
		page.Data = append(page.Data, dto.NewHoagieResp(h, users))
	}
	return page, nil
}

// Update applies a partial update on behalf of userID, who must be the
// creator or a collaborator.
func (s *HoagieService) Update(ctx context.Context, id, userID string, upd models.HoagieUpdate) (*dto.HoagieResp, error) {
	actor, err := requireActor(ctx, s.Users, userID)
	if err != nil {
		return nil, err
	}
	h, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEdit(h, actor.ID) {
		return nil, apperror.PermissionDenied("Only the creator or collaborators can edit this hoagie")
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperror.Validation("name must not be blank")
		}
		upd.Name = &name
	}
	if upd.IsEmpty() {
		return s.populate(ctx, h)
	}

	updated, err := s.Hoagies.Update(ctx, h.ID, upd, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

func (s *HoagieService) AddCollaborator(ctx context.Context, id, collaboratorID, userID string) (*dto.HoagieResp, error) {
	h, collaborator, err := s.prepareCollaboratorChange(ctx, id, collaboratorID, userID,
		"Only the creator can add collaborators to this hoagie")
	if err != nil {
		return nil, err
	}
	if _, err := s.Users.FindByID(ctx, collaborator); err != nil {
		return nil, err
	}
	if h.IsCollaborator(collaborator) {
		return s.populate(ctx, h)
	}

	updated, err := s.Hoagies.AddCollaborator(ctx, h.ID, collaborator, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

func (s *HoagieService) RemoveCollaborator(ctx context.Context, id, collaboratorID, userID string) (*dto.HoagieResp, error) {
	h, collaborator, err := s.prepareCollaboratorChange(ctx, id, collaboratorID, userID,
		"Only the creator can remove collaborators")
	if err != nil {
		return nil, err
	}
	if !h.IsCollaborator(collaborator) {
		return s.populate(ctx, h)
	}

	updated, err := s.Hoagies.RemoveCollaborator(ctx, h.ID, collaborator, s.Now().UTC())
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, updated)
}

func (s *HoagieService) prepareCollaboratorChange(ctx context.Context, id, collaboratorID, userID, denied string) (*models.Hoagie, bson.ObjectID, error) {
	actor, err := requireActor(ctx, s.Users, userID)
	if err != nil {
		return nil, bson.NilObjectID, err
	}
	h, err := s.find(ctx, id)
	if err != nil {
		return nil, bson.NilObjectID, err
	}
	if !CanManageCollaborators(h, actor.ID) {
		return nil, bson.NilObjectID, apperror.PermissionDenied(denied)
	}
	collaborator, err := parseID("User", collaboratorID)
	if err != nil {
		return nil, bson.NilObjectID, err
	}
	return h, collaborator, nil
}

func (s *HoagieService) CommentCount(ctx context.Context, id string) (int64, error) {
	h, err := s.find(ctx, id)
	if err != nil {
		return 0, err
	}
	return h.CommentCount, nil
}

// ContributorCount is the creator plus every collaborator.
func (s *HoagieService) ContributorCount(ctx context.Context, id string) (int64, error) {
	h, err := s.find(ctx, id)
	if err != nil {
		return 0, err
	}
	return 1 + int64(len(h.Collaborators)), nil
}

func (s *HoagieService) IncrementCommentCount(ctx context.Context, id string) error {
	oid, err := parseID("Hoagie", id)
	if err != nil {
		return err
	}
	return s.Hoagies.IncrementCommentCount(ctx, oid)
}

func (s *HoagieService) DecrementCommentCount(ctx context.Context, id string) error {
	oid, err := parseID("Hoagie", id)
	if err != nil {
		return err
	}
	return s.Hoagies.DecrementCommentCount(ctx, oid)
}

// RecomputeCommentCount overwrites the cached count with the number of
// comments that actually reference the hoagie.
func (s *HoagieService) RecomputeCommentCount(ctx context.Context, id string) (int64, error) {
	oid, err := parseID("Hoagie", id)
	if err != nil {
		return 0, err
	}
	return s.recompute(ctx, oid)
}

func (s *HoagieService) recompute(ctx context.Context, id bson.ObjectID) (int64, error) {
	n, err := s.Comments.CountByHoagie(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.Hoagies.SetCommentCount(ctx, id, n); err != nil {
		return 0, err
	}
	return n, nil
}

// RecomputeAllCommentCounts repairs every hoagie and returns how many were
// visited. A hoagie deleted between listing and repair is skipped.
func (s *HoagieService) RecomputeAllCommentCounts(ctx context.Context) (int, error) {
	ids, err := s.Hoagies.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		if _, err := s.recompute(ctx, id); err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return repaired, err
		}
		repaired++
	}
	return repaired, nil
}

func (s *HoagieService) find(ctx context.Context, id string) (*models.Hoagie, error) {
	oid, err := parseID("Hoagie", id)
	if err != nil {
		return nil, err
	}
	return s.Hoagies.FindByID(ctx, oid)
}

func (s *HoagieService) populate(ctx context.Context, h *models.Hoagie) (*dto.HoagieResp, error) {
	ids := append([]bson.ObjectID{h.Creator}, h.Collaborators...)
	users, err := s.Users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	resp := dto.NewHoagieResp(*h, users)
	return &resp, nil
}
