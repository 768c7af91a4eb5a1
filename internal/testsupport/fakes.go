// Package testsupport provides in-memory stand-ins for the Mongo
// repositories. They follow the same ordering, paging and error contracts.
package testsupport

import (
	"bytes"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

func newestFirst[T any](items []T, created func(T) time.Time, id func(T) bson.ObjectID) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		a, b := id(items[i]), id(items[j])
		return bytes.Compare(a[:], b[:]) > 0
	})
}

func page[T any](items []T, p models.PageQuery) []T {
	start := p.Skip()
	if start < 0 || start >= int64(len(items)) {
		return []T{}
	}
	end := start + p.Limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}

type UserStore struct {
	mu    sync.Mutex
	Users map[bson.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{Users: map[bson.ObjectID]models.User{}}
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.Users {
		if existing.Email == u.Email {
			return apperror.Validation("Duplicate key error: email already registered")
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	s.Users[u.ID] = *u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.Users[id]
	if !ok {
		return nil, apperror.NotFound("User", id.Hex())
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User with email "+email, "")
}

func (s *UserStore) List(_ context.Context, p models.PageQuery) ([]models.User, int64, error) {
	return s.filter(func(models.User) bool { return true }, p)
}

func (s *UserStore) Search(_ context.Context, q string, p models.PageQuery) ([]models.User, int64, error) {
	q = strings.ToLower(q)
	return s.filter(func(u models.User) bool {
		return strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q)
	}, p)
}

func (s *UserStore) filter(keep func(models.User) bool, p models.PageQuery) ([]models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.User
	for _, u := range s.Users {
		if keep(u) {
			all = append(all, u)
		}
	}
	newestFirst(all, func(u models.User) time.Time { return u.CreatedAt }, func(u models.User) bson.ObjectID { return u.ID })
	return page(all, p), int64(len(all)), nil
}

func (s *UserStore) FindSummaries(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]models.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]models.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := s.Users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

// HoagieStore mirrors the Mongo hoagie repository. Setting IncrementErr or
// DecrementErr makes the matching counter update fail.
type HoagieStore struct {
	mu           sync.Mutex
	Hoagies      map[bson.ObjectID]models.Hoagie
	IncrementErr error
	DecrementErr error
}

func NewHoagieStore() *HoagieStore {
	return &HoagieStore{Hoagies: map[bson.ObjectID]models.Hoagie{}}
}

func (s *HoagieStore) Create(_ context.Context, h *models.Hoagie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID.IsZero() {
		h.ID = bson.NewObjectID()
	}
	if h.Collaborators == nil {
		h.Collaborators = []bson.ObjectID{}
	}
	s.Hoagies[h.ID] = cloneHoagie(*h)
	return nil
}

func (s *HoagieStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Hoagie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.Hoagies[id]
	if !ok {
		return nil, apperror.NotFound("Hoagie", id.Hex())
	}
	h = cloneHoagie(h)
	return &h, nil
}

func (s *HoagieStore) List(_ context.Context, p models.PageQuery) ([]models.Hoagie, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Hoagie, 0, len(s.Hoagies))
	for _, h := range s.Hoagies {
		all = append(all, cloneHoagie(h))
	}
	newestFirst(all, func(h models.Hoagie) time.Time { return h.CreatedAt }, func(h models.Hoagie) bson.ObjectID { return h.ID })
	return page(all, p), int64(len(all)), nil
}

func (s *HoagieStore) Update(_ context.Context, id bson.ObjectID, upd models.HoagieUpdate, now time.Time) (*models.Hoagie, error) {
	return s.mutate(id, func(h *models.Hoagie) error {
		if upd.Name != nil {
			h.Name = *upd.Name
		}
		if upd.Ingredients != nil {
			h.Ingredients = slices.Clone(upd.Ingredients)
		}
		if upd.Picture != nil {
			h.Picture = *upd.Picture
		}
		h.UpdatedAt = now
		return nil
	})
}

func (s *HoagieStore) AddCollaborator(_ context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error) {
	return s.mutate(id, func(h *models.Hoagie) error {
		if !slices.Contains(h.Collaborators, userID) {
			h.Collaborators = append(h.Collaborators, userID)
		}
		h.UpdatedAt = now
		return nil
	})
}

func (s *HoagieStore) RemoveCollaborator(_ context.Context, id, userID bson.ObjectID, now time.Time) (*models.Hoagie, error) {
	return s.mutate(id, func(h *models.Hoagie) error {
		h.Collaborators = slices.DeleteFunc(h.Collaborators, func(c bson.ObjectID) bool { return c == userID })
		h.UpdatedAt = now
		return nil
	})
}

func (s *HoagieStore) IncrementCommentCount(_ context.Context, id bson.ObjectID) error {
	_, err := s.mutate(id, func(h *models.Hoagie) error {
		if s.IncrementErr != nil {
			return s.IncrementErr
		}
		h.CommentCount++
		return nil
	})
	return err
}

func (s *HoagieStore) DecrementCommentCount(_ context.Context, id bson.ObjectID) error {
	_, err := s.mutate(id, func(h *models.Hoagie) error {
		if s.DecrementErr != nil {
			return s.DecrementErr
		}
		h.CommentCount = max(0, h.CommentCount-1)
		return nil
	})
	return err
}

func (s *HoagieStore) SetCommentCount(_ context.Context, id bson.ObjectID, count int64) error {
	_, err := s.mutate(id, func(h *models.Hoagie) error {
		h.CommentCount = count
		return nil
	})
	return err
}

func (s *HoagieStore) ListIDs(_ context.Context) ([]bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]bson.ObjectID, 0, len(s.Hoagies))
	for id := range s.Hoagies {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b bson.ObjectID) int { return bytes.Compare(a[:], b[:]) })
	return ids, nil
}

func (s *HoagieStore) mutate(id bson.ObjectID, fn func(*models.Hoagie) error) (*models.Hoagie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.Hoagies[id]
	if !ok {
		return nil, apperror.NotFound("Hoagie", id.Hex())
	}
	h = cloneHoagie(h)
	if err := fn(&h); err != nil {
		return nil, err
	}
	s.Hoagies[id] = h
	out := cloneHoagie(h)
	return &out, nil
}

func cloneHoagie(h models.Hoagie) models.Hoagie {
	h.Ingredients = slices.Clone(h.Ingredients)
	h.Collaborators = slices.Clone(h.Collaborators)
	if h.Collaborators == nil {
		h.Collaborators = []bson.ObjectID{}
	}
	return h
}

// CommentStore mirrors the Mongo comment repository. Setting FindErr makes
// FindByID fail.
type CommentStore struct {
	mu       sync.Mutex
	Comments map[bson.ObjectID]models.Comment
	FindErr  error
}

func NewCommentStore() *CommentStore {
	return &CommentStore{Comments: map[bson.ObjectID]models.Comment{}}
}

func (s *CommentStore) Create(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	s.Comments[c.ID] = *c
	return nil
}

func (s *CommentStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	c, ok := s.Comments[id]
	if !ok {
		return nil, apperror.NotFound("Comment", id.Hex())
	}
	return &c, nil
}

func (s *CommentStore) ListByHoagie(_ context.Context, hoagieID bson.ObjectID, p models.PageQuery) ([]models.Comment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.Comment
	for _, c := range s.Comments {
		if c.Hoagie == hoagieID {
			all = append(all, c)
		}
	}
	newestFirst(all, func(c models.Comment) time.Time { return c.CreatedAt }, func(c models.Comment) bson.ObjectID { return c.ID })
	return page(all, p), int64(len(all)), nil
}

func (s *CommentStore) DeleteByAuthor(_ context.Context, id, userID bson.ObjectID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Comments[id]
	if !ok || c.User != userID {
		return nil, apperror.NotFound("Comment", id.Hex())
	}
	delete(s.Comments, id)
	return &c, nil
}

func (s *CommentStore) CountByHoagie(_ context.Context, hoagieID bson.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.Comments {
		if c.Hoagie == hoagieID {
			n++
		}
	}
	return n, nil
}
