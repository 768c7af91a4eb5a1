package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hoagiehub/dto"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/models"
)

type UserService struct {
	Users  UserRepository
	Tokens TokenIssuer
	Now    func() time.Time
}

func NewUserService(users UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{Users: users, Tokens: tokens, Now: time.Now}
}

func (s *UserService) Create(ctx context.Context, req dto.CreateUserReq) (*models.User, error) {
	now := s.Now().UTC()
	u := &models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     normalizeEmail(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Name == "" {
		return nil, apperror.Validation("name must not be blank")
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal("hash password", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login looks the user up by email. Accounts created without a password log
// in by email alone; accounts with one must present it.
func (s *UserService) Login(ctx context.Context, req dto.LoginReq) (*dto.LoginResp, error) {
	u, err := s.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}

	if u.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperror.PermissionDenied("Invalid credentials")
		}
		if err != nil {
			return nil, apperror.Internal("compare password", err)
		}
	}

	token, err := s.Tokens.Issue(u.ID.Hex())
	if err != nil {
		return nil, apperror.Internal("sign token", err)
	}
	return &dto.LoginResp{User: *u, AccessToken: token}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID("User", id)
	if err != nil {
		return nil, err
	}
	return s.Users.FindByID(ctx, oid)
}

func (s *UserService) List(ctx context.Context, p models.PageQuery) (*dto.Page[models.User], error) {
	users, total, err := s.Users.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return &dto.Page[models.User]{Data: users, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

func (s *UserService) Search(ctx context.Context, q string, p models.PageQuery) (*dto.Page[models.User], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("query parameter q is required")
	}

	users, total, err := s.Users.Search(ctx, q, p)
	if err != nil {
		return nil, err
	}
	return &dto.Page[models.User]{Data: users, Total: total, Page: p.Page, Limit: p.Limit}, nil
}

// RequireActor resolves the acting user of a mutation. An unknown actor is a
// bad request rather than a missing resource.
func (s *UserService) RequireActor(ctx context.Context, id string) (*models.User, error) {
	return requireActor(ctx, s.Users, id)
}

func requireActor(ctx context.Context, users UserRepository, id string) (*models.User, error) {
	invalid := apperror.Validation("Invalid user ID provided")

	oid, err := parseID("User", id)
	if err != nil {
		return nil, invalid
	}
	u, err := users.FindByID(ctx, oid)
	if apperror.IsNotFound(err) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
