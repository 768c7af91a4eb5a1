package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hoagiehub/dto"
	"hoagiehub/internal/auth"
	"hoagiehub/internal/models"
	"hoagiehub/internal/testsupport"
)

type testEnv struct {
	users    *testsupport.UserStore
	hoagies  *testsupport.HoagieStore
	comments *testsupport.CommentStore

	userSvc    *UserService
	hoagieSvc  *HoagieService
	commentSvc *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := testsupport.NewClock()
	e := &testEnv{
		users:    testsupport.NewUserStore(),
		hoagies:  testsupport.NewHoagieStore(),
		comments: testsupport.NewCommentStore(),
	}
	e.userSvc = NewUserService(e.users, auth.NewTokens("test-secret", time.Hour))
	e.userSvc.Now = clock.Now
	e.hoagieSvc = NewHoagieService(e.hoagies, e.users, e.comments)
	e.hoagieSvc.Now = clock.Now
	e.commentSvc = NewCommentService(e.comments, e.hoagies, e.users, e.hoagieSvc)
	e.commentSvc.Now = clock.Now
	return e
}

func (e *testEnv) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := e.userSvc.Create(context.Background(), dto.CreateUserReq{Name: name, Email: email})
	require.NoError(t, err)
	return u
}

func (e *testEnv) hoagie(t *testing.T, creator *models.User, name string) *dto.HoagieResp {
	t.Helper()
	h, err := e.hoagieSvc.Create(context.Background(), dto.CreateHoagieReq{
		Name:        name,
		Ingredients: []string{"Ham", "Provolone"},
		UserID:      creator.ID.Hex(),
	})
	require.NoError(t, err)
	return h
}

func (e *testEnv) comment(t *testing.T, author *models.User, h *dto.HoagieResp, text string) *dto.CommentResp {
	t.Helper()
	c, err := e.commentSvc.Create(context.Background(), dto.CreateCommentReq{
		Text:     text,
		HoagieID: h.ID.Hex(),
		UserID:   author.ID.Hex(),
	})
	require.NoError(t, err)
	return c
}

func (e *testEnv) cachedCount(t *testing.T, h *dto.HoagieResp) int64 {
	t.Helper()
	n, err := e.hoagieSvc.CommentCount(context.Background(), h.ID.Hex())
	require.NoError(t, err)
	return n
}
