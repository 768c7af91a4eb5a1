package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoagiehub/config"
	"hoagiehub/dto"
	"hoagiehub/internal/auth"
	"hoagiehub/internal/models"
	"hoagiehub/internal/services"
	"hoagiehub/internal/testsupport"
)

type harness struct {
	app     *fiber.App
	tokens  *auth.Tokens
	users   *services.UserService
	hoagies *services.HoagieService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := testsupport.NewClock()
	userStore := testsupport.NewUserStore()
	hoagieStore := testsupport.NewHoagieStore()
	commentStore := testsupport.NewCommentStore()

	tokens := auth.NewTokens("routes-secret", time.Hour)
	userSvc := services.NewUserService(userStore, tokens)
	userSvc.Now = clock.Now
	hoagieSvc := services.NewHoagieService(hoagieStore, userStore, commentStore)
	hoagieSvc.Now = clock.Now
	commentSvc := services.NewCommentService(commentStore, hoagieStore, userStore, hoagieSvc)
	commentSvc.Now = clock.Now

	app := NewApp(Deps{
		Config: config.Config{
			CORSOrigins:    "*",
			RequestTimeout: time.Second,
			RateWindow:     time.Minute,
			RateLimits:     config.DefaultRateLimits(),
		},
		Users:     userSvc,
		Hoagies:   hoagieSvc,
		Comments:  commentSvc,
		Tokens:    tokens,
		AccessLog: io.Discard,
	})
	return &harness{app: app, tokens: tokens, users: userSvc, hoagies: hoagieSvc}
}

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (h *harness) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := h.users.Create(context.Background(), dto.CreateUserReq{Name: name, Email: email})
	require.NoError(t, err)
	return u
}

func (h *harness) hoagie(t *testing.T, creator *models.User) *dto.HoagieResp {
	t.Helper()
	hg, err := h.hoagies.Create(context.Background(), dto.CreateHoagieReq{
		Name:        "Italian",
		Ingredients: []string{"Salami", "Capicola"},
		UserID:      creator.ID.Hex(),
	})
	require.NoError(t, err)
	return hg
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/v1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", decode[map[string]string](t, resp)["status"])

	resp = h.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCreateUserAndDuplicateEmail(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/v1/users", map[string]string{"name": "Ann", "email": "Ann@Example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	u := decode[models.User](t, resp)
	assert.Equal(t, "ann@example.com", u.Email)

	resp = h.do(t, http.MethodPost, "/v1/users", map[string]string{"name": "Ann 2", "email": "ann@example.com"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	assert.Equal(t, "Validation Error", e.Error)
	assert.Equal(t, "/v1/users", e.Path)
	assert.Contains(t, e.Message, "Duplicate key error")
	_, err := time.Parse(time.RFC3339, e.Timestamp)
	assert.NoError(t, err)
}

func TestValidationErrors(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")

	resp := h.do(t, http.MethodPost, "/v1/hoagies", map[string]any{
		"name":        "Empty",
		"ingredients": []string{},
		"userId":      ann.ID.Hex(),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Message, "ingredients")

	resp = h.do(t, http.MethodPost, "/v1/comments", map[string]any{
		"text":     "hi",
		"hoagieId": "not-an-id",
		"userId":   ann.ID.Hex(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateHoagieStatusCodes(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")
	bob := h.user(t, "Bob", "bob@example.com")
	hg := h.hoagie(t, ann)

	name := "Renamed"
	body := dto.UpdateHoagieReq{Name: &name}

	resp := h.do(t, http.MethodPatch, "/v1/hoagies/"+hg.ID.Hex()+"/user/"+bob.ID.Hex(), body)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Permission Denied", decode[dto.ErrorResponse](t, resp).Error)

	resp = h.do(t, http.MethodPatch, "/v1/hoagies/"+bob.ID.Hex()+"/user/"+ann.ID.Hex(), body)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Resource Not Found", decode[dto.ErrorResponse](t, resp).Error)

	resp = h.do(t, http.MethodPatch, "/v1/hoagies/"+hg.ID.Hex()+"/user/"+ann.ID.Hex(), body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", decode[dto.HoagieResp](t, resp).Name)
}

func TestTokenMustMatchActingUser(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")
	bob := h.user(t, "Bob", "bob@example.com")
	hg := h.hoagie(t, ann)

	bobToken, err := h.tokens.Issue(bob.ID.Hex())
	require.NoError(t, err)

	path := "/v1/hoagies/" + hg.ID.Hex() + "/collaborators/" + bob.ID.Hex() + "/user/" + ann.ID.Hex()
	resp := h.do(t, http.MethodPost, path, nil, fiber.HeaderAuthorization, "Bearer "+bobToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodPost, path, nil, fiber.HeaderAuthorization, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	annToken, err := h.tokens.Issue(ann.ID.Hex())
	require.NoError(t, err)
	resp = h.do(t, http.MethodPost, path, nil, fiber.HeaderAuthorization, "Bearer "+annToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.HoagieResp](t, resp).Collaborators, 1)
}

func TestLoginReturnsUsableToken(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")

	resp := h.do(t, http.MethodPost, "/v1/users/login", map[string]string{"email": "ANN@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResp](t, resp)
	assert.Equal(t, ann.ID, login.User.ID)

	uid, err := h.tokens.Parse(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, ann.ID.Hex(), uid)

	resp = h.do(t, http.MethodPost, "/v1/users/login", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRateLimitPerBucket(t *testing.T) {
	h := newHarness(t)

	limit := config.DefaultRateLimits()[config.BucketUserCreation]
	for i := 0; i < limit; i++ {
		resp := h.do(t, http.MethodPost, "/v1/users", map[string]string{
			"name":  "User",
			"email": "user" + string(rune('a'+i)) + "@example.com",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := h.do(t, http.MethodPost, "/v1/users", map[string]string{"name": "Late", "email": "late@example.com"})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too Many Requests", decode[dto.ErrorResponse](t, resp).Error)

	// other buckets keep their own budget
	resp = h.do(t, http.MethodPost, "/v1/users/login", map[string]string{"email": "usera@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPaginationQuery(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		h.user(t, "User", "u"+string(rune('a'+i))+"@example.com")
	}

	resp := h.do(t, http.MethodGet, "/v1/users?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.Page[models.User]](t, resp)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.Page)
	assert.Len(t, page.Data, 1)

	resp = h.do(t, http.MethodGet, "/v1/users?limit=500", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(config.MaxLimit), decode[dto.Page[models.User]](t, resp).Limit)

	for _, q := range []string{"page=0", "limit=0", "page=abc", "page=100000000000000000&limit=100"} {
		resp = h.do(t, http.MethodGet, "/v1/users?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestCommentLifecycleKeepsCount(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")
	bob := h.user(t, "Bob", "bob@example.com")
	hg := h.hoagie(t, ann)

	resp := h.do(t, http.MethodPost, "/v1/comments", map[string]string{
		"text":     "Needs more oil",
		"hoagieId": hg.ID.Hex(),
		"userId":   bob.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	com := decode[dto.CommentResp](t, resp)
	assert.Equal(t, "Bob", com.User.Name)

	count := func() int64 {
		resp := h.do(t, http.MethodGet, "/v1/hoagies/"+hg.ID.Hex()+"/comment-count", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decode[dto.CountResponse](t, resp).Count
	}
	assert.Equal(t, int64(1), count())

	resp = h.do(t, http.MethodDelete, "/v1/comments/"+com.ID.Hex(), map[string]string{"userId": ann.ID.Hex()})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, int64(1), count())

	resp = h.do(t, http.MethodGet, "/v1/comments/hoagie/"+hg.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.Page[dto.CommentResp]](t, resp).Data, 1)

	resp = h.do(t, http.MethodDelete, "/v1/comments/"+com.ID.Hex(), map[string]string{"userId": bob.ID.Hex()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), count())

	resp = h.do(t, http.MethodDelete, "/v1/comments/"+com.ID.Hex(), map[string]string{"userId": bob.ID.Hex()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecalculateEndpoints(t *testing.T) {
	h := newHarness(t)
	ann := h.user(t, "Ann", "ann@example.com")
	hg := h.hoagie(t, ann)
	h.hoagie(t, ann)

	resp := h.do(t, http.MethodPost, "/v1/hoagies/admin/recalculate-comment-counts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decode[dto.RecomputeResponse](t, resp)
	assert.NotEmpty(t, all.Message)
	assert.Equal(t, 2, all.Count)

	resp = h.do(t, http.MethodPost, "/v1/hoagies/admin/"+hg.ID.Hex()+"/recalculate-comment-count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), decode[dto.CountResponse](t, resp).Count)

	resp = h.do(t, http.MethodGet, "/v1/hoagies/"+hg.ID.Hex()+"/contributor-count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), decode[dto.CountResponse](t, resp).Count)
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
	assert.Equal(t, "/v1/nope", e.Path)
}
