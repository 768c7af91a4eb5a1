package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoagiehub/internal/apperror"
)

type stubParser map[string]string

func (s stubParser) Parse(token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", errors.New("bad token")
}

func newApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.SendStatus(fe.Code)
			}
			return c.SendStatus(apperror.KindOf(err).Status())
		},
	})
}

func get(t *testing.T, app *fiber.App, path, auth string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTUidOnly(t *testing.T) {
	app := newApp()
	app.Use(JWTUidOnly(stubParser{"good": "u1"}))
	app.Get("/", func(c *fiber.Ctx) error {
		uid, _ := UIDFromLocals(c)
		return c.SendString(uid)
	})

	assert.Equal(t, http.StatusOK, get(t, app, "/", "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, "/", "Bearer good").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/", "Bearer nope").StatusCode)
	// non-bearer schemes are ignored
	assert.Equal(t, http.StatusOK, get(t, app, "/", "Basic abc").StatusCode)
}

func TestActingUser(t *testing.T) {
	app := newApp()
	app.Use(JWTUidOnly(stubParser{"good": "u1"}))
	app.Get("/things/user/:userId", ActingUser("userId"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, get(t, app, "/things/user/u1", "Bearer good").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, app, "/things/user/u2", "Bearer good").StatusCode)
	assert.Equal(t, http.StatusNoContent, get(t, app, "/things/user/u2", "").StatusCode)
}

func TestRateLimitBucketsAreIndependent(t *testing.T) {
	app := newApp()
	app.Get("/a", RateLimit("a", 2, time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	app.Get("/b", RateLimit("b", 1, time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(t, app, "/a", "").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, app, "/a", "").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, app, "/a", "").StatusCode)

	assert.Equal(t, http.StatusOK, get(t, app, "/b", "").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, app, "/b", "").StatusCode)
}

func TestRequestContextHasDeadline(t *testing.T) {
	app := newApp()
	app.Use(RequestContext(time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		if _, ok := c.UserContext().Deadline(); !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, get(t, app, "/", "").StatusCode)
}
