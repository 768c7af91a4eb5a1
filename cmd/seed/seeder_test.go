package main

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoagiehub/internal/auth"
	"hoagiehub/internal/models"
	"hoagiehub/internal/services"
	"hoagiehub/internal/testsupport"
)

func TestSeederCreatesUsersAndHoagies(t *testing.T) {
	users := testsupport.NewUserStore()
	hoagies := testsupport.NewHoagieStore()
	comments := testsupport.NewCommentStore()

	s := &seeder{
		Users:   services.NewUserService(users, auth.NewTokens("seed", 0)),
		Hoagies: services.NewHoagieService(hoagies, users, comments),
		Rand:    rand.New(rand.NewPCG(1, 2)),
	}

	nu, nh, err := s.Run(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, nu)
	assert.Equal(t, 21, nh)

	list, total, err := hoagies.List(context.Background(), models.PageQuery{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	for _, h := range list {
		assert.NotEmpty(t, h.Ingredients)
		assert.Contains(t, hoagieImages, h.Picture)
		assert.Zero(t, h.CommentCount)
	}

	_, _, err = s.Run(context.Background(), 1, 0)
	assert.Error(t, err, "sample emails are unique")
}

func TestSampleUserNames(t *testing.T) {
	assert.Equal(t, "Alice", firstName(sampleUser(0).Name))
	assert.Equal(t, "user6@example.com", sampleUser(5).Email)
}
