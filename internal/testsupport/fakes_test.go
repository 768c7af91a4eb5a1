package testsupport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoagiehub/internal/models"
)

func TestPageOutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{3}, page(items, models.PageQuery{Page: 2, Limit: 2}))
	assert.Empty(t, page(items, models.PageQuery{Page: 5, Limit: 2}))
	// an overflowed skip comes through negative
	assert.Empty(t, page(items, models.PageQuery{Page: 1e17, Limit: 100}))
}

func TestUserStoreListWithHugePage(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.Create(context.Background(), &models.User{Name: "Ann", Email: "ann@example.com"}))

	users, total, err := s.List(context.Background(), models.PageQuery{Page: 1e17, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, users)
}
