package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsStayDistinct(t *testing.T) {
	nf := NotFound("Hoagie", "abc")
	pd := PermissionDenied("")

	assert.True(t, IsNotFound(nf))
	assert.False(t, IsPermissionDenied(nf))
	assert.True(t, IsPermissionDenied(pd))
	assert.False(t, IsNotFound(pd))

	assert.Equal(t, "Hoagie with ID abc not found", nf.Error())
	assert.Equal(t, "You do not have permission to perform this action", pd.Error())
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("loading: %w", Validation("bad page"))

	assert.True(t, IsValidation(err))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal("insert user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "insert user: socket closed", err.Error())
}

func TestStatusAndLabel(t *testing.T) {
	cases := map[Kind]struct {
		status int
		label  string
	}{
		KindNotFound:         {http.StatusNotFound, "Resource Not Found"},
		KindPermissionDenied: {http.StatusForbidden, "Permission Denied"},
		KindValidation:       {http.StatusBadRequest, "Validation Error"},
		KindRateLimited:      {http.StatusTooManyRequests, "Too Many Requests"},
		KindInternal:         {http.StatusInternalServerError, "Server Error"},
	}
	for kind, want := range cases {
		assert.Equal(t, want.status, kind.Status())
		assert.Equal(t, want.label, kind.Label())
	}
}
