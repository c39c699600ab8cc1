package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"job-portal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"nil", nil, ""},
		{"plain error is persistence", errors.New("boom"), apperror.KindPersistence},
		{"conflict", apperror.Conflict("dup"), apperror.KindConflict},
		{"wrapped expired", fmt.Errorf("apply: %w", apperror.Expired("closed")), apperror.KindExpired},
		{"validation", apperror.BadRequest("bad"), apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperror.KindOf(tt.err))
		})
	}
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, apperror.Expired("x").Code)
	assert.Equal(t, http.StatusConflict, apperror.Conflict("x").Code)
	assert.Equal(t, http.StatusNotFound, apperror.NotFound("x").Code)
	assert.Equal(t, http.StatusInternalServerError, apperror.Internal(errors.New("x")).Code)
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.Is(err, apperror.KindPersistence))
}
