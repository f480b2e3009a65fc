package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/quizengine/internal/errors"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"not found", errors.NewNotFoundError("attempt", "a1"), errors.ErrCodeNotFound, 404},
		{"validation", errors.NewValidationError("mode", "bad"), errors.ErrCodeValidation, 400},
		{"invalid state", errors.NewInvalidStateError("attempt", "completed"), errors.ErrCodeInvalidState, 409},
		{"bad request", errors.NewBadRequestError("nope"), errors.ErrCodeBadRequest, 400},
		{"internal", errors.NewInternalError(stderrors.New("boom")), errors.ErrCodeInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Contains(t, tt.err.Error(), tt.code)
		})
	}
}

func TestIs_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", errors.NewInvalidStateError("attempt", "completed"))

	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))
	assert.False(t, errors.Is(err, errors.ErrCodeNotFound))
	assert.False(t, errors.Is(stderrors.New("plain"), errors.ErrCodeInternal))
}

func TestAs_WrapsUnknownErrors(t *testing.T) {
	cause := stderrors.New("disk full")
	appErr := errors.As(cause)

	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, cause)

	nf := errors.NewNotFoundError("quiz", "q1")
	assert.Same(t, nf, errors.As(nf))
}
