package apperrors_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/athena_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"validation", apperrors.Validationf("amount %s is negative", "-1.00"), apperrors.ErrValidation, "validation error: amount -1.00 is negative"},
		{"conflict", apperrors.Conflictf("entry %s is %s", "e1", "POSTED"), apperrors.ErrConflict, "conflict: entry e1 is POSTED"},
		{"not found", apperrors.NotFoundf("account %s", "a1"), apperrors.ErrNotFound, "resource not found: account a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := apperrors.Conflictf("serialization failure")
	err := apperrors.NewAppError(500, "failed to commit transaction", cause)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "failed to commit transaction: conflict: serialization failure", err.Error())

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)

	bare := apperrors.NewAppError(400, "bad token", nil)
	assert.Equal(t, "bad token", bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}
