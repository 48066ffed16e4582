package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{ErrNotFound("x"), fiber.StatusNotFound, "NOT_FOUND"},
		{ErrPermissionDenied("x"), fiber.StatusForbidden, "PERMISSION_DENIED"},
		{ErrInvalidState("x"), fiber.StatusConflict, "INVALID_STATE"},
		{ErrDuplicateTransaction("x"), fiber.StatusConflict, "DUPLICATE_TRANSACTION"},
		{ErrSequenceOverflow("x"), fiber.StatusConflict, "SEQUENCE_OVERFLOW"},
		{ErrExpiredToken("x"), fiber.StatusBadRequest, "EXPIRED_TOKEN"},
		{ErrCodeMismatch("x"), fiber.StatusBadRequest, "CODE_MISMATCH"},
		{ErrBadRequest("x"), fiber.StatusBadRequest, "BAD_REQUEST"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.wantStatus, tc.err.Status, tc.wantCode)
		assert.Equal(t, tc.wantCode, tc.err.Code)
		assert.Equal(t, "x", tc.err.Error())
	}
}

func TestAppErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while approving: %w", ErrSequenceOverflow("bucket full"))

	var ae *AppError
	assert.True(t, errors.As(wrapped, &ae))
	assert.Equal(t, "SEQUENCE_OVERFLOW", ae.Code)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "uq_payment_transaction" (SQLSTATE 23505)`)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: payments.payment_transaction_id")))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
