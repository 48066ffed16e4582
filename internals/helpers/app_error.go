package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Domain error taxonomy
=================================*/

// AppError is the typed error every core command returns on failure.
// Controllers never build these ad hoc; they use the constructors below
// so the error_code stays stable for API consumers.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

func ErrNotFound(msg string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Code: "NOT_FOUND", Message: msg}
}

func ErrPermissionDenied(msg string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Code: "PERMISSION_DENIED", Message: msg}
}

func ErrInvalidState(msg string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Code: "INVALID_STATE", Message: msg}
}

func ErrDuplicateTransaction(msg string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Code: "DUPLICATE_TRANSACTION", Message: msg}
}

func ErrSequenceOverflow(msg string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Code: "SEQUENCE_OVERFLOW", Message: msg}
}

func ErrExpiredToken(msg string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "EXPIRED_TOKEN", Message: msg}
}

func ErrCodeMismatch(msg string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "CODE_MISMATCH", Message: msg}
}

func ErrBadRequest(msg string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Code: "BAD_REQUEST", Message: msg}
}

// IsUniqueViolation sniffs a storage error for a unique-constraint hit.
// Postgres reports SQLSTATE 23505; gorm surfaces it as a wrapped pgconn
// error, so matching on the message keeps this driver-agnostic.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "23505")
}

// AppErrorHandler is the fiber ErrorHandler: AppError and *fiber.Error
// keep their status/code, anything else becomes a 500.
func AppErrorHandler(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		return c.Status(ae.Status).JSON(ErrorResponse{
			Success:   false,
			Message:   ae.Message,
			ErrorCode: ae.Code,
		})
	}
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
