package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetProfileIDFromToken reads the acting profile id the auth middleware
// stored in c.Locals("profile_id").
// Returns 401 when not logged in, 400 when the value is malformed.
func GetProfileIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("profile_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "not logged in")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid profile id in token")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid profile id in token")
	}
}

// IsStaffFromToken reports whether the auth middleware flagged the actor
// as staff.
func IsStaffFromToken(c *fiber.Ctx) bool {
	v, ok := c.Locals("is_staff").(bool)
	return ok && v
}
