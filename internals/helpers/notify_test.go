package helper

import (
	"testing"

	"github.com/google/uuid"
)

// Controllers hand Notify the raw uuid straight off a model; this pins
// the signature so those call sites keep compiling.
func TestNotifyAcceptsProfileUUID(t *testing.T) {
	Notify(uuid.New(), "registration.created", map[string]any{
		"registration_id": uuid.New().String(),
	})
}
