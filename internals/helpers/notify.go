package helper

import (
	"log"

	"github.com/google/uuid"
)

// Notify is the fire-and-forget notification sink. Delivery (email, push)
// happens in an external collaborator; the core only emits the event and
// never waits on it.
func Notify(profileID uuid.UUID, event string, payload map[string]any) {
	go func() {
		log.Printf("[NOTIFY] profile=%s event=%s payload=%v", profileID, event, payload)
	}()
}
