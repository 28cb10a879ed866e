package dispatcher

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Action is an optional named envelope around a dispatch payload.
// The dispatcher itself delivers any payload value unchanged; hosts that
// want flux-style named actions wrap their payloads in an Action and
// switch on Name (or use typed callbacks) on the receiving side.
type Action struct {
	ID        string    `json:"id"`         // Unique identifier for the action
	Name      string    `json:"name"`       // Action type name (e.g., "OrderPlaced")
	Payload   any       `json:"payload"`    // Action data
	CreatedAt time.Time `json:"created_at"` // When the action was created
}

// NewAction creates an Action with an auto-generated ID and timestamp.
// The action name is derived from the payload type using reflection.
//
// Example:
//
//	type OrderPlaced struct {
//	    OrderID string
//	}
//
//	act := dispatcher.NewAction(OrderPlaced{OrderID: "123"})
//	// act.Name == "OrderPlaced", act.ID is a UUID
//	err := d.Dispatch(ctx, act)
func NewAction(payload any) Action {
	return Action{
		ID:        uuid.New().String(),
		Name:      getActionName(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

// getActionName extracts the bare type name from an action payload,
// unwrapping any pointer types. Distinct payload types in different
// packages with the same name resolve to the same action name.
func getActionName(v any) string {
	t := reflect.TypeOf(v)

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}
