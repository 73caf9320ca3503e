package state

import "context"

// Slot names for the two independent persisted stores. Clearing one must
// never touch the other.
const (
	SlotCart = "cart-storage"
	SlotAuth = "auth-storage"
)

// Repository round-trips a structured value through a restart boundary,
// keyed by visitor id and slot name. The in-memory representation held by
// the owning service stays authoritative between writes; Save failures are
// best-effort from the caller's point of view.
type Repository interface {
	// Load unmarshals the stored value into dest. Returns domain.ErrNotFound
	// when no value exists for the key.
	Load(ctx context.Context, visitorID, slot string, dest interface{}) error
	// Save persists value, replacing any prior content of the slot.
	Save(ctx context.Context, visitorID, slot string, value interface{}) error
	// Delete removes the slot, if present.
	Delete(ctx context.Context, visitorID, slot string) error
}
