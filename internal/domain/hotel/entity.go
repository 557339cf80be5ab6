// Package hotel models the catalog side of a property: who owns it and
// where it is. Hotels are managed outside this service, so the entity
// is hydrated from storage rather than created here.
package hotel

import (
	"github.com/google/uuid"
)

type Hotel struct {
	id      uuid.UUID
	ownerID uuid.UUID
	name    string
	city    string
}

// Reconstruct rebuilds a hotel from a trusted storage row.
func Reconstruct(id, ownerID uuid.UUID, name, city string) *Hotel {
	return &Hotel{
		id:      id,
		ownerID: ownerID,
		name:    name,
		city:    city,
	}
}

// IsOwnedBy reports whether userID may manage this hotel's rooms and
// bookings. Admin override is the caller's concern.
func (h *Hotel) IsOwnedBy(userID uuid.UUID) bool {
	return h.ownerID == userID
}

func (h *Hotel) ID() uuid.UUID      { return h.id }
func (h *Hotel) OwnerID() uuid.UUID { return h.ownerID }
func (h *Hotel) Name() string       { return h.name }
func (h *Hotel) City() string       { return h.city }
