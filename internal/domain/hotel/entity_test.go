//go:build unit

package hotel_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"stayhub/internal/domain/hotel"
)

func TestHotelOwnership(t *testing.T) {
	ownerID := uuid.New()
	h := hotel.Reconstruct(uuid.New(), ownerID, "Harbor Hotel", "Lisbon")

	t.Run("owner may manage the hotel", func(t *testing.T) {
		assert.True(t, h.IsOwnedBy(ownerID))
	})

	t.Run("any other user may not", func(t *testing.T) {
		assert.False(t, h.IsOwnedBy(uuid.New()))
	})
}

func TestReconstruct(t *testing.T) {
	id := uuid.New()
	ownerID := uuid.New()
	h := hotel.Reconstruct(id, ownerID, "Harbor Hotel", "Lisbon")

	assert.Equal(t, id, h.ID())
	assert.Equal(t, ownerID, h.OwnerID())
	assert.Equal(t, "Harbor Hotel", h.Name())
	assert.Equal(t, "Lisbon", h.City())
}
