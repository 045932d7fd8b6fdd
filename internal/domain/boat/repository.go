package boat

import (
	"context"

	"github.com/google/uuid"
)

// BoatRepository defines the persistence contract for boat aggregates.
type BoatRepository interface {
	// FindByID retrieves a boat by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Boat, error)

	// ListAll retrieves boats with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Boat, int64, error)

	// ListByOwner retrieves a partner's boats with pagination.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*Boat, int64, error)

	// Save persists a new boat.
	Save(ctx context.Context, boat *Boat) error

	// Update persists changes to an existing boat with optimistic locking.
	Update(ctx context.Context, boat *Boat) error

	// Delete removes a boat.
	Delete(ctx context.Context, id uuid.UUID) error
}
