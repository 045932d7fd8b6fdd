package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
//
// Save runs the overlap check and the insert inside one transaction so two
// concurrent creates for the same boat and interval cannot both succeed.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves bookings belonging to a client with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CountOverlapping counts bookings for the boat in {pending, confirmed}
	// whose interval strictly overlaps [start, end). excludeID, when non-nil,
	// skips one booking (for update-in-place checks).
	CountOverlapping(ctx context.Context, boatID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error)

	// Save persists a new booking. It returns a slot-taken error when the
	// interval is already occupied, or a conflict error when a concurrent
	// insert won the race at commit.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
