package pricing

import (
	"context"

	"github.com/google/uuid"
)

// PartnerPriceRepository defines the persistence contract for partner prices.
type PartnerPriceRepository interface {
	// FindByID retrieves a price row by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*PartnerPrice, error)

	// FindByBoatAndPartner retrieves the single price row for a boat and
	// partner, or a not-found error when none is configured.
	FindByBoatAndPartner(ctx context.Context, boatID, partnerID uuid.UUID) (*PartnerPrice, error)

	// ListByPartner retrieves a partner's price rows with pagination.
	ListByPartner(ctx context.Context, partnerID uuid.UUID, page, limit int) ([]*PartnerPrice, int64, error)

	// ListAll retrieves all price rows with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*PartnerPrice, int64, error)

	// Save persists a new price row. A second row for the same boat and
	// partner fails with a duplicate error.
	Save(ctx context.Context, price *PartnerPrice) error

	// Update persists changes to an existing price row with optimistic locking.
	Update(ctx context.Context, price *PartnerPrice) error

	// Delete removes a price row.
	Delete(ctx context.Context, id uuid.UUID) error
}
