package boat

import (
	"time"

	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/domain"
)

// Boat is the aggregate root for a rentable vessel. It references its owning
// partner and marina by ID only; related records are loaded through their
// own repositories.
type Boat struct {
	id               uuid.UUID
	name             string
	description      string
	boatType         string
	capacity         int
	pricePerDayCents int64
	isAvailable      bool
	ownerID          uuid.UUID
	marinaID         uuid.UUID

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBoat creates a new available boat with validated fields.
func NewBoat(
	name, description, boatType string,
	capacity int,
	pricePerDayCents int64,
	ownerID, marinaID uuid.UUID,
) (*Boat, error) {
	if name == "" {
		return nil, domain.NewValidationError("boat name is required")
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be positive")
	}
	if pricePerDayCents < 0 {
		return nil, domain.NewValidationError("day rate cannot be negative")
	}
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}

	now := time.Now().UTC()
	return &Boat{
		id:               uuid.New(),
		name:             name,
		description:      description,
		boatType:         boatType,
		capacity:         capacity,
		pricePerDayCents: pricePerDayCents,
		isAvailable:      true,
		ownerID:          ownerID,
		marinaID:         marinaID,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Boat from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, description, boatType string,
	capacity int,
	pricePerDayCents int64,
	isAvailable bool,
	ownerID, marinaID uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *Boat {
	return &Boat{
		id:               id,
		name:             name,
		description:      description,
		boatType:         boatType,
		capacity:         capacity,
		pricePerDayCents: pricePerDayCents,
		isAvailable:      isAvailable,
		ownerID:          ownerID,
		marinaID:         marinaID,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (b *Boat) ID() uuid.UUID           { return b.id }
func (b *Boat) Name() string            { return b.name }
func (b *Boat) Description() string     { return b.description }
func (b *Boat) BoatType() string        { return b.boatType }
func (b *Boat) Capacity() int           { return b.capacity }
func (b *Boat) PricePerDayCents() int64 { return b.pricePerDayCents }
func (b *Boat) IsAvailable() bool       { return b.isAvailable }
func (b *Boat) OwnerID() uuid.UUID      { return b.ownerID }
func (b *Boat) MarinaID() uuid.UUID     { return b.marinaID }
func (b *Boat) Version() int64          { return b.version }
func (b *Boat) CreatedAt() time.Time    { return b.createdAt }
func (b *Boat) UpdatedAt() time.Time    { return b.updatedAt }

// IsOwnedBy checks if the boat belongs to the given partner.
func (b *Boat) IsOwnedBy(ownerID uuid.UUID) bool {
	return b.ownerID == ownerID
}

// UpdateParams carries optional field updates. Nil fields are left unchanged;
// each set field is validated and assigned explicitly.
type UpdateParams struct {
	Name             *string
	Description      *string
	BoatType         *string
	Capacity         *int
	PricePerDayCents *int64
	IsAvailable      *bool
	MarinaID         *uuid.UUID
}

// ApplyUpdate applies the set fields of params to the boat.
func (b *Boat) ApplyUpdate(params UpdateParams) error {
	if params.Name != nil {
		if *params.Name == "" {
			return domain.NewValidationError("boat name cannot be empty")
		}
		b.name = *params.Name
	}
	if params.Description != nil {
		b.description = *params.Description
	}
	if params.BoatType != nil {
		b.boatType = *params.BoatType
	}
	if params.Capacity != nil {
		if *params.Capacity <= 0 {
			return domain.NewValidationError("capacity must be positive")
		}
		b.capacity = *params.Capacity
	}
	if params.PricePerDayCents != nil {
		if *params.PricePerDayCents < 0 {
			return domain.NewValidationError("day rate cannot be negative")
		}
		b.pricePerDayCents = *params.PricePerDayCents
	}
	if params.IsAvailable != nil {
		b.isAvailable = *params.IsAvailable
	}
	if params.MarinaID != nil {
		b.marinaID = *params.MarinaID
	}

	b.version++
	b.updatedAt = time.Now().UTC()
	return nil
}
