package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/pricing"
)

// Booking is the aggregate root for the booking domain. A boat may never
// hold two bookings in {pending, confirmed} with overlapping date ranges.
type Booking struct {
	id     uuid.UUID
	userID uuid.UUID
	boatID uuid.UUID
	dates  DateRange
	// period is set when the booking was priced via a partner period bucket;
	// empty when the generic day rate applied.
	period          pricing.Period
	totalPriceCents int64
	currency        string
	status          BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate with status=pending.
func NewBooking(
	userID, boatID uuid.UUID,
	dates DateRange,
	period pricing.Period,
	totalPriceCents int64,
	currency string,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if boatID == uuid.Nil {
		return nil, domain.NewValidationError("boat ID is required")
	}
	if period != "" && !period.IsValid() {
		return nil, domain.NewValidationError("invalid booking period: " + string(period))
	}
	if totalPriceCents < 0 {
		return nil, domain.NewValidationError("total price cannot be negative")
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		userID:          userID,
		boatID:          boatID,
		dates:           dates,
		period:          period,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          StatusPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, userID, boatID uuid.UUID,
	dates DateRange,
	period pricing.Period,
	totalPriceCents int64,
	currency string,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		boatID:          boatID,
		dates:           dates,
		period:          period,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          status,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// UserID returns the booking client's user ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// BoatID returns the booked boat's ID.
func (b *Booking) BoatID() uuid.UUID { return b.boatID }

// Dates returns the rental interval.
func (b *Booking) Dates() DateRange { return b.dates }

// Period returns the sub-day period bucket, or empty for day-rate bookings.
func (b *Booking) Period() pricing.Period { return b.period }

// TotalPriceCents returns the computed total price in cents.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy checks if the booking belongs to the given user.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// --- Behavior ---

// TransitionTo moves the booking to the target status if the state machine
// allows it. Terminal states reject every transition.
func (b *Booking) TransitionTo(target BookingStatus) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// Confirm transitions the booking from pending to confirmed.
func (b *Booking) Confirm() error {
	return b.TransitionTo(StatusConfirmed)
}

// Cancel transitions the booking to cancelled if it is not in a terminal state.
func (b *Booking) Cancel() error {
	return b.TransitionTo(StatusCancelled)
}

// Complete transitions the booking from confirmed to completed.
func (b *Booking) Complete() error {
	return b.TransitionTo(StatusCompleted)
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
