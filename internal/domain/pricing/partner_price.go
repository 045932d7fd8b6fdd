package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/funntour/service-rental/internal/domain"
)

// PriceMatrix holds the per-bucket prices in cents for one boat and partner.
// A nil bucket means the partner has not configured that combination and the
// caller must fall back to the boat's generic day rate.
type PriceMatrix struct {
	WeekdayMorning   *int64 `json:"weekday_morning,omitempty"`
	WeekdayAfternoon *int64 `json:"weekday_afternoon,omitempty"`
	WeekdayNight     *int64 `json:"weekday_night,omitempty"`
	WeekdayFullDay   *int64 `json:"weekday_fullday,omitempty"`
	WeekendMorning   *int64 `json:"weekend_morning,omitempty"`
	WeekendAfternoon *int64 `json:"weekend_afternoon,omitempty"`
	WeekendNight     *int64 `json:"weekend_night,omitempty"`
	WeekendFullDay   *int64 `json:"weekend_fullday,omitempty"`
	HolidayMorning   *int64 `json:"holiday_morning,omitempty"`
	HolidayAfternoon *int64 `json:"holiday_afternoon,omitempty"`
	HolidayNight     *int64 `json:"holiday_night,omitempty"`
	HolidayFullDay   *int64 `json:"holiday_fullday,omitempty"`
}

// bucket returns the matrix field for the given day type and period.
func (m PriceMatrix) bucket(dayType DayType, period Period) *int64 {
	switch dayType {
	case DayTypeWeekday:
		switch period {
		case PeriodMorning:
			return m.WeekdayMorning
		case PeriodAfternoon:
			return m.WeekdayAfternoon
		case PeriodNight:
			return m.WeekdayNight
		case PeriodFullDay:
			return m.WeekdayFullDay
		}
	case DayTypeWeekend:
		switch period {
		case PeriodMorning:
			return m.WeekendMorning
		case PeriodAfternoon:
			return m.WeekendAfternoon
		case PeriodNight:
			return m.WeekendNight
		case PeriodFullDay:
			return m.WeekendFullDay
		}
	case DayTypeHoliday:
		switch period {
		case PeriodMorning:
			return m.HolidayMorning
		case PeriodAfternoon:
			return m.HolidayAfternoon
		case PeriodNight:
			return m.HolidayNight
		case PeriodFullDay:
			return m.HolidayFullDay
		}
	}
	return nil
}

// buckets enumerates all matrix fields for validation.
func (m PriceMatrix) buckets() []*int64 {
	return []*int64{
		m.WeekdayMorning, m.WeekdayAfternoon, m.WeekdayNight, m.WeekdayFullDay,
		m.WeekendMorning, m.WeekendAfternoon, m.WeekendNight, m.WeekendFullDay,
		m.HolidayMorning, m.HolidayAfternoon, m.HolidayNight, m.HolidayFullDay,
	}
}

// Validate rejects negative bucket prices.
func (m PriceMatrix) Validate() error {
	for _, b := range m.buckets() {
		if b != nil && *b < 0 {
			return domain.NewValidationError("bucket price cannot be negative")
		}
	}
	return nil
}

// PartnerPrice is the aggregate root for a partner's price override on one
// boat. At most one row exists per (boat, partner); the row carries the full
// day-type by period matrix, so each (boat, partner, day-type, period) tuple
// resolves to exactly one price.
type PartnerPrice struct {
	id        uuid.UUID
	partnerID uuid.UUID
	boatID    uuid.UUID
	matrix    PriceMatrix

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewPartnerPrice creates a new partner price row with a validated matrix.
func NewPartnerPrice(partnerID, boatID uuid.UUID, matrix PriceMatrix) (*PartnerPrice, error) {
	if partnerID == uuid.Nil {
		return nil, domain.NewValidationError("partner ID is required")
	}
	if boatID == uuid.Nil {
		return nil, domain.NewValidationError("boat ID is required")
	}
	if err := matrix.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &PartnerPrice{
		id:        uuid.New(),
		partnerID: partnerID,
		boatID:    boatID,
		matrix:    matrix,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a PartnerPrice from persistence data (no validation).
func Reconstruct(
	id, partnerID, boatID uuid.UUID,
	matrix PriceMatrix,
	version int64,
	createdAt, updatedAt time.Time,
) *PartnerPrice {
	return &PartnerPrice{
		id:        id,
		partnerID: partnerID,
		boatID:    boatID,
		matrix:    matrix,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (p *PartnerPrice) ID() uuid.UUID        { return p.id }
func (p *PartnerPrice) PartnerID() uuid.UUID { return p.partnerID }
func (p *PartnerPrice) BoatID() uuid.UUID    { return p.boatID }
func (p *PartnerPrice) Matrix() PriceMatrix  { return p.matrix }
func (p *PartnerPrice) Version() int64       { return p.version }
func (p *PartnerPrice) CreatedAt() time.Time { return p.createdAt }
func (p *PartnerPrice) UpdatedAt() time.Time { return p.updatedAt }

// IsOwnedBy checks if the price row belongs to the given partner.
func (p *PartnerPrice) IsOwnedBy(partnerID uuid.UUID) bool {
	return p.partnerID == partnerID
}

// --- Behavior ---

// Resolve returns the price in cents for the given day type and period.
// An unset bucket fails with a price-not-configured error; it never
// defaults to zero.
func (p *PartnerPrice) Resolve(dayType DayType, period Period) (int64, error) {
	if !dayType.IsValid() {
		return 0, domain.NewValidationError("invalid day type: " + string(dayType))
	}
	if !period.IsValid() {
		return 0, domain.NewValidationError("invalid period: " + string(period))
	}

	b := p.matrix.bucket(dayType, period)
	if b == nil {
		return 0, domain.NewPriceNotConfiguredError(
			fmt.Sprintf("no %s/%s price configured for boat %s", dayType, period, p.boatID))
	}
	return *b, nil
}

// UpdateMatrix replaces the price matrix after validation.
func (p *PartnerPrice) UpdateMatrix(matrix PriceMatrix) error {
	if err := matrix.Validate(); err != nil {
		return err
	}
	p.matrix = matrix
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}
