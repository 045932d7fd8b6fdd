package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/pricing"
)

// PartnerPriceModel is the GORM model for the partner_prices table. Each
// bucket column is nullable; NULL means the bucket is not configured.
type PartnerPriceModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnerID        uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:partner_prices_boat_partner_key,priority:2"`
	BoatID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:partner_prices_boat_partner_key,priority:1"`
	WeekdayMorning   *int64
	WeekdayAfternoon *int64
	WeekdayNight     *int64
	WeekdayFullday   *int64
	WeekendMorning   *int64
	WeekendAfternoon *int64
	WeekendNight     *int64
	WeekendFullday   *int64
	HolidayMorning   *int64
	HolidayAfternoon *int64
	HolidayNight     *int64
	HolidayFullday   *int64
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PartnerPriceModel) TableName() string {
	return "partner_prices"
}

// GormPartnerPriceRepository is the GORM-based implementation of PartnerPriceRepository.
type GormPartnerPriceRepository struct {
	db *gorm.DB
}

// NewGormPartnerPriceRepository creates a new GormPartnerPriceRepository.
func NewGormPartnerPriceRepository(db *gorm.DB) *GormPartnerPriceRepository {
	return &GormPartnerPriceRepository{db: db}
}

// FindByID retrieves a price row by its unique identifier.
func (r *GormPartnerPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PartnerPrice, error) {
	var model PartnerPriceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("partner price", id.String())
		}
		return nil, fmt.Errorf("failed to find partner price by ID: %w", err)
	}
	return toDomainPartnerPrice(&model), nil
}

// FindByBoatAndPartner retrieves the single price row for a boat and partner.
func (r *GormPartnerPriceRepository) FindByBoatAndPartner(ctx context.Context, boatID, partnerID uuid.UUID) (*pricing.PartnerPrice, error) {
	var model PartnerPriceModel
	err := r.db.WithContext(ctx).
		Where("boat_id = ? AND partner_id = ?", boatID, partnerID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("partner price", fmt.Sprintf("boat=%s partner=%s", boatID, partnerID))
		}
		return nil, fmt.Errorf("failed to find partner price: %w", err)
	}
	return toDomainPartnerPrice(&model), nil
}

// ListByPartner retrieves a partner's price rows with pagination.
func (r *GormPartnerPriceRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, page, limit int) ([]*pricing.PartnerPrice, int64, error) {
	q := r.db.WithContext(ctx).Model(&PartnerPriceModel{}).Where("partner_id = ?", partnerID)
	return r.list(q, page, limit)
}

// ListAll retrieves all price rows with pagination (admin).
func (r *GormPartnerPriceRepository) ListAll(ctx context.Context, page, limit int) ([]*pricing.PartnerPrice, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&PartnerPriceModel{}), page, limit)
}

func (r *GormPartnerPriceRepository) list(q *gorm.DB, page, limit int) ([]*pricing.PartnerPrice, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count partner prices: %w", err)
	}

	var models []PartnerPriceModel
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list partner prices: %w", err)
	}

	prices := make([]*pricing.PartnerPrice, len(models))
	for i, m := range models {
		prices[i] = toDomainPartnerPrice(&m)
	}
	return prices, total, nil
}

// Save persists a new price row. A second row for the same boat and partner
// hits the unique constraint and fails with a duplicate error.
func (r *GormPartnerPriceRepository) Save(ctx context.Context, p *pricing.PartnerPrice) error {
	if err := r.db.WithContext(ctx).Create(toPartnerPriceModel(p)).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewDuplicateError("a price rule already exists for this boat and partner")
		}
		return fmt.Errorf("failed to save partner price: %w", err)
	}
	return nil
}

// Update persists changes to an existing price row with optimistic locking.
func (r *GormPartnerPriceRepository) Update(ctx context.Context, p *pricing.PartnerPrice) error {
	model := toPartnerPriceModel(p)

	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PartnerPriceModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"weekday_morning":   model.WeekdayMorning,
			"weekday_afternoon": model.WeekdayAfternoon,
			"weekday_night":     model.WeekdayNight,
			"weekday_fullday":   model.WeekdayFullday,
			"weekend_morning":   model.WeekendMorning,
			"weekend_afternoon": model.WeekendAfternoon,
			"weekend_night":     model.WeekendNight,
			"weekend_fullday":   model.WeekendFullday,
			"holiday_morning":   model.HolidayMorning,
			"holiday_afternoon": model.HolidayAfternoon,
			"holiday_night":     model.HolidayNight,
			"holiday_fullday":   model.HolidayFullday,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update partner price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("partner price was modified by another transaction")
	}
	return nil
}

// Delete removes a price row.
func (r *GormPartnerPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PartnerPriceModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete partner price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("partner price", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toPartnerPriceModel(p *pricing.PartnerPrice) *PartnerPriceModel {
	m := p.Matrix()
	return &PartnerPriceModel{
		ID:               p.ID(),
		PartnerID:        p.PartnerID(),
		BoatID:           p.BoatID(),
		WeekdayMorning:   m.WeekdayMorning,
		WeekdayAfternoon: m.WeekdayAfternoon,
		WeekdayNight:     m.WeekdayNight,
		WeekdayFullday:   m.WeekdayFullDay,
		WeekendMorning:   m.WeekendMorning,
		WeekendAfternoon: m.WeekendAfternoon,
		WeekendNight:     m.WeekendNight,
		WeekendFullday:   m.WeekendFullDay,
		HolidayMorning:   m.HolidayMorning,
		HolidayAfternoon: m.HolidayAfternoon,
		HolidayNight:     m.HolidayNight,
		HolidayFullday:   m.HolidayFullDay,
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toDomainPartnerPrice(m *PartnerPriceModel) *pricing.PartnerPrice {
	matrix := pricing.PriceMatrix{
		WeekdayMorning:   m.WeekdayMorning,
		WeekdayAfternoon: m.WeekdayAfternoon,
		WeekdayNight:     m.WeekdayNight,
		WeekdayFullDay:   m.WeekdayFullday,
		WeekendMorning:   m.WeekendMorning,
		WeekendAfternoon: m.WeekendAfternoon,
		WeekendNight:     m.WeekendNight,
		WeekendFullDay:   m.WeekendFullday,
		HolidayMorning:   m.HolidayMorning,
		HolidayAfternoon: m.HolidayAfternoon,
		HolidayNight:     m.HolidayNight,
		HolidayFullDay:   m.HolidayFullday,
	}
	return pricing.Reconstruct(
		m.ID,
		m.PartnerID,
		m.BoatID,
		matrix,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
