package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/funntour/service-rental/internal/domain"
	boatDomain "github.com/funntour/service-rental/internal/domain/boat"
)

// BoatModel is the GORM model for the boats table.
type BoatModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"not null"`
	Description      string    `gorm:""`
	BoatType         string    `gorm:""`
	Capacity         int       `gorm:"not null"`
	PricePerDayCents int64     `gorm:"not null"`
	IsAvailable      bool      `gorm:"not null;default:true"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index;not null"`
	MarinaID         uuid.UUID `gorm:"type:uuid;index"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BoatModel) TableName() string {
	return "boats"
}

// GormBoatRepository is the GORM-based implementation of BoatRepository.
type GormBoatRepository struct {
	db *gorm.DB
}

// NewGormBoatRepository creates a new GormBoatRepository.
func NewGormBoatRepository(db *gorm.DB) *GormBoatRepository {
	return &GormBoatRepository{db: db}
}

// FindByID retrieves a boat by its unique identifier.
func (r *GormBoatRepository) FindByID(ctx context.Context, id uuid.UUID) (*boatDomain.Boat, error) {
	var model BoatModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("boat", id.String())
		}
		return nil, fmt.Errorf("failed to find boat by ID: %w", err)
	}
	return toDomainBoat(&model), nil
}

// ListAll retrieves boats with pagination.
func (r *GormBoatRepository) ListAll(ctx context.Context, page, limit int) ([]*boatDomain.Boat, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&BoatModel{}), page, limit)
}

// ListByOwner retrieves a partner's boats with pagination.
func (r *GormBoatRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*boatDomain.Boat, int64, error) {
	q := r.db.WithContext(ctx).Model(&BoatModel{}).Where("owner_id = ?", ownerID)
	return r.list(ctx, q, page, limit)
}

func (r *GormBoatRepository) list(ctx context.Context, q *gorm.DB, page, limit int) ([]*boatDomain.Boat, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count boats: %w", err)
	}

	var models []BoatModel
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list boats: %w", err)
	}

	boats := make([]*boatDomain.Boat, len(models))
	for i, m := range models {
		boats[i] = toDomainBoat(&m)
	}
	return boats, total, nil
}

// Save persists a new boat.
func (r *GormBoatRepository) Save(ctx context.Context, b *boatDomain.Boat) error {
	if err := r.db.WithContext(ctx).Create(toBoatModel(b)).Error; err != nil {
		return fmt.Errorf("failed to save boat: %w", err)
	}
	return nil
}

// Update persists changes to an existing boat with optimistic locking.
func (r *GormBoatRepository) Update(ctx context.Context, b *boatDomain.Boat) error {
	model := toBoatModel(b)

	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BoatModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":                model.Name,
			"description":         model.Description,
			"boat_type":           model.BoatType,
			"capacity":            model.Capacity,
			"price_per_day_cents": model.PricePerDayCents,
			"is_available":        model.IsAvailable,
			"marina_id":           model.MarinaID,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update boat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("boat was modified by another transaction")
	}
	return nil
}

// Delete removes a boat.
func (r *GormBoatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BoatModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete boat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("boat", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toBoatModel(b *boatDomain.Boat) *BoatModel {
	return &BoatModel{
		ID:               b.ID(),
		Name:             b.Name(),
		Description:      b.Description(),
		BoatType:         b.BoatType(),
		Capacity:         b.Capacity(),
		PricePerDayCents: b.PricePerDayCents(),
		IsAvailable:      b.IsAvailable(),
		OwnerID:          b.OwnerID(),
		MarinaID:         b.MarinaID(),
		Version:          b.Version(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}

func toDomainBoat(m *BoatModel) *boatDomain.Boat {
	return boatDomain.Reconstruct(
		m.ID,
		m.Name,
		m.Description,
		m.BoatType,
		m.Capacity,
		m.PricePerDayCents,
		m.IsAvailable,
		m.OwnerID,
		m.MarinaID,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
