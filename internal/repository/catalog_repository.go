package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/catalog"
)

// MarinaModel is the GORM model for the marinas table.
type MarinaModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	City         string
	State        string
	Country      string
	Address      string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Description  string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (MarinaModel) TableName() string { return "marinas" }

// RouteModel is the GORM model for the routes table.
type RouteModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null"`
	Description    string
	DurationHours  int   `gorm:"not null"`
	BasePriceCents int64 `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (RouteModel) TableName() string { return "routes" }

// GormMarinaRepository is the GORM-based implementation of MarinaRepository.
type GormMarinaRepository struct {
	db *gorm.DB
}

// NewGormMarinaRepository creates a new GormMarinaRepository.
func NewGormMarinaRepository(db *gorm.DB) *GormMarinaRepository {
	return &GormMarinaRepository{db: db}
}

func (r *GormMarinaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Marina, error) {
	var model MarinaModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("marina", id.String())
		}
		return nil, fmt.Errorf("failed to find marina by ID: %w", err)
	}
	m := toDomainMarina(&model)
	return &m, nil
}

func (r *GormMarinaRepository) ListAll(ctx context.Context, page, limit int) ([]*catalog.Marina, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MarinaModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count marinas: %w", err)
	}

	var models []MarinaModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list marinas: %w", err)
	}

	marinas := make([]*catalog.Marina, len(models))
	for i, model := range models {
		m := toDomainMarina(&model)
		marinas[i] = &m
	}
	return marinas, total, nil
}

func (r *GormMarinaRepository) Save(ctx context.Context, marina *catalog.Marina) error {
	if err := r.db.WithContext(ctx).Create(toMarinaModel(marina)).Error; err != nil {
		return fmt.Errorf("failed to save marina: %w", err)
	}
	return nil
}

func (r *GormMarinaRepository) Update(ctx context.Context, marina *catalog.Marina) error {
	result := r.db.WithContext(ctx).
		Model(&MarinaModel{}).
		Where("id = ?", marina.ID).
		Updates(toMarinaModel(marina))
	if result.Error != nil {
		return fmt.Errorf("failed to update marina: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("marina", marina.ID.String())
	}
	return nil
}

func (r *GormMarinaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MarinaModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete marina: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("marina", id.String())
	}
	return nil
}

// GormRouteRepository is the GORM-based implementation of RouteRepository.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GormRouteRepository.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Route, error) {
	var model RouteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("route", id.String())
		}
		return nil, fmt.Errorf("failed to find route by ID: %w", err)
	}
	rt := toDomainRoute(&model)
	return &rt, nil
}

func (r *GormRouteRepository) ListAll(ctx context.Context, page, limit int) ([]*catalog.Route, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RouteModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	var models []RouteModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}

	routes := make([]*catalog.Route, len(models))
	for i, model := range models {
		rt := toDomainRoute(&model)
		routes[i] = &rt
	}
	return routes, total, nil
}

func (r *GormRouteRepository) Save(ctx context.Context, route *catalog.Route) error {
	if err := r.db.WithContext(ctx).Create(toRouteModel(route)).Error; err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

func (r *GormRouteRepository) Update(ctx context.Context, route *catalog.Route) error {
	result := r.db.WithContext(ctx).
		Model(&RouteModel{}).
		Where("id = ?", route.ID).
		Updates(toRouteModel(route))
	if result.Error != nil {
		return fmt.Errorf("failed to update route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("route", route.ID.String())
	}
	return nil
}

func (r *GormRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RouteModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete route: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("route", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toMarinaModel(m *catalog.Marina) *MarinaModel {
	return &MarinaModel{
		ID:           m.ID,
		Name:         m.Name,
		City:         m.City,
		State:        m.State,
		Country:      m.Country,
		Address:      m.Address,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDomainMarina(m *MarinaModel) catalog.Marina {
	return catalog.Marina{
		ID:           m.ID,
		Name:         m.Name,
		City:         m.City,
		State:        m.State,
		Country:      m.Country,
		Address:      m.Address,
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRouteModel(rt *catalog.Route) *RouteModel {
	return &RouteModel{
		ID:             rt.ID,
		Name:           rt.Name,
		Description:    rt.Description,
		DurationHours:  rt.DurationHours,
		BasePriceCents: rt.BasePriceCents,
		CreatedAt:      rt.CreatedAt,
		UpdatedAt:      rt.UpdatedAt,
	}
}

func toDomainRoute(m *RouteModel) catalog.Route {
	return catalog.Route{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		DurationHours:  m.DurationHours,
		BasePriceCents: m.BasePriceCents,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
