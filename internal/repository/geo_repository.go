package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/geo"
)

type CountryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Code      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CountryModel) TableName() string { return "countries" }

type StateModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Code      string    `gorm:"not null"`
	CountryID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StateModel) TableName() string { return "states" }

type CityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	StateID   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CityModel) TableName() string { return "cities" }

// GormCountryRepository is the GORM-based implementation of CountryRepository.
type GormCountryRepository struct {
	db *gorm.DB
}

func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.Country, error) {
	var model CountryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("country", id.String())
		}
		return nil, fmt.Errorf("failed to find country by ID: %w", err)
	}
	return &geo.Country{ID: model.ID, Name: model.Name, Code: model.Code, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *GormCountryRepository) ListAll(ctx context.Context) ([]*geo.Country, error) {
	var models []CountryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	countries := make([]*geo.Country, len(models))
	for i, m := range models {
		countries[i] = &geo.Country{ID: m.ID, Name: m.Name, Code: m.Code, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return countries, nil
}

func (r *GormCountryRepository) Save(ctx context.Context, country *geo.Country) error {
	model := CountryModel{ID: country.ID, Name: country.Name, Code: country.Code, CreatedAt: country.CreatedAt, UpdatedAt: country.UpdatedAt}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save country: %w", err)
	}
	return nil
}

func (r *GormCountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CountryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete country: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("country", id.String())
	}
	return nil
}

// GormStateRepository is the GORM-based implementation of StateRepository.
type GormStateRepository struct {
	db *gorm.DB
}

func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

func (r *GormStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.State, error) {
	var model StateModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("state", id.String())
		}
		return nil, fmt.Errorf("failed to find state by ID: %w", err)
	}
	return &geo.State{ID: model.ID, Name: model.Name, Code: model.Code, CountryID: model.CountryID, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *GormStateRepository) ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*geo.State, error) {
	var models []StateModel
	if err := r.db.WithContext(ctx).Where("country_id = ?", countryID).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	states := make([]*geo.State, len(models))
	for i, m := range models {
		states[i] = &geo.State{ID: m.ID, Name: m.Name, Code: m.Code, CountryID: m.CountryID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return states, nil
}

func (r *GormStateRepository) Save(ctx context.Context, state *geo.State) error {
	model := StateModel{ID: state.ID, Name: state.Name, Code: state.Code, CountryID: state.CountryID, CreatedAt: state.CreatedAt, UpdatedAt: state.UpdatedAt}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (r *GormStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&StateModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("state", id.String())
	}
	return nil
}

// GormCityRepository is the GORM-based implementation of CityRepository.
type GormCityRepository struct {
	db *gorm.DB
}

func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.City, error) {
	var model CityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("city", id.String())
		}
		return nil, fmt.Errorf("failed to find city by ID: %w", err)
	}
	return &geo.City{ID: model.ID, Name: model.Name, StateID: model.StateID, CreatedAt: model.CreatedAt, UpdatedAt: model.UpdatedAt}, nil
}

func (r *GormCityRepository) ListByState(ctx context.Context, stateID uuid.UUID) ([]*geo.City, error) {
	var models []CityModel
	if err := r.db.WithContext(ctx).Where("state_id = ?", stateID).Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	cities := make([]*geo.City, len(models))
	for i, m := range models {
		cities[i] = &geo.City{ID: m.ID, Name: m.Name, StateID: m.StateID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
	}
	return cities, nil
}

func (r *GormCityRepository) Save(ctx context.Context, city *geo.City) error {
	model := CityModel{ID: city.ID, Name: city.Name, StateID: city.StateID, CreatedAt: city.CreatedAt, UpdatedAt: city.UpdatedAt}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save city: %w", err)
	}
	return nil
}

func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CityModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete city: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("city", id.String())
	}
	return nil
}
