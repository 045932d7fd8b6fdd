package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/geo"
)

// CreateCountryRequest holds the data for a new country.
type CreateCountryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateStateRequest holds the data for a new state.
type CreateStateRequest struct {
	Name      string    `json:"name" binding:"required"`
	Code      string    `json:"code"`
	CountryID uuid.UUID `json:"country_id" binding:"required"`
}

// CreateCityRequest holds the data for a new city.
type CreateCityRequest struct {
	Name    string    `json:"name" binding:"required"`
	StateID uuid.UUID `json:"state_id" binding:"required"`
}

// GeoService manages the location hierarchy. Writes are admin-only; reads
// are public. Children are validated against their parent on create.
type GeoService struct {
	countries geo.CountryRepository
	states    geo.StateRepository
	cities    geo.CityRepository
	logger    *zap.Logger
}

// NewGeoService creates a new GeoService.
func NewGeoService(countries geo.CountryRepository, states geo.StateRepository, cities geo.CityRepository, logger *zap.Logger) *GeoService {
	return &GeoService{countries: countries, states: states, cities: cities, logger: logger}
}

// CreateCountry registers a new country.
func (s *GeoService) CreateCountry(ctx context.Context, req CreateCountryRequest) (*geo.Country, error) {
	now := time.Now().UTC()
	c := &geo.Country{
		ID:        uuid.New(),
		Name:      req.Name,
		Code:      req.Code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.countries.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("country created", zap.String("country_id", c.ID.String()))
	return c, nil
}

// ListCountries retrieves all countries.
func (s *GeoService) ListCountries(ctx context.Context) ([]*geo.Country, error) {
	return s.countries.ListAll(ctx)
}

// DeleteCountry removes a country.
func (s *GeoService) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	return s.countries.Delete(ctx, id)
}

// CreateState registers a new state under an existing country.
func (s *GeoService) CreateState(ctx context.Context, req CreateStateRequest) (*geo.State, error) {
	if _, err := s.countries.FindByID(ctx, req.CountryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &geo.State{
		ID:        uuid.New(),
		Name:      req.Name,
		Code:      req.Code,
		CountryID: req.CountryID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.states.Save(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("state created", zap.String("state_id", st.ID.String()))
	return st, nil
}

// ListStates retrieves the states of a country.
func (s *GeoService) ListStates(ctx context.Context, countryID uuid.UUID) ([]*geo.State, error) {
	return s.states.ListByCountry(ctx, countryID)
}

// DeleteState removes a state.
func (s *GeoService) DeleteState(ctx context.Context, id uuid.UUID) error {
	return s.states.Delete(ctx, id)
}

// CreateCity registers a new city under an existing state.
func (s *GeoService) CreateCity(ctx context.Context, req CreateCityRequest) (*geo.City, error) {
	if _, err := s.states.FindByID(ctx, req.StateID); err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, domain.NewValidationError("city name is required")
	}

	now := time.Now().UTC()
	c := &geo.City{
		ID:        uuid.New(),
		Name:      req.Name,
		StateID:   req.StateID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cities.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("city created", zap.String("city_id", c.ID.String()))
	return c, nil
}

// ListCities retrieves the cities of a state.
func (s *GeoService) ListCities(ctx context.Context, stateID uuid.UUID) ([]*geo.City, error) {
	return s.cities.ListByState(ctx, stateID)
}

// DeleteCity removes a city.
func (s *GeoService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	return s.cities.Delete(ctx, id)
}
