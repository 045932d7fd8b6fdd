package geo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Country, State and City form the location hierarchy used by marinas and
// boats. Children reference parents by ID; lookups go through repositories.

type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type State struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CountryID uuid.UUID `json:"country_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type City struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StateID   uuid.UUID `json:"state_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountryRepository defines the persistence contract for countries.
type CountryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)
	ListAll(ctx context.Context) ([]*Country, error)
	Save(ctx context.Context, country *Country) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StateRepository defines the persistence contract for states.
type StateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*State, error)
	ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*State, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CityRepository defines the persistence contract for cities.
type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	ListByState(ctx context.Context, stateID uuid.UUID) ([]*City, error)
	Save(ctx context.Context, city *City) error
	Delete(ctx context.Context, id uuid.UUID) error
}
