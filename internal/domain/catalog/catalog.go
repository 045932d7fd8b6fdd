package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Marina is static reference data for a mooring location. No invariants
// beyond referential integrity, so it is a plain record rather than an
// aggregate.
type Marina struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Country      string    `json:"country,omitempty"`
	Address      string    `json:"address,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Route is a named itinerary offered for boat rentals.
type Route struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DurationHours  int       `json:"duration_hours"`
	BasePriceCents int64     `json:"base_price_cents"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MarinaRepository defines the persistence contract for marinas.
type MarinaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Marina, error)
	ListAll(ctx context.Context, page, limit int) ([]*Marina, int64, error)
	Save(ctx context.Context, marina *Marina) error
	Update(ctx context.Context, marina *Marina) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RouteRepository defines the persistence contract for routes.
type RouteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Route, error)
	ListAll(ctx context.Context, page, limit int) ([]*Route, int64, error)
	Save(ctx context.Context, route *Route) error
	Update(ctx context.Context, route *Route) error
	Delete(ctx context.Context, id uuid.UUID) error
}
