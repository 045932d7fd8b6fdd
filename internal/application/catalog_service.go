package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/catalog"
)

// CreateMarinaRequest holds the data for a new marina.
type CreateMarinaRequest struct {
	Name         string `json:"name" binding:"required"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Description  string `json:"description"`
}

// CreateRouteRequest holds the data for a new route.
type CreateRouteRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	DurationHours  int    `json:"duration_hours" binding:"required"`
	BasePriceCents int64  `json:"base_price_cents"`
}

// CatalogService manages reference data: marinas and routes. Writes are
// admin-only; reads are public.
type CatalogService struct {
	marinas catalog.MarinaRepository
	routes  catalog.RouteRepository
	logger  *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(marinas catalog.MarinaRepository, routes catalog.RouteRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{marinas: marinas, routes: routes, logger: logger}
}

// CreateMarina registers a new marina.
func (s *CatalogService) CreateMarina(ctx context.Context, req CreateMarinaRequest) (*catalog.Marina, error) {
	now := time.Now().UTC()
	m := &catalog.Marina{
		ID:           uuid.New(),
		Name:         req.Name,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Address:      req.Address,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.marinas.Save(ctx, m); err != nil {
		return nil, err
	}
	s.logger.Info("marina created", zap.String("marina_id", m.ID.String()))
	return m, nil
}

// GetMarina retrieves a marina by ID.
func (s *CatalogService) GetMarina(ctx context.Context, id uuid.UUID) (*catalog.Marina, error) {
	return s.marinas.FindByID(ctx, id)
}

// ListMarinas retrieves marinas with pagination.
func (s *CatalogService) ListMarinas(ctx context.Context, page, limit int) (*domain.PaginatedResult[*catalog.Marina], error) {
	marinas, total, err := s.marinas.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(marinas, total, page, limit)
	return &result, nil
}

// UpdateMarina replaces the mutable fields of an existing marina.
func (s *CatalogService) UpdateMarina(ctx context.Context, id uuid.UUID, req CreateMarinaRequest) (*catalog.Marina, error) {
	m, err := s.marinas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Name = req.Name
	m.City = req.City
	m.State = req.State
	m.Country = req.Country
	m.Address = req.Address
	m.ContactName = req.ContactName
	m.ContactPhone = req.ContactPhone
	m.ContactEmail = req.ContactEmail
	m.Description = req.Description
	m.UpdatedAt = time.Now().UTC()

	if err := s.marinas.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMarina removes a marina.
func (s *CatalogService) DeleteMarina(ctx context.Context, id uuid.UUID) error {
	return s.marinas.Delete(ctx, id)
}

// CreateRoute registers a new route.
func (s *CatalogService) CreateRoute(ctx context.Context, req CreateRouteRequest) (*catalog.Route, error) {
	if req.DurationHours <= 0 {
		return nil, domain.NewValidationError("duration must be positive")
	}
	if req.BasePriceCents < 0 {
		return nil, domain.NewValidationError("base price cannot be negative")
	}

	now := time.Now().UTC()
	rt := &catalog.Route{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		DurationHours:  req.DurationHours,
		BasePriceCents: req.BasePriceCents,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.routes.Save(ctx, rt); err != nil {
		return nil, err
	}
	s.logger.Info("route created", zap.String("route_id", rt.ID.String()))
	return rt, nil
}

// GetRoute retrieves a route by ID.
func (s *CatalogService) GetRoute(ctx context.Context, id uuid.UUID) (*catalog.Route, error) {
	return s.routes.FindByID(ctx, id)
}

// ListRoutes retrieves routes with pagination.
func (s *CatalogService) ListRoutes(ctx context.Context, page, limit int) (*domain.PaginatedResult[*catalog.Route], error) {
	routes, total, err := s.routes.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(routes, total, page, limit)
	return &result, nil
}

// UpdateRoute replaces the mutable fields of an existing route.
func (s *CatalogService) UpdateRoute(ctx context.Context, id uuid.UUID, req CreateRouteRequest) (*catalog.Route, error) {
	rt, err := s.routes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.DurationHours <= 0 {
		return nil, domain.NewValidationError("duration must be positive")
	}
	if req.BasePriceCents < 0 {
		return nil, domain.NewValidationError("base price cannot be negative")
	}

	rt.Name = req.Name
	rt.Description = req.Description
	rt.DurationHours = req.DurationHours
	rt.BasePriceCents = req.BasePriceCents
	rt.UpdatedAt = time.Now().UTC()

	if err := s.routes.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteRoute removes a route.
func (s *CatalogService) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	return s.routes.Delete(ctx, id)
}
