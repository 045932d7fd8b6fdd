package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/boat"
)

// CreateBoatRequest holds the data needed to register a new boat.
type CreateBoatRequest struct {
	Name             string     `json:"name" binding:"required"`
	Description      string     `json:"description"`
	BoatType         string     `json:"boat_type"`
	Capacity         int        `json:"capacity" binding:"required"`
	PricePerDayCents int64      `json:"price_per_day_cents"`
	MarinaID         *uuid.UUID `json:"marina_id"`
}

// UpdateBoatRequest carries optional boat field updates. Absent fields are
// left unchanged.
type UpdateBoatRequest struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	BoatType         *string    `json:"boat_type"`
	Capacity         *int       `json:"capacity"`
	PricePerDayCents *int64     `json:"price_per_day_cents"`
	IsAvailable      *bool      `json:"is_available"`
	MarinaID         *uuid.UUID `json:"marina_id"`
}

// BoatDTO is the response representation of a boat.
type BoatDTO struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	BoatType         string    `json:"boat_type,omitempty"`
	Capacity         int       `json:"capacity"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	IsAvailable      bool      `json:"is_available"`
	OwnerID          uuid.UUID `json:"owner_id"`
	MarinaID         uuid.UUID `json:"marina_id,omitempty"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BoatService is the application service for the boat catalog. Partners
// manage their own fleet; admins manage everything.
type BoatService struct {
	boats  boat.BoatRepository
	logger *zap.Logger
}

// NewBoatService creates a new BoatService.
func NewBoatService(boats boat.BoatRepository, logger *zap.Logger) *BoatService {
	return &BoatService{boats: boats, logger: logger}
}

// CreateBoat registers a new boat owned by the actor (or any partner when an
// admin supplies ownerID).
func (s *BoatService) CreateBoat(ctx context.Context, actor auth.Actor, req CreateBoatRequest) (*BoatDTO, error) {
	marinaID := uuid.Nil
	if req.MarinaID != nil {
		marinaID = *req.MarinaID
	}

	bt, err := boat.NewBoat(req.Name, req.Description, req.BoatType, req.Capacity, req.PricePerDayCents, actor.ID, marinaID)
	if err != nil {
		return nil, err
	}

	if err := s.boats.Save(ctx, bt); err != nil {
		return nil, err
	}

	s.logger.Info("boat created",
		zap.String("boat_id", bt.ID().String()),
		zap.String("owner_id", bt.OwnerID().String()),
	)

	result := toBoatDTO(bt)
	return &result, nil
}

// GetBoat retrieves a single boat by ID.
func (s *BoatService) GetBoat(ctx context.Context, boatID uuid.UUID) (*BoatDTO, error) {
	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}
	result := toBoatDTO(bt)
	return &result, nil
}

// ListBoats retrieves boats with pagination.
func (s *BoatService) ListBoats(ctx context.Context, page, limit int) (*domain.PaginatedResult[BoatDTO], error) {
	boats, total, err := s.boats.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBoatDTOs(boats), total, page, limit)
	return &result, nil
}

// ListOwnBoats retrieves the actor's boats with pagination.
func (s *BoatService) ListOwnBoats(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BoatDTO], error) {
	boats, total, err := s.boats.ListByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBoatDTOs(boats), total, page, limit)
	return &result, nil
}

// UpdateBoat applies the set fields of req to the boat. Non-admin actors may
// only update boats they own.
func (s *BoatService) UpdateBoat(ctx context.Context, actor auth.Actor, boatID uuid.UUID, req UpdateBoatRequest) (*BoatDTO, error) {
	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !bt.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("boat does not belong to this partner")
	}

	params := boat.UpdateParams{
		Name:             req.Name,
		Description:      req.Description,
		BoatType:         req.BoatType,
		Capacity:         req.Capacity,
		PricePerDayCents: req.PricePerDayCents,
		IsAvailable:      req.IsAvailable,
		MarinaID:         req.MarinaID,
	}
	if err := bt.ApplyUpdate(params); err != nil {
		return nil, err
	}

	if err := s.boats.Update(ctx, bt); err != nil {
		return nil, err
	}

	result := toBoatDTO(bt)
	return &result, nil
}

// DeleteBoat removes a boat. Non-admin actors may only delete boats they own.
func (s *BoatService) DeleteBoat(ctx context.Context, actor auth.Actor, boatID uuid.UUID) error {
	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !bt.IsOwnedBy(actor.ID) {
		return domain.NewForbiddenError("boat does not belong to this partner")
	}

	return s.boats.Delete(ctx, bt.ID())
}

// --- Helpers ---

func toBoatDTO(bt *boat.Boat) BoatDTO {
	return BoatDTO{
		ID:               bt.ID(),
		Name:             bt.Name(),
		Description:      bt.Description(),
		BoatType:         bt.BoatType(),
		Capacity:         bt.Capacity(),
		PricePerDayCents: bt.PricePerDayCents(),
		IsAvailable:      bt.IsAvailable(),
		OwnerID:          bt.OwnerID(),
		MarinaID:         bt.MarinaID(),
		Version:          bt.Version(),
		CreatedAt:        bt.CreatedAt(),
		UpdatedAt:        bt.UpdatedAt(),
	}
}

func toBoatDTOs(boats []*boat.Boat) []BoatDTO {
	dtos := make([]BoatDTO, len(boats))
	for i, bt := range boats {
		dtos[i] = toBoatDTO(bt)
	}
	return dtos
}
