package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/boat"
	"github.com/funntour/service-rental/internal/domain/pricing"
)

// CreatePartnerPriceRequest holds the data for a new partner price row.
type CreatePartnerPriceRequest struct {
	BoatID uuid.UUID           `json:"boat_id" binding:"required"`
	Matrix pricing.PriceMatrix `json:"matrix"`
}

// UpdatePartnerPriceRequest replaces the price matrix of an existing row.
type UpdatePartnerPriceRequest struct {
	Matrix pricing.PriceMatrix `json:"matrix"`
}

// PartnerPriceDTO is the response representation of a partner price row.
type PartnerPriceDTO struct {
	ID        uuid.UUID           `json:"id"`
	PartnerID uuid.UUID           `json:"partner_id"`
	BoatID    uuid.UUID           `json:"boat_id"`
	Matrix    pricing.PriceMatrix `json:"matrix"`
	Version   int64               `json:"version"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ResolvedPriceDTO is the response for a single bucket resolution.
type ResolvedPriceDTO struct {
	BoatID     uuid.UUID `json:"boat_id"`
	PartnerID  uuid.UUID `json:"partner_id"`
	DayType    string    `json:"day_type"`
	Period     string    `json:"period"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
}

// PartnerPriceService is the application service for partner price overrides.
// Partners manage rows for boats they own; admins manage everything.
type PartnerPriceService struct {
	prices pricing.PartnerPriceRepository
	boats  boat.BoatRepository
	logger *zap.Logger
}

// NewPartnerPriceService creates a new PartnerPriceService.
func NewPartnerPriceService(prices pricing.PartnerPriceRepository, boats boat.BoatRepository, logger *zap.Logger) *PartnerPriceService {
	return &PartnerPriceService{prices: prices, boats: boats, logger: logger}
}

// CreatePartnerPrice registers a price matrix for a boat the actor owns. A
// second row for the same boat and partner fails with a duplicate error.
func (s *PartnerPriceService) CreatePartnerPrice(ctx context.Context, actor auth.Actor, req CreatePartnerPriceRequest) (*PartnerPriceDTO, error) {
	bt, err := s.boats.FindByID(ctx, req.BoatID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !bt.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("boat does not belong to this partner")
	}

	pp, err := pricing.NewPartnerPrice(bt.OwnerID(), bt.ID(), req.Matrix)
	if err != nil {
		return nil, err
	}

	if err := s.prices.Save(ctx, pp); err != nil {
		return nil, err
	}

	s.logger.Info("partner price created",
		zap.String("price_id", pp.ID().String()),
		zap.String("boat_id", pp.BoatID().String()),
		zap.String("partner_id", pp.PartnerID().String()),
	)

	result := toPartnerPriceDTO(pp)
	return &result, nil
}

// GetPartnerPrice retrieves a price row. Non-admin actors can only see rows
// they own.
func (s *PartnerPriceService) GetPartnerPrice(ctx context.Context, actor auth.Actor, priceID uuid.UUID) (*PartnerPriceDTO, error) {
	pp, err := s.prices.FindByID(ctx, priceID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !pp.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("price row does not belong to this partner")
	}
	result := toPartnerPriceDTO(pp)
	return &result, nil
}

// ListOwnPartnerPrices retrieves the actor's price rows with pagination.
func (s *PartnerPriceService) ListOwnPartnerPrices(ctx context.Context, partnerID uuid.UUID, page, limit int) (*domain.PaginatedResult[PartnerPriceDTO], error) {
	rows, total, err := s.prices.ListByPartner(ctx, partnerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toPartnerPriceDTOs(rows), total, page, limit)
	return &result, nil
}

// ListAllPartnerPrices retrieves all price rows with pagination (admin).
func (s *PartnerPriceService) ListAllPartnerPrices(ctx context.Context, page, limit int) (*domain.PaginatedResult[PartnerPriceDTO], error) {
	rows, total, err := s.prices.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toPartnerPriceDTOs(rows), total, page, limit)
	return &result, nil
}

// UpdatePartnerPrice replaces the matrix of an existing row. Non-admin actors
// may only update rows they own.
func (s *PartnerPriceService) UpdatePartnerPrice(ctx context.Context, actor auth.Actor, priceID uuid.UUID, req UpdatePartnerPriceRequest) (*PartnerPriceDTO, error) {
	pp, err := s.prices.FindByID(ctx, priceID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !pp.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("price row does not belong to this partner")
	}

	if err := pp.UpdateMatrix(req.Matrix); err != nil {
		return nil, err
	}

	if err := s.prices.Update(ctx, pp); err != nil {
		return nil, err
	}

	result := toPartnerPriceDTO(pp)
	return &result, nil
}

// DeletePartnerPrice removes a price row. Non-admin actors may only delete
// rows they own.
func (s *PartnerPriceService) DeletePartnerPrice(ctx context.Context, actor auth.Actor, priceID uuid.UUID) error {
	pp, err := s.prices.FindByID(ctx, priceID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !pp.IsOwnedBy(actor.ID) {
		return domain.NewForbiddenError("price row does not belong to this partner")
	}
	return s.prices.Delete(ctx, pp.ID())
}

// ResolvePrice returns the configured bucket price for a boat, day type and
// period. An unset bucket fails with a price-not-configured error rather than
// returning zero.
func (s *PartnerPriceService) ResolvePrice(ctx context.Context, boatID uuid.UUID, dayType, period string) (*ResolvedPriceDTO, error) {
	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}

	pp, err := s.prices.FindByBoatAndPartner(ctx, bt.ID(), bt.OwnerID())
	if err != nil {
		return nil, err
	}

	priceCents, err := pp.Resolve(pricing.DayType(dayType), pricing.Period(period))
	if err != nil {
		return nil, err
	}

	return &ResolvedPriceDTO{
		BoatID:     bt.ID(),
		PartnerID:  pp.PartnerID(),
		DayType:    dayType,
		Period:     period,
		PriceCents: priceCents,
		Currency:   domain.CurrencyBRL,
	}, nil
}

// --- Helpers ---

func toPartnerPriceDTO(pp *pricing.PartnerPrice) PartnerPriceDTO {
	return PartnerPriceDTO{
		ID:        pp.ID(),
		PartnerID: pp.PartnerID(),
		BoatID:    pp.BoatID(),
		Matrix:    pp.Matrix(),
		Version:   pp.Version(),
		CreatedAt: pp.CreatedAt(),
		UpdatedAt: pp.UpdatedAt(),
	}
}

func toPartnerPriceDTOs(rows []*pricing.PartnerPrice) []PartnerPriceDTO {
	dtos := make([]PartnerPriceDTO, len(rows))
	for i, pp := range rows {
		dtos[i] = toPartnerPriceDTO(pp)
	}
	return dtos
}
