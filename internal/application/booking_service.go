package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/boat"
	bookingDomain "github.com/funntour/service-rental/internal/domain/booking"
	"github.com/funntour/service-rental/internal/domain/pricing"
	"github.com/funntour/service-rental/internal/events"
)

// EventPublisher publishes event envelopes to the broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event events.Event) error
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	BoatID    uuid.UUID `json:"boat_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	// Period selects a partner matrix bucket (morning/afternoon/night/fullday).
	// Empty means the boat's generic day rate.
	Period string `json:"period"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	BoatID          uuid.UUID `json:"boat_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Period          string    `json:"period,omitempty"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AvailabilityDTO is the response for an availability check.
type AvailabilityDTO struct {
	BoatID    uuid.UUID `json:"boat_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Available bool      `json:"available"`
}

// QuoteDTO is the response for a price quote.
type QuoteDTO struct {
	BoatID          uuid.UUID `json:"boat_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Period          string    `json:"period,omitempty"`
	Days            int       `json:"days"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
}

// BookingService is the application service orchestrating booking use cases:
// availability, pricing and the lifecycle state machine.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	boats    boat.BoatRepository
	prices   pricing.PartnerPriceRepository
	dayRate  bookingDomain.PricingStrategy
	calendar pricing.Calendar
	producer EventPublisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	boats boat.BoatRepository,
	prices pricing.PartnerPriceRepository,
	dayRate bookingDomain.PricingStrategy,
	calendar pricing.Calendar,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		boats:    boats,
		prices:   prices,
		dayRate:  dayRate,
		calendar: calendar,
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking validates the request, prices the rental and persists a
// pending booking. The overlap check runs inside the repository transaction,
// so two concurrent requests for the same boat and interval cannot both
// succeed.
func (s *BookingService) CreateBooking(ctx context.Context, actor auth.Actor, req CreateBookingRequest) (*BookingDTO, error) {
	rng, err := bookingDomain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	bt, err := s.boats.FindByID(ctx, req.BoatID)
	if err != nil {
		return nil, err
	}
	if !bt.IsAvailable() {
		return nil, domain.NewUnavailableError("boat is not available for booking")
	}

	period, priceCents, err := s.quote(ctx, bt, rng, req.Period)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(actor.ID, bt.ID(), rng, period, priceCents, domain.CurrencyBRL)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCreatedEvent{
		BookingID:       bk.ID(),
		UserID:          bk.UserID(),
		BoatID:          bk.BoatID(),
		StartDate:       bk.Dates().Start,
		EndDate:         bk.Dates().End,
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.BookingCreated, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CheckAvailability reports whether the boat is free for the interval. A
// positive answer is advisory only; creation re-checks inside a transaction.
func (s *BookingService) CheckAvailability(ctx context.Context, boatID uuid.UUID, start, end time.Time) (*AvailabilityDTO, error) {
	rng, err := bookingDomain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}

	available := bt.IsAvailable()
	if available {
		count, err := s.bookings.CountOverlapping(ctx, boatID, rng.Start, rng.End, nil)
		if err != nil {
			return nil, err
		}
		available = count == 0
	}

	return &AvailabilityDTO{
		BoatID:    boatID,
		StartDate: rng.Start,
		EndDate:   rng.End,
		Available: available,
	}, nil
}

// QuotePrice computes the price for a prospective booking without creating it.
func (s *BookingService) QuotePrice(ctx context.Context, boatID uuid.UUID, start, end time.Time, period string) (*QuoteDTO, error) {
	rng, err := bookingDomain.NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	bt, err := s.boats.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}

	resolved, priceCents, err := s.quote(ctx, bt, rng, period)
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		BoatID:          boatID,
		StartDate:       rng.Start,
		EndDate:         rng.End,
		Period:          string(resolved),
		Days:            rng.Days(),
		TotalPriceCents: priceCents,
		Currency:        domain.CurrencyBRL,
	}, nil
}

// SetStatus moves a booking through the lifecycle state machine. Admins may
// perform any legal transition; other actors may only cancel their own
// bookings. Illegal transitions fail regardless of actor.
func (s *BookingService) SetStatus(ctx context.Context, actor auth.Actor, bookingID uuid.UUID, target string) (*BookingDTO, error) {
	status, err := bookingDomain.ParseBookingStatus(target)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if status != bookingDomain.StatusCancelled {
			return nil, domain.NewForbiddenError("only administrators can perform this transition")
		}
		if !bk.IsOwnedBy(actor.ID) {
			return nil, domain.NewForbiddenError("booking does not belong to this user")
		}
	}

	if err := bk.TransitionTo(status); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingStatusEvent{
		BookingID:  bk.ID(),
		UserID:     bk.UserID(),
		BoatID:     bk.BoatID(),
		Status:     string(bk.Status()),
		ChangedBy:  actor.ID,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, eventTypeForStatus(status), bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking on behalf of the actor.
func (s *BookingService) CancelBooking(ctx context.Context, actor auth.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.SetStatus(ctx, actor, bookingID, string(bookingDomain.StatusCancelled))
}

// GetBooking retrieves a single booking. Non-admin actors can only see their
// own bookings.
func (s *BookingService) GetBooking(ctx context.Context, actor auth.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !bk.IsOwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetUserBookings retrieves paginated bookings for the actor.
func (s *BookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

// quote prices the rental. When the request names a period and the boat's
// owner has configured the matching matrix bucket for the start date's day
// type, the bucket price is the total. A missing row or unset bucket falls
// back to the day-rate model, in which case no period is recorded; the price
// is never defaulted to zero.
func (s *BookingService) quote(ctx context.Context, bt *boat.Boat, rng bookingDomain.DateRange, rawPeriod string) (pricing.Period, int64, error) {
	if rawPeriod == "" {
		priceCents, err := s.dayRate.Quote(bt.PricePerDayCents(), rng)
		return "", priceCents, err
	}

	period := pricing.Period(rawPeriod)
	if !period.IsValid() {
		return "", 0, domain.NewValidationError("invalid period: " + rawPeriod)
	}

	pp, err := s.prices.FindByBoatAndPartner(ctx, bt.ID(), bt.OwnerID())
	if err == nil {
		priceCents, rerr := pp.Resolve(s.calendar.DayTypeFor(rng.Start), period)
		if rerr == nil {
			return period, priceCents, nil
		}
		if !domain.IsCode(rerr, domain.CodePriceNotConfigured) {
			return "", 0, rerr
		}
	} else if !domain.IsCode(err, domain.CodeNotFound) {
		return "", 0, err
	}

	priceCents, err := s.dayRate.Quote(bt.PricePerDayCents(), rng)
	return "", priceCents, err
}

func eventTypeForStatus(status bookingDomain.BookingStatus) string {
	switch status {
	case bookingDomain.StatusConfirmed:
		return events.BookingConfirmed
	case bookingDomain.StatusCompleted:
		return events.BookingCompleted
	default:
		return events.BookingCancelled
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	evt, err := events.NewEvent("service-rental", eventType, data)
	if err != nil {
		s.logger.Error("failed to create event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, key, evt); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		UserID:          bk.UserID(),
		BoatID:          bk.BoatID(),
		StartDate:       bk.Dates().Start,
		EndDate:         bk.Dates().End,
		Period:          string(bk.Period()),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		Status:          string(bk.Status()),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}
