package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/boat"
	bookingDomain "github.com/funntour/service-rental/internal/domain/booking"
	"github.com/funntour/service-rental/internal/domain/pricing"
	"github.com/funntour/service-rental/internal/events"
)

// --- Mocks ---

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if bk := args.Get(0); bk != nil {
		return bk.(*bookingDomain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockBookingRepo) CountOverlapping(ctx context.Context, boatID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, boatID, start, end, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

func (m *mockBookingRepo) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	args := m.Called(ctx, bk)
	return args.Error(0)
}

type mockBoatRepo struct {
	mock.Mock
}

func (m *mockBoatRepo) FindByID(ctx context.Context, id uuid.UUID) (*boat.Boat, error) {
	args := m.Called(ctx, id)
	if bt := args.Get(0); bt != nil {
		return bt.(*boat.Boat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBoatRepo) ListAll(ctx context.Context, page, limit int) ([]*boat.Boat, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*boat.Boat), args.Get(1).(int64), args.Error(2)
}

func (m *mockBoatRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*boat.Boat, int64, error) {
	args := m.Called(ctx, ownerID, page, limit)
	return args.Get(0).([]*boat.Boat), args.Get(1).(int64), args.Error(2)
}

func (m *mockBoatRepo) Save(ctx context.Context, bt *boat.Boat) error {
	args := m.Called(ctx, bt)
	return args.Error(0)
}

func (m *mockBoatRepo) Update(ctx context.Context, bt *boat.Boat) error {
	args := m.Called(ctx, bt)
	return args.Error(0)
}

func (m *mockBoatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPriceRepo struct {
	mock.Mock
}

func (m *mockPriceRepo) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PartnerPrice, error) {
	args := m.Called(ctx, id)
	if pp := args.Get(0); pp != nil {
		return pp.(*pricing.PartnerPrice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceRepo) FindByBoatAndPartner(ctx context.Context, boatID, partnerID uuid.UUID) (*pricing.PartnerPrice, error) {
	args := m.Called(ctx, boatID, partnerID)
	if pp := args.Get(0); pp != nil {
		return pp.(*pricing.PartnerPrice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID, page, limit int) ([]*pricing.PartnerPrice, int64, error) {
	args := m.Called(ctx, partnerID, page, limit)
	return args.Get(0).([]*pricing.PartnerPrice), args.Get(1).(int64), args.Error(2)
}

func (m *mockPriceRepo) ListAll(ctx context.Context, page, limit int) ([]*pricing.PartnerPrice, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*pricing.PartnerPrice), args.Get(1).(int64), args.Error(2)
}

func (m *mockPriceRepo) Save(ctx context.Context, pp *pricing.PartnerPrice) error {
	args := m.Called(ctx, pp)
	return args.Error(0)
}

func (m *mockPriceRepo) Update(ctx context.Context, pp *pricing.PartnerPrice) error {
	args := m.Called(ctx, pp)
	return args.Error(0)
}

func (m *mockPriceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic, key string, event events.Event) error {
	args := m.Called(ctx, topic, key, event)
	return args.Error(0)
}

// --- Fixtures ---

type serviceFixture struct {
	bookings  *mockBookingRepo
	boats     *mockBoatRepo
	prices    *mockPriceRepo
	publisher *mockPublisher
	service   *BookingService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	calendar, err := pricing.NewCalendar([]string{"2024-12-25"})
	require.NoError(t, err)

	f := &serviceFixture{
		bookings:  new(mockBookingRepo),
		boats:     new(mockBoatRepo),
		prices:    new(mockPriceRepo),
		publisher: new(mockPublisher),
	}
	f.service = NewBookingService(
		f.bookings, f.boats, f.prices,
		bookingDomain.NewDayRatePricing(),
		calendar,
		f.publisher,
		zap.NewNop(),
	)
	return f
}

func testBoat(ownerID uuid.UUID, dayRateCents int64, available bool) *boat.Boat {
	now := time.Now().UTC()
	return boat.Reconstruct(
		uuid.New(), "Mar Azul", "40ft sailboat", "sailboat",
		8, dayRateCents, available, ownerID, uuid.New(),
		1, now, now,
	)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Tests ---

func TestCreateBookingDayRate(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	bt := testBoat(uuid.New(), 100, true)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
	f.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	dto, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-03"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), dto.TotalPriceCents)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, actor.ID, dto.UserID)
	assert.Equal(t, domain.CurrencyBRL, dto.Currency)

	f.bookings.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	bt := testBoat(uuid.New(), 100, true)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
	f.bookings.On("Save", mock.Anything, mock.Anything).
		Return(domain.NewSlotTakenError("boat is already booked for this interval"))

	_, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeSlotTaken))
	f.publisher.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingBoatUnavailable(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	bt := testBoat(uuid.New(), 100, false)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)

	_, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeUnavailable))
}

func TestCreateBookingBoatNotFound(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	boatID := uuid.New()

	f.boats.On("FindByID", mock.Anything, boatID).
		Return(nil, domain.NewNotFoundError("boat", boatID.String()))

	_, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    boatID,
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestCreateBookingInvalidRange(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}

	_, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    uuid.New(),
		StartDate: day("2024-01-03"),
		EndDate:   day("2024-01-01"),
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
	f.boats.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestCreateBookingPartnerBucket(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	ownerID := uuid.New()
	bt := testBoat(ownerID, 100, true)

	weekendNight := int64(150)
	pp, err := pricing.NewPartnerPrice(ownerID, bt.ID(), pricing.PriceMatrix{WeekendNight: &weekendNight})
	require.NoError(t, err)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
	f.prices.On("FindByBoatAndPartner", mock.Anything, bt.ID(), ownerID).Return(pp, nil)
	f.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	// 2024-06-15 is a Saturday.
	dto, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-06-15"),
		EndDate:   day("2024-06-16"),
		Period:    "night",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), dto.TotalPriceCents)
	assert.Equal(t, "night", dto.Period)
}

func TestCreateBookingUnsetBucketFallsBackToDayRate(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	ownerID := uuid.New()
	bt := testBoat(ownerID, 100, true)

	pp, err := pricing.NewPartnerPrice(ownerID, bt.ID(), pricing.PriceMatrix{})
	require.NoError(t, err)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
	f.prices.On("FindByBoatAndPartner", mock.Anything, bt.ID(), ownerID).Return(pp, nil)
	f.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	dto, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-06-15"),
		EndDate:   day("2024-06-16"),
		Period:    "morning",
	})
	require.NoError(t, err)
	// Day rate, not zero, and no period recorded once the matrix did not apply.
	assert.Equal(t, int64(100), dto.TotalPriceCents)
	assert.Equal(t, "", dto.Period)
}

func TestCreateBookingNoPriceRowFallsBackToDayRate(t *testing.T) {
	f := newServiceFixture(t)
	actor := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	ownerID := uuid.New()
	bt := testBoat(ownerID, 250, true)

	f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
	f.prices.On("FindByBoatAndPartner", mock.Anything, bt.ID(), ownerID).
		Return(nil, domain.NewNotFoundError("partner price", bt.ID().String()))
	f.bookings.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	dto, err := f.service.CreateBooking(context.Background(), actor, CreateBookingRequest{
		BoatID:    bt.ID(),
		StartDate: day("2024-06-15"),
		EndDate:   day("2024-06-17"),
		Period:    "fullday",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), dto.TotalPriceCents)
	assert.Equal(t, "", dto.Period)
}

func seedBooking(t *testing.T, userID uuid.UUID, status bookingDomain.BookingStatus) *bookingDomain.Booking {
	t.Helper()
	rng, err := bookingDomain.NewDateRange(day("2024-08-01"), day("2024-08-03"))
	require.NoError(t, err)
	now := time.Now().UTC()
	return bookingDomain.Reconstruct(
		uuid.New(), userID, uuid.New(), rng, "", 20000,
		domain.CurrencyBRL, status, 1, now, now,
	)
}

func TestSetStatusAdminConfirms(t *testing.T) {
	f := newServiceFixture(t)
	admin := auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}
	bk := seedBooking(t, uuid.New(), bookingDomain.StatusPending)

	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	f.bookings.On("Update", mock.Anything, bk).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	dto, err := f.service.SetStatus(context.Background(), admin, bk.ID(), "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", dto.Status)
	assert.Equal(t, int64(2), dto.Version)
}

func TestSetStatusNonAdminCannotConfirm(t *testing.T) {
	f := newServiceFixture(t)
	userID := uuid.New()
	client := auth.Actor{ID: userID, Role: auth.RoleClient}
	bk := seedBooking(t, userID, bookingDomain.StatusPending)

	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	_, err := f.service.SetStatus(context.Background(), client, bk.ID(), "confirmed")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeForbidden))
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetStatusNonAdminCancelsOwnBooking(t *testing.T) {
	f := newServiceFixture(t)
	userID := uuid.New()
	client := auth.Actor{ID: userID, Role: auth.RoleClient}
	bk := seedBooking(t, userID, bookingDomain.StatusPending)

	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)
	f.bookings.On("Update", mock.Anything, bk).Return(nil)
	f.publisher.On("PublishEvent", mock.Anything, events.TopicBookingEvents, mock.Anything, mock.Anything).Return(nil)

	dto, err := f.service.CancelBooking(context.Background(), client, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", dto.Status)
}

func TestSetStatusNonAdminCannotCancelOthersBooking(t *testing.T) {
	f := newServiceFixture(t)
	client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
	bk := seedBooking(t, uuid.New(), bookingDomain.StatusPending)

	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	_, err := f.service.CancelBooking(context.Background(), client, bk.ID())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeForbidden))
}

func TestSetStatusTerminalStateRejected(t *testing.T) {
	f := newServiceFixture(t)
	admin := auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}
	bk := seedBooking(t, uuid.New(), bookingDomain.StatusCompleted)

	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	_, err := f.service.SetStatus(context.Background(), admin, bk.ID(), "cancelled")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
}

func TestSetStatusUnknownStatus(t *testing.T) {
	f := newServiceFixture(t)
	admin := auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}

	_, err := f.service.SetStatus(context.Background(), admin, uuid.New(), "drifting")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestCheckAvailability(t *testing.T) {
	f := newServiceFixture(t)
	bt := testBoat(uuid.New(), 100, true)

	t.Run("free interval", func(t *testing.T) {
		f.boats.On("FindByID", mock.Anything, bt.ID()).Return(bt, nil)
		f.bookings.On("CountOverlapping", mock.Anything, bt.ID(), day("2024-09-01"), day("2024-09-05"), (*uuid.UUID)(nil)).
			Return(int64(0), nil).Once()

		dto, err := f.service.CheckAvailability(context.Background(), bt.ID(), day("2024-09-01"), day("2024-09-05"))
		require.NoError(t, err)
		assert.True(t, dto.Available)
	})

	t.Run("occupied interval", func(t *testing.T) {
		f.bookings.On("CountOverlapping", mock.Anything, bt.ID(), day("2024-09-01"), day("2024-09-05"), (*uuid.UUID)(nil)).
			Return(int64(1), nil).Once()

		dto, err := f.service.CheckAvailability(context.Background(), bt.ID(), day("2024-09-01"), day("2024-09-05"))
		require.NoError(t, err)
		assert.False(t, dto.Available)
	})
}

func TestGetBookingOwnership(t *testing.T) {
	f := newServiceFixture(t)
	bk := seedBooking(t, uuid.New(), bookingDomain.StatusPending)
	f.bookings.On("FindByID", mock.Anything, bk.ID()).Return(bk, nil)

	t.Run("owner sees it", func(t *testing.T) {
		_, err := f.service.GetBooking(context.Background(), auth.Actor{ID: bk.UserID(), Role: auth.RoleClient}, bk.ID())
		require.NoError(t, err)
	})

	t.Run("admin sees it", func(t *testing.T) {
		_, err := f.service.GetBooking(context.Background(), auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}, bk.ID())
		require.NoError(t, err)
	})

	t.Run("stranger does not", func(t *testing.T) {
		_, err := f.service.GetBooking(context.Background(), auth.Actor{ID: uuid.New(), Role: auth.RoleClient}, bk.ID())
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeForbidden))
	})
}

func TestGetBookingStats(t *testing.T) {
	f := newServiceFixture(t)
	f.bookings.On("CountByStatus", mock.Anything).Return(map[string]int64{
		"pending":   3,
		"confirmed": 2,
		"cancelled": 1,
	}, nil)

	stats, err := f.service.GetBookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalBookings)
	assert.Equal(t, int64(3), stats.ByStatus["pending"])
}
