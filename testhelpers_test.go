//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/database"
	bookingDomain "github.com/funntour/service-rental/internal/domain/booking"
	"github.com/funntour/service-rental/internal/domain/pricing"
	"github.com/funntour/service-rental/internal/events"
	"github.com/funntour/service-rental/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// rentalStack holds wired-up service components.
type rentalStack struct {
	Bookings *application.BookingService
	Boats    *application.BoatService
	Prices   *application.PartnerPriceService
}

// noopPublisher drops events; broker behavior is not under test here.
type noopPublisher struct{}

func (noopPublisher) PublishEvent(ctx context.Context, topic, key string, event events.Event) error {
	return nil
}

// setupPostgres starts a PostgreSQL container, connects GORM and applies the
// SQL migrations (including the btree_gist exclusion constraint).
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rental",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rental sslmode=disable", host, port.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	logger := zap.NewNop()
	dbURL := fmt.Sprintf("postgres://test:test@%s:%s/test_rental?sslmode=disable", host, port.Port())
	require.NoError(t, database.RunMigrations(dbURL, "migrations", logger), "failed to apply migrations")

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupRentalStack wires up the application services against the test DB.
func setupRentalStack(t *testing.T, db *gorm.DB) *rentalStack {
	t.Helper()
	logger := zap.NewNop()

	bookingRepo := repository.NewGormBookingRepository(db)
	boatRepo := repository.NewGormBoatRepository(db)
	priceRepo := repository.NewGormPartnerPriceRepository(db)

	calendar, err := pricing.NewCalendar(nil)
	require.NoError(t, err)

	bookingSvc := application.NewBookingService(
		bookingRepo, boatRepo, priceRepo,
		bookingDomain.NewDayRatePricing(),
		calendar,
		noopPublisher{},
		logger,
	)
	boatSvc := application.NewBoatService(boatRepo, logger)
	priceSvc := application.NewPartnerPriceService(priceRepo, boatRepo, logger)

	return &rentalStack{Bookings: bookingSvc, Boats: boatSvc, Prices: priceSvc}
}

// seedBoat inserts an available boat and returns its ID.
func seedBoat(t *testing.T, db *gorm.DB, ownerID uuid.UUID, dayRateCents int64) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	model := repository.BoatModel{
		ID:               uuid.New(),
		Name:             fmt.Sprintf("Test Boat %s", uuid.New().String()[:6]),
		BoatType:         "sailboat",
		Capacity:         8,
		PricePerDayCents: dayRateCents,
		IsAvailable:      true,
		OwnerID:          ownerID,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed boat")
	return model.ID
}
