//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funntour/service-rental/internal/application"
	"github.com/funntour/service-rental/internal/auth"
	"github.com/funntour/service-rental/internal/domain"
	"github.com/funntour/service-rental/internal/domain/pricing"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBookingIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupRentalStack(t, infra.DB)
	ctx := context.Background()

	ownerID := uuid.New()

	t.Run("overlapping create fails with slot taken", func(t *testing.T) {
		boatID := seedBoat(t, infra.DB, ownerID, 10000)
		client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}

		first, err := stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-06-10"),
			EndDate:   day("2024-06-15"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(50000), first.TotalPriceCents)

		_, err = stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-06-12"),
			EndDate:   day("2024-06-20"),
		})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeSlotTaken))
	})

	t.Run("back to back bookings both succeed", func(t *testing.T) {
		boatID := seedBoat(t, infra.DB, ownerID, 10000)
		client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}

		_, err := stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-07-01"),
			EndDate:   day("2024-07-05"),
		})
		require.NoError(t, err)

		_, err = stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-07-05"),
			EndDate:   day("2024-07-10"),
		})
		require.NoError(t, err, "a booking starting exactly when another ends must succeed")
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		boatID := seedBoat(t, infra.DB, ownerID, 10000)
		client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}

		first, err := stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-08-01"),
			EndDate:   day("2024-08-05"),
		})
		require.NoError(t, err)

		_, err = stack.Bookings.CancelBooking(ctx, client, first.ID)
		require.NoError(t, err)

		_, err = stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-08-01"),
			EndDate:   day("2024-08-05"),
		})
		require.NoError(t, err, "cancelled bookings must not block the interval")
	})

	t.Run("concurrent identical creates let exactly one through", func(t *testing.T) {
		boatID := seedBoat(t, infra.DB, ownerID, 10000)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
				_, errs[i] = stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
					BoatID:    boatID,
					StartDate: day("2024-09-10"),
					EndDate:   day("2024-09-15"),
				})
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			ok := domain.IsCode(err, domain.CodeSlotTaken) || domain.IsCode(err, domain.CodeConflict)
			assert.True(t, ok, "unexpected error: %v", err)
		}
		assert.Equal(t, 1, successes, "exactly one concurrent create must win")
	})

	t.Run("admin lifecycle and terminal state", func(t *testing.T) {
		boatID := seedBoat(t, infra.DB, ownerID, 10000)
		client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
		admin := auth.Actor{ID: uuid.New(), Role: auth.RoleAdmin}

		bk, err := stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-10-01"),
			EndDate:   day("2024-10-03"),
		})
		require.NoError(t, err)

		confirmed, err := stack.Bookings.SetStatus(ctx, admin, bk.ID, "confirmed")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", confirmed.Status)

		completed, err := stack.Bookings.SetStatus(ctx, admin, bk.ID, "completed")
		require.NoError(t, err)
		assert.Equal(t, "completed", completed.Status)

		_, err = stack.Bookings.SetStatus(ctx, admin, bk.ID, "cancelled")
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeInvalidState))
	})
}

func TestPartnerPriceIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	infra := setupPostgres(t)
	defer infra.Cleanup()
	stack := setupRentalStack(t, infra.DB)
	ctx := context.Background()

	partner := auth.Actor{ID: uuid.New(), Role: auth.RolePartner}
	boatID := seedBoat(t, infra.DB, partner.ID, 10000)

	weekendNight := int64(150)
	created, err := stack.Prices.CreatePartnerPrice(ctx, partner, application.CreatePartnerPriceRequest{
		BoatID: boatID,
		Matrix: pricing.PriceMatrix{WeekendNight: &weekendNight},
	})
	require.NoError(t, err)

	t.Run("second row for same boat and partner is rejected", func(t *testing.T) {
		_, err := stack.Prices.CreatePartnerPrice(ctx, partner, application.CreatePartnerPriceRequest{
			BoatID: boatID,
			Matrix: pricing.PriceMatrix{WeekendNight: &weekendNight},
		})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeDuplicate))
	})

	t.Run("configured bucket resolves", func(t *testing.T) {
		resolved, err := stack.Prices.ResolvePrice(ctx, boatID, "weekend", "night")
		require.NoError(t, err)
		assert.Equal(t, int64(150), resolved.PriceCents)
	})

	t.Run("unset bucket is not configured", func(t *testing.T) {
		_, err := stack.Prices.ResolvePrice(ctx, boatID, "weekday", "morning")
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodePriceNotConfigured))
	})

	t.Run("booking uses weekend night bucket", func(t *testing.T) {
		client := auth.Actor{ID: uuid.New(), Role: auth.RoleClient}
		// 2024-06-15 is a Saturday.
		bk, err := stack.Bookings.CreateBooking(ctx, client, application.CreateBookingRequest{
			BoatID:    boatID,
			StartDate: day("2024-06-15"),
			EndDate:   day("2024-06-16"),
			Period:    "night",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(150), bk.TotalPriceCents)
	})

	t.Run("matrix update picks up new price", func(t *testing.T) {
		newPrice := int64(175)
		_, err := stack.Prices.UpdatePartnerPrice(ctx, partner, created.ID, application.UpdatePartnerPriceRequest{
			Matrix: pricing.PriceMatrix{WeekendNight: &newPrice},
		})
		require.NoError(t, err)

		resolved, err := stack.Prices.ResolvePrice(ctx, boatID, "weekend", "night")
		require.NoError(t, err)
		assert.Equal(t, int64(175), resolved.PriceCents)
	})
}
