package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funntour/service-rental/internal/domain"
)

func cents(v int64) *int64 { return &v }

func TestPartnerPriceResolve(t *testing.T) {
	matrix := PriceMatrix{
		WeekendNight:   cents(150),
		WeekdayFullDay: cents(30000),
	}
	pp, err := NewPartnerPrice(uuid.New(), uuid.New(), matrix)
	require.NoError(t, err)

	t.Run("configured bucket resolves", func(t *testing.T) {
		price, err := pp.Resolve(DayTypeWeekend, PeriodNight)
		require.NoError(t, err)
		assert.Equal(t, int64(150), price)
	})

	t.Run("unset bucket fails, never zero", func(t *testing.T) {
		_, err := pp.Resolve(DayTypeWeekday, PeriodMorning)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodePriceNotConfigured))
	})

	t.Run("invalid day type rejected", func(t *testing.T) {
		_, err := pp.Resolve(DayType("someday"), PeriodMorning)
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		_, err := pp.Resolve(DayTypeWeekday, Period("brunch"))
		require.Error(t, err)
	})
}

func TestNewPartnerPriceValidation(t *testing.T) {
	t.Run("requires partner", func(t *testing.T) {
		_, err := NewPartnerPrice(uuid.Nil, uuid.New(), PriceMatrix{})
		require.Error(t, err)
	})

	t.Run("requires boat", func(t *testing.T) {
		_, err := NewPartnerPrice(uuid.New(), uuid.Nil, PriceMatrix{})
		require.Error(t, err)
	})

	t.Run("rejects negative bucket", func(t *testing.T) {
		_, err := NewPartnerPrice(uuid.New(), uuid.New(), PriceMatrix{HolidayMorning: cents(-1)})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("empty matrix is allowed", func(t *testing.T) {
		pp, err := NewPartnerPrice(uuid.New(), uuid.New(), PriceMatrix{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), pp.Version())
	})
}

func TestUpdateMatrix(t *testing.T) {
	pp, err := NewPartnerPrice(uuid.New(), uuid.New(), PriceMatrix{})
	require.NoError(t, err)

	require.NoError(t, pp.UpdateMatrix(PriceMatrix{HolidayFullDay: cents(50000)}))
	assert.Equal(t, int64(2), pp.Version())

	price, err := pp.Resolve(DayTypeHoliday, PeriodFullDay)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), price)

	err = pp.UpdateMatrix(PriceMatrix{WeekendMorning: cents(-5)})
	require.Error(t, err)
}

func TestCalendarDayType(t *testing.T) {
	cal, err := NewCalendar([]string{"2024-12-25", "2024-06-15"})
	require.NoError(t, err)

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	// 2024-06-10 is a Monday, 2024-06-15 a Saturday, 2024-12-25 a Wednesday.
	assert.Equal(t, DayTypeWeekday, cal.DayTypeFor(day("2024-06-10")))
	assert.Equal(t, DayTypeWeekend, cal.DayTypeFor(day("2024-06-16")))
	assert.Equal(t, DayTypeHoliday, cal.DayTypeFor(day("2024-12-25")))

	// A holiday falling on a weekend classifies as holiday.
	assert.Equal(t, DayTypeHoliday, cal.DayTypeFor(day("2024-06-15")))
}

func TestNewCalendarRejectsBadDates(t *testing.T) {
	_, err := NewCalendar([]string{"25/12/2024"})
	require.Error(t, err)
}
