package pricing

import (
	"fmt"
	"time"
)

// DayType classifies a calendar date for pricing.
type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeWeekend DayType = "weekend"
	DayTypeHoliday DayType = "holiday"
)

// IsValid returns true if the day type is recognized.
func (d DayType) IsValid() bool {
	switch d {
	case DayTypeWeekday, DayTypeWeekend, DayTypeHoliday:
		return true
	}
	return false
}

// Period is a sub-day time bucket used for period-rate pricing.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodNight     Period = "night"
	PeriodFullDay   Period = "fullday"
)

// IsValid returns true if the period is recognized.
func (p Period) IsValid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodNight, PeriodFullDay:
		return true
	}
	return false
}

// Calendar classifies dates into day types. Saturdays and Sundays are
// weekends unless the date is a configured holiday; holidays win.
type Calendar struct {
	holidays map[string]struct{}
}

// NewCalendar builds a Calendar from holiday dates in YYYY-MM-DD form.
func NewCalendar(holidayDates []string) (Calendar, error) {
	holidays := make(map[string]struct{}, len(holidayDates))
	for _, d := range holidayDates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return Calendar{}, fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
		holidays[d] = struct{}{}
	}
	return Calendar{holidays: holidays}, nil
}

// DayTypeFor returns the day type for the given date.
func (c Calendar) DayTypeFor(t time.Time) DayType {
	if _, ok := c.holidays[t.UTC().Format("2006-01-02")]; ok {
		return DayTypeHoliday
	}
	switch t.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return DayTypeWeekend
	}
	return DayTypeWeekday
}
