package booking

import (
	"time"

	"github.com/funntour/service-rental/internal/domain"
)

// DateRange is a half-open rental interval [Start, End). All instants are
// UTC.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange creates a validated DateRange. End must be strictly after
// Start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = start.UTC()
	end = end.UTC()
	if !end.After(start) {
		return DateRange{}, domain.NewValidationError("end date must be after start date")
	}
	return DateRange{Start: start, End: end}, nil
}

// Overlaps reports whether the two intervals share any instant. Because
// intervals are half-open, one ending exactly when the other starts does not
// overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Days returns the billable day count: partial days round up, minimum one.
func (r DateRange) Days() int {
	d := r.End.Sub(r.Start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
