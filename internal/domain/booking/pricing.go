package booking

// PricingStrategy defines the interface for quoting a booking price from a
// boat's generic day rate.
type PricingStrategy interface {
	// Quote returns the total price in cents for the given day rate and range.
	Quote(pricePerDayCents int64, rng DateRange) (int64, error)
}

// DayRatePricing implements the default day-rate model: the billable day
// count (partial days round up, minimum one) times the boat's day rate.
type DayRatePricing struct{}

// NewDayRatePricing creates a new DayRatePricing.
func NewDayRatePricing() *DayRatePricing {
	return &DayRatePricing{}
}

// Quote computes the total price in cents. The same inputs always yield the
// same amount.
func (p *DayRatePricing) Quote(pricePerDayCents int64, rng DateRange) (int64, error) {
	if _, err := NewDateRange(rng.Start, rng.End); err != nil {
		return 0, err
	}
	return int64(rng.Days()) * pricePerDayCents, nil
}
