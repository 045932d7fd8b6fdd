package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents is the Kafka topic for booking lifecycle events.
const TopicBookingEvents = "rental.booking.events"

// Booking event types.
const (
	BookingCreated   = "rental.booking.created"
	BookingConfirmed = "rental.booking.confirmed"
	BookingCancelled = "rental.booking.cancelled"
	BookingCompleted = "rental.booking.completed"
)

// Event is a CloudEvents-style envelope for messages on the broker.
type Event struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	Time        time.Time       `json:"time"`
	ContentType string          `json:"datacontenttype"`
	Data        json.RawMessage `json:"data"`
}

// NewEvent builds an envelope with the payload serialized to JSON.
func NewEvent(source, eventType string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		ID:          uuid.New().String(),
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
		ContentType: "application/json",
		Data:        raw,
	}, nil
}

// ParseData deserializes the envelope payload into v.
func (e Event) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// BookingCreatedEvent is published when a booking enters pending.
type BookingCreatedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	UserID          uuid.UUID `json:"user_id"`
	BoatID          uuid.UUID `json:"boat_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingStatusEvent is published on confirm, cancel and complete.
type BookingStatusEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	BoatID     uuid.UUID `json:"boat_id"`
	Status     string    `json:"status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
