package services

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	bookingEventsTopic = "booking-events"
)

// EventService publishes booking lifecycle events for downstream analytics.
// Publishing is best effort with a short timeout; the booking never waits on
// or fails because of the broker.
type EventService struct {
	writer *kafka.Writer
}

func NewEventService() *EventService {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		logrus.Debug("KAFKA_BROKER not set, booking events disabled")
		return &EventService{}
	}

	return &EventService{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        bookingEventsTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// BookingEvent is the wire form of a booking lifecycle event.
type BookingEvent struct {
	Type           string    `json:"type"`
	BookingID      uint      `json:"bookingID"`
	SlotID         uint      `json:"slotID"`
	RestaurantID   uint      `json:"restaurantID"`
	CustomerID     uint      `json:"customerID"`
	NumberOfPeople int       `json:"numberOfPeople"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// PublishBookingEvent emits one event; failures are logged and swallowed.
func (es *EventService) PublishBookingEvent(eventType string, booking *models.Booking, restaurantID uint) {
	if es.writer == nil {
		return
	}

	event := BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		SlotID:         booking.SlotID,
		RestaurantID:   restaurantID,
		CustomerID:     booking.CustomerID,
		NumberOfPeople: booking.NumberOfPeople,
		OccurredAt:     timeNow().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal booking event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := es.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: payload,
	}); err != nil {
		logrus.WithError(err).WithField("type", eventType).Warn("failed to publish booking event")
	}
}

// Close flushes and closes the underlying writer.
func (es *EventService) Close() error {
	if es.writer == nil {
		return nil
	}
	return es.writer.Close()
}
