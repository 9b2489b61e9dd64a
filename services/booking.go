package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// BookingService is the booking ledger: it creates and cancels bookings under
// the slot's capacity constraint. The check-then-insert sequence runs inside
// a single transaction with a row lock on the slot, so two requests racing
// past the capacity check cannot jointly overbook it.
type BookingService struct {
	counters *CounterService
	notifier *NotificationService
	events   *EventService
}

func NewBookingService() *BookingService {
	return &BookingService{
		counters: NewCounterService(),
		notifier: NewNotificationService(),
		events:   NewEventService(),
	}
}

// CreateBooking books one table at a slot for the customer. Party-size and
// capacity violations surface as ErrPartySize and ErrCapacityExceeded; the
// restaurant's booking counter moves in the same transaction.
func (bs *BookingService) CreateBooking(customerID, slotID uint, numberOfPeople int) (*models.Booking, error) {
	if numberOfPeople <= 0 {
		return nil, validationf("number of people must be positive")
	}

	var booking models.Booking
	var slot models.BookingSlot

	err := runInTx(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&slot, slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if numberOfPeople > slot.TableSize {
			return ErrPartySize
		}

		booked, err := bs.counters.BookedCount(tx, slot.ID)
		if err != nil {
			return err
		}
		if booked >= int64(slot.TotalTables) {
			return ErrCapacityExceeded
		}

		booking = models.Booking{
			CustomerID:       customerID,
			SlotID:           slot.ID,
			NumberOfPeople:   numberOfPeople,
			Status:           models.BookingStatusBooked,
			BookingDatetime:  timeNow().UTC(),
			ConfirmationCode: uuid.NewString(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		return bs.counters.ApplyBookingDelta(tx, slot.RestaurantID, +1)
	})
	if err != nil {
		return nil, err
	}

	// Best effort after commit: neither a failed email nor a failed event
	// rolls back or fails the booking.
	bs.sendConfirmation(&booking, &slot)
	bs.events.PublishBookingEvent(EventBookingCreated, &booking, slot.RestaurantID)

	return &booking, nil
}

// CancelBooking transitions a booking the customer owns to Cancelled.
// Cancelled is terminal: cancelling twice is ErrAlreadyCancelled, and the
// restaurant counter comes back down by one, floored at zero.
func (bs *BookingService) CancelBooking(customerID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	var slot models.BookingSlot

	err := runInTx(func(tx *gorm.DB) error {
		// The row lock makes the terminal-status check race-free: a second
		// concurrent cancel blocks here and then sees Cancelled.
		err := lockForUpdate(tx).Where("id = ? AND customer_id = ?", bookingID, customerID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if booking.Status == models.BookingStatusCancelled {
			return ErrAlreadyCancelled
		}

		if err := tx.First(&slot, booking.SlotID).Error; err != nil {
			return err
		}

		booking.Status = models.BookingStatusCancelled
		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}

		return bs.counters.ApplyBookingDelta(tx, slot.RestaurantID, -1)
	})
	if err != nil {
		return nil, err
	}

	bs.events.PublishBookingEvent(EventBookingCancelled, &booking, slot.RestaurantID)

	return &booking, nil
}

// UpdateBookingStatus is the customer-facing status mutation. Cancellation is
// the only transition a customer may request.
func (bs *BookingService) UpdateBookingStatus(customerID, bookingID uint, status string) (*models.Booking, error) {
	if status != models.BookingStatusCancelled {
		return nil, ErrInvalidTransition
	}
	return bs.CancelBooking(customerID, bookingID)
}

// ListCustomerBookings returns the customer's bookings, newest first.
func (bs *BookingService) ListCustomerBookings(customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := storage.DB.
		Preload("Slot").Preload("Slot.Restaurant").
		Where("customer_id = ?", customerID).
		Order("booking_datetime DESC").
		Find(&bookings).Error
	return bookings, err
}

// GetCustomerBooking resolves one booking the customer owns.
func (bs *BookingService) GetCustomerBooking(customerID, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := storage.DB.
		Preload("Slot").Preload("Slot.Restaurant").
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (bs *BookingService) sendConfirmation(booking *models.Booking, slot *models.BookingSlot) {
	var customer models.User
	if err := storage.DB.First(&customer, booking.CustomerID).Error; err != nil {
		logrus.WithError(err).WithField("bookingID", booking.ID).Warn("confirmation skipped: customer lookup failed")
		return
	}
	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, slot.RestaurantID).Error; err != nil {
		logrus.WithError(err).WithField("bookingID", booking.ID).Warn("confirmation skipped: restaurant lookup failed")
		return
	}

	bs.notifier.SendBookingConfirmation(customer.Email, customer.FirstName, BookingConfirmation{
		RestaurantName:   restaurant.Name,
		Date:             slot.SlotDatetime.Format(utils.DateLayout),
		Time:             slot.SlotDatetime.Format(utils.ClockLayout),
		PartySize:        booking.NumberOfPeople,
		BookingID:        booking.ID,
		ConfirmationCode: booking.ConfirmationCode,
	})
}
