package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusBooked    = "Booked"
	BookingStatusCancelled = "Cancelled"
)

type Booking struct {
	gorm.Model
	CustomerID uint `json:"customerID" gorm:"not null;index"`
	Customer   User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	SlotID uint        `json:"slotID" gorm:"not null;index"`
	Slot   BookingSlot `json:"slot,omitempty" gorm:"foreignKey:SlotID"`

	NumberOfPeople int    `json:"numberOfPeople" gorm:"not null"`
	Status         string `json:"status" gorm:"size:50;default:'Booked';index"`

	// Creation timestamp, immutable after insert.
	BookingDatetime  time.Time `json:"bookingDatetime" gorm:"not null"`
	ConfirmationCode string    `json:"confirmationCode" gorm:"size:36;uniqueIndex"`
}
