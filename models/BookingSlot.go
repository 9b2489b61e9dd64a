package models

import (
	"time"

	"gorm.io/gorm"
)

// BookingSlot is a bookable (restaurant, time, table-size) unit. The composite
// unique index doubles as the dedup key for the recurring-slot generator.
type BookingSlot struct {
	gorm.Model
	RestaurantID uint       `json:"restaurantID" gorm:"not null;index;uniqueIndex:idx_slot_key"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`

	SlotDatetime time.Time `json:"slotDatetime" gorm:"not null;index;uniqueIndex:idx_slot_key"` // UTC
	TableSize    int       `json:"tableSize" gorm:"not null;uniqueIndex:idx_slot_key"`
	TotalTables  int       `json:"totalTables" gorm:"not null"`

	Bookings []Booking `json:"-" gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
