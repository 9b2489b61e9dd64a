package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	ManagerID uint `json:"managerID" gorm:"not null;index"`
	Manager   User `json:"manager" gorm:"foreignKey:ManagerID"`

	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	CuisineType string `json:"cuisineType" gorm:"size:100"`
	CostRating  int    `json:"costRating"`
	ContactInfo string `json:"contactInfo" gorm:"size:20"`

	Address   string  `json:"address" gorm:"not null"`
	City      string  `json:"city" gorm:"size:100;index"`
	State     string  `json:"state" gorm:"size:100;index"`
	ZipCode   string  `json:"zipCode" gorm:"size:10;index"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Photos datatypes.JSON `json:"photos" gorm:"type:jsonb"` // photo URL array

	// Visibility gate: customers only see approved restaurants.
	Approved bool `json:"approved" gorm:"default:false;index"`

	// Denormalized booking counter, valid for BookedTodayDate (UTC).
	// Reset lazily on the first counter write of a new day.
	TimesBookedToday int        `json:"timesBookedToday" gorm:"default:0;check:times_booked_today >= 0"`
	BookedTodayDate  *time.Time `json:"-" gorm:"type:date"`

	Hours        []RestaurantHours `json:"hours,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BookingSlots []BookingSlot     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
