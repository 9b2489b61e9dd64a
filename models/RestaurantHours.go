package models

import "gorm.io/gorm"

// RestaurantHours is one weekday's operating window. Times are "15:04" strings
// interpreted in UTC; close must be after open (no overnight wraparound).
type RestaurantHours struct {
	gorm.Model
	RestaurantID uint   `json:"restaurantID" gorm:"not null;index;uniqueIndex:idx_restaurant_day"`
	DayOfWeek    string `json:"dayOfWeek" gorm:"size:20;not null;uniqueIndex:idx_restaurant_day"`
	OpenTime     string `json:"openTime" gorm:"size:5;not null"`
	CloseTime    string `json:"closeTime" gorm:"size:5;not null"`
}
