package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	RestaurantID uint       `json:"restaurantID" gorm:"not null;index;uniqueIndex:idx_review_once"`
	Restaurant   Restaurant `json:"-" gorm:"foreignKey:RestaurantID"`
	CustomerID   uint       `json:"customerID" gorm:"not null;index;uniqueIndex:idx_review_once"`
	Customer     User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"type:text"`
}
