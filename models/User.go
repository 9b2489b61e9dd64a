package models

import "gorm.io/gorm"

// Roles recognized in access-token claims. The booking core trusts these;
// issuance lives in the identity service.
const (
	RoleCustomer          = "Customer"
	RoleRestaurantManager = "RestaurantManager"
	RoleAdmin             = "Admin"
)

type User struct {
	gorm.Model
	FirstName string `json:"firstName" gorm:"not null"`
	LastName  string `json:"lastName" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string `json:"phone"`
	Role      string `json:"role" gorm:"size:50;default:'Customer'"`
}
