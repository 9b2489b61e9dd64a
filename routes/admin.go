package routes

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// PendingRestaurants lists restaurants awaiting approval.
func PendingRestaurants(ctx iris.Context) {
	var restaurants []models.Restaurant
	if err := storage.DB.Where("approved = ?", false).Order("created_at ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(effectiveCounters(restaurants))
}

// ApprovedRestaurants lists restaurants already approved.
func ApprovedRestaurants(ctx iris.Context) {
	var restaurants []models.Restaurant
	if err := storage.DB.Where("approved = ?", true).Order("name ASC").Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(effectiveCounters(restaurants))
}

// ApproveRestaurant flips the visibility gate for one restaurant.
func ApproveRestaurant(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	before := restaurant
	restaurant.Approved = true
	if err := storage.DB.Model(&restaurant).Update("approved", true).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "restaurant.approve", "restaurant", restaurant.ID, before, restaurant)
	ctx.JSON(iris.Map{"message": "Restaurant " + restaurant.Name + " has been approved"})
}

// RemoveRestaurant deletes a restaurant and everything under it.
func RemoveRestaurant(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var restaurant models.Restaurant
	if err := storage.DB.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	name := restaurant.Name
	if err := storage.DB.Select("Hours", "BookingSlots").Delete(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "restaurant.remove", "restaurant", restaurant.ID, restaurant, nil)
	ctx.JSON(iris.Map{"message": "Restaurant " + name + " has been removed"})
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type topRestaurant struct {
	RestaurantID uint    `json:"restaurantID"`
	Name         string  `json:"name"`
	BookingCount int64   `json:"bookingCount"`
	AvgRating    float64 `json:"avgRating"`
}

// AnalyticsDashboard rolls up the last 30 days of bookings for the admin
// dashboard.
func AnalyticsDashboard(ctx iris.Context) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -30)

	var totalBookings int64
	if err := storage.DB.Model(&models.Booking{}).
		Where("booking_datetime BETWEEN ? AND ?", startDate, endDate).
		Count(&totalBookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var byStatus []statusCount
	if err := storage.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("booking_datetime BETWEEN ? AND ?", startDate, endDate).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var top []topRestaurant
	err := storage.DB.Model(&models.Booking{}).
		Select("restaurants.id AS restaurant_id, restaurants.name AS name, COUNT(bookings.id) AS booking_count").
		Joins("JOIN booking_slots ON booking_slots.id = bookings.slot_id").
		Joins("JOIN restaurants ON restaurants.id = booking_slots.restaurant_id").
		Where("bookings.booking_datetime BETWEEN ? AND ?", startDate, endDate).
		Group("restaurants.id, restaurants.name").
		Order("booking_count DESC").
		Limit(5).
		Scan(&top).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	counters := services.NewCounterService()
	for i := range top {
		rating, err := counters.AverageRating(top[i].RestaurantID)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		top[i].AvgRating = rating
	}

	var newRestaurants int64
	if err := storage.DB.Model(&models.Restaurant{}).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Count(&newRestaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var pendingRestaurants int64
	if err := storage.DB.Model(&models.Restaurant{}).
		Where("approved = ?", false).
		Count(&pendingRestaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"totalBookings":      totalBookings,
		"bookingsByStatus":   byStatus,
		"topRestaurants":     top,
		"newRestaurants":     newRestaurants,
		"pendingRestaurants": pendingRestaurants,
	})
}
