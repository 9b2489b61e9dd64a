package routes

import (
	"encoding/json"
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

type CreateRestaurantRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description"`
	CuisineType string   `json:"cuisineType" validate:"max=100"`
	CostRating  int      `json:"costRating" validate:"min=0,max=5"`
	ContactInfo string   `json:"contactInfo" validate:"max=20"`
	Address     string   `json:"address" validate:"required,max=255"`
	City        string   `json:"city" validate:"required,max=100"`
	State       string   `json:"state" validate:"required,max=100"`
	ZipCode     string   `json:"zipCode" validate:"required,max=10"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Photos      []string `json:"photos"`
}

type HoursEntry struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	OpenTime  string `json:"openTime" validate:"required"`
	CloseTime string `json:"closeTime" validate:"required"`
}

type SetHoursRequest struct {
	Hours []HoursEntry `json:"hours" validate:"required,min=1,max=7,dive"`
}

var weekdayNames = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// CreateRestaurant registers a new restaurant under the calling manager.
// Restaurants start unapproved and invisible to customers.
func CreateRestaurant(ctx iris.Context) {
	managerID, ok := utils.ContextUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "User not authenticated"})
		return
	}

	var request CreateRestaurantRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	photos, _ := json.Marshal(request.Photos)
	restaurant := models.Restaurant{
		ManagerID:   managerID,
		Name:        request.Name,
		Description: request.Description,
		CuisineType: request.CuisineType,
		CostRating:  request.CostRating,
		ContactInfo: request.ContactInfo,
		Address:     request.Address,
		City:        request.City,
		State:       request.State,
		ZipCode:     request.ZipCode,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
		Photos:      photos,
		Approved:    false,
	}

	if err := storage.DB.Create(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(restaurant)
}

// effectiveCounters replaces each restaurant's stored booking counter with the
// day-aware value, so a stale count never leaks out of list responses.
func effectiveCounters(restaurants []models.Restaurant) []models.Restaurant {
	counters := services.NewCounterService()
	for i := range restaurants {
		restaurants[i].TimesBookedToday = counters.TimesBookedToday(&restaurants[i])
	}
	return restaurants
}

// ListRestaurants returns approved restaurants, paginated.
// GET /api/restaurants?page=1&per_page=20
func ListRestaurants(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := storage.DB.Model(&models.Restaurant{}).Where("approved = ?", true).Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var restaurants []models.Restaurant
	err := storage.DB.Where("approved = ?", true).Order("name ASC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&restaurants).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, effectiveCounters(restaurants), page, perPage, total)
}

// GetRestaurant returns one approved restaurant with hours and its average
// rating and effective booked-today counter.
func GetRestaurant(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid restaurant ID"})
		return
	}

	var restaurant models.Restaurant
	err := storage.DB.Preload("Hours").Where("id = ? AND approved = ?", id, true).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	counters := services.NewCounterService()
	rating, err := counters.AverageRating(restaurant.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"restaurant":       restaurant,
		"rating":           rating,
		"timesBookedToday": counters.TimesBookedToday(&restaurant),
	})
}

// ManagerRestaurants lists the calling manager's restaurants, approved or not.
func ManagerRestaurants(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)

	var restaurants []models.Restaurant
	if err := storage.DB.Preload("Hours").Where("manager_id = ?", managerID).Find(&restaurants).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(effectiveCounters(restaurants))
}

// UpdateRestaurant patches profile fields on a restaurant the manager owns.
func UpdateRestaurant(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND manager_id = ?", id, managerID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var request CreateRestaurantRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	photos, _ := json.Marshal(request.Photos)
	restaurant.Name = request.Name
	restaurant.Description = request.Description
	restaurant.CuisineType = request.CuisineType
	restaurant.CostRating = request.CostRating
	restaurant.ContactInfo = request.ContactInfo
	restaurant.Address = request.Address
	restaurant.City = request.City
	restaurant.State = request.State
	restaurant.ZipCode = request.ZipCode
	restaurant.Latitude = request.Latitude
	restaurant.Longitude = request.Longitude
	restaurant.Photos = photos

	if err := storage.DB.Save(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(restaurant)
}

// DeleteRestaurant removes a restaurant the manager owns; hours, slots and
// bookings cascade with it.
func DeleteRestaurant(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND manager_id = ?", id, managerID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Select("Hours", "BookingSlots").Delete(&restaurant).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"message": "Restaurant deleted"})
}

// SetRestaurantHours replaces the weekly operating hours for a restaurant the
// manager owns. One entry per weekday; close must be after open on the same
// day (overnight windows are rejected).
func SetRestaurantHours(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	id := ctx.Params().GetUintDefault("id", 0)

	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND manager_id = ?", id, managerID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var request SetHoursRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	seen := make(map[string]bool, len(request.Hours))
	rows := make([]models.RestaurantHours, 0, len(request.Hours))
	for _, entry := range request.Hours {
		if !weekdayNames[entry.DayOfWeek] {
			utils.JSONError(ctx, iris.StatusBadRequest, "validation", "invalid day of week: "+entry.DayOfWeek)
			return
		}
		if seen[entry.DayOfWeek] {
			utils.JSONError(ctx, iris.StatusBadRequest, "validation", "duplicate day of week: "+entry.DayOfWeek)
			return
		}
		seen[entry.DayOfWeek] = true

		if !utils.ValidClock(entry.OpenTime) || !utils.ValidClock(entry.CloseTime) {
			utils.JSONError(ctx, iris.StatusBadRequest, "validation", "times must be HH:MM")
			return
		}
		if entry.CloseTime <= entry.OpenTime {
			utils.JSONError(ctx, iris.StatusBadRequest, "validation", "close time must be after open time")
			return
		}

		rows = append(rows, models.RestaurantHours{
			RestaurantID: restaurant.ID,
			DayOfWeek:    entry.DayOfWeek,
			OpenTime:     entry.OpenTime,
			CloseTime:    entry.CloseTime,
		})
	}

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.RestaurantHours{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"hours": rows})
}
