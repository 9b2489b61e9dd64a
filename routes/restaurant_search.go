package routes

import (
	"strconv"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

func parseSearchParams(ctx iris.Context) (time.Time, int, bool) {
	dateStr := ctx.URLParam("date")
	timeStr := ctx.URLParam("time")
	peopleStr := ctx.URLParam("people")

	if dateStr == "" || timeStr == "" || peopleStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", "date, time and people are required parameters")
		return time.Time{}, 0, false
	}

	at, err := utils.ParseDateTime(dateStr, timeStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", err.Error())
		return time.Time{}, 0, false
	}
	people, err := strconv.Atoi(peopleStr)
	if err != nil || people < 1 {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", "people must be a positive integer")
		return time.Time{}, 0, false
	}
	return at, people, true
}

// SearchRestaurants is the discovery search: approved restaurants open at the
// requested time, optionally filtered by city/state/zip.
// GET /api/restaurants/search?date=...&time=...&people=...[&city=...]
func SearchRestaurants(ctx iris.Context) {
	at, _, ok := parseSearchParams(ctx)
	if !ok {
		return
	}

	summaries, err := services.NewAvailabilityService().SearchOpenRestaurants(
		at, ctx.URLParam("city"), ctx.URLParam("state"), ctx.URLParam("zip"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(summaries)
}

// SearchRestaurantDetail answers the ±30-minute availability search for one
// restaurant and returns its booking-page detail: qualifying slot times,
// rating, reviews and the booked-today counter.
// GET /api/restaurants/search/{id}?date=...&time=...&people=...
func SearchRestaurantDetail(ctx iris.Context) {
	restaurantID := ctx.Params().GetUintDefault("id", 0)
	if restaurantID == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid restaurant ID"})
		return
	}

	at, people, ok := parseSearchParams(ctx)
	if !ok {
		return
	}

	options, err := services.NewAvailabilityService().SearchWindow(restaurantID, at, people)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	var restaurant models.Restaurant
	if err := storage.DB.Preload("Hours").First(&restaurant, restaurantID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("Customer").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	counters := services.NewCounterService()
	rating, err := counters.AverageRating(restaurantID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	slotTimes := make([]string, 0, len(options))
	for _, option := range options {
		slotTimes = append(slotTimes, option.Time.Format(utils.ClockLayout))
	}

	ctx.JSON(iris.Map{
		"restaurant":         restaurant,
		"rating":             rating,
		"timesBookedToday":   counters.TimesBookedToday(&restaurant),
		"availableTimeSlots": slotTimes,
		"slots":              options,
		"reviews":            reviews,
	})
}
