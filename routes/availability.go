package routes

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// AvailableSlots lists a restaurant's bookable slots for a date and party
// size: GET /api/restaurants/{id}/available-slots?date=...&people=...
func AvailableSlots(ctx iris.Context) {
	restaurantID := ctx.Params().GetUintDefault("id", 0)
	if restaurantID == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid restaurant ID"})
		return
	}

	dateStr := ctx.URLParam("date")
	peopleStr := ctx.URLParam("people")
	if dateStr == "" || peopleStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", "date and people are required parameters")
		return
	}

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", err.Error())
		return
	}
	people, err := strconv.Atoi(peopleStr)
	if err != nil || people < 1 {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", "people must be a positive integer")
		return
	}

	options, err := services.NewAvailabilityService().AvailableSlots(restaurantID, date, people)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"slots": options})
}
