package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

type CreateBookingRequest struct {
	SlotID         uint `json:"slotID" validate:"required"`
	NumberOfPeople int  `json:"numberOfPeople" validate:"required,min=1"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateBooking books a table at a slot for the authenticated customer.
func CreateBooking(ctx iris.Context) {
	customerID, ok := utils.ContextUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "User not authenticated"})
		return
	}

	var request CreateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := services.NewBookingService().CreateBooking(customerID, request.SlotID, request.NumberOfPeople)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

// MyBookings lists the authenticated customer's bookings, newest first.
func MyBookings(ctx iris.Context) {
	customerID, _ := utils.ContextUserID(ctx)

	bookings, err := services.NewBookingService().ListCustomerBookings(customerID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(bookings)
}

// GetBooking returns one booking the customer owns.
func GetBooking(ctx iris.Context) {
	customerID, _ := utils.ContextUserID(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	booking, err := services.NewBookingService().GetCustomerBooking(customerID, bookingID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(booking)
}

// UpdateBooking handles the customer status mutation. The only accepted
// transition is Booked -> Cancelled; anything else is rejected.
func UpdateBooking(ctx iris.Context) {
	customerID, _ := utils.ContextUserID(ctx)
	bookingID := ctx.Params().GetUintDefault("id", 0)

	var request UpdateBookingRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := services.NewBookingService().UpdateBookingStatus(customerID, bookingID, request.Status)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(booking)
}
