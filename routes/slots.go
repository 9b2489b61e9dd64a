package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

type CreateSlotRequest struct {
	RestaurantID uint      `json:"restaurantID" validate:"required"`
	SlotDatetime time.Time `json:"slotDatetime" validate:"required"`
	TableSize    int       `json:"tableSize" validate:"required,min=1"`
	TotalTables  int       `json:"totalTables" validate:"required,min=1"`
}

type UpdateSlotRequest struct {
	SlotDatetime *time.Time `json:"slotDatetime"`
	TableSize    *int       `json:"tableSize"`
	TotalTables  *int       `json:"totalTables"`
}

type RecurringSlotsRequest struct {
	RestaurantID uint   `json:"restaurantID" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate" validate:"required"`
	TableSizes   []int  `json:"tableSizes" validate:"required,min=1,dive,min=1"`
}

// CreateSlot adds a single bookable slot to one of the manager's restaurants.
func CreateSlot(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)

	var request CreateSlotRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	slot, err := services.NewSlotService().CreateSlot(managerID, request.RestaurantID,
		request.SlotDatetime, request.TableSize, request.TotalTables)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(slot)
}

// CreateRecurringSlots bulk-generates slots from the restaurant's weekly
// operating hours over an inclusive date range. Re-running with the same
// parameters creates nothing new.
func CreateRecurringSlots(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)

	var request RecurringSlotsRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, err := utils.ParseDate(request.StartDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", err.Error())
		return
	}
	endDate, err := utils.ParseDate(request.EndDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", err.Error())
		return
	}

	created, err := services.NewSlotService().CreateRecurringSlots(managerID, request.RestaurantID,
		startDate, endDate, request.TableSizes)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"created": len(created), "slots": created})
}

// ListManagedSlots returns all slots across the manager's restaurants.
func ListManagedSlots(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)

	slots, err := services.NewSlotService().ListManagedSlots(managerID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(slots)
}

// GetSlot returns one slot the manager owns.
func GetSlot(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	slotID := ctx.Params().GetUintDefault("id", 0)

	slot, err := services.NewSlotService().GetManagedSlot(managerID, slotID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(slot)
}

// UpdateSlot patches a slot the manager owns.
func UpdateSlot(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	slotID := ctx.Params().GetUintDefault("id", 0)

	var request UpdateSlotRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	slot, err := services.NewSlotService().UpdateSlot(managerID, slotID, services.SlotUpdate{
		SlotDatetime: request.SlotDatetime,
		TableSize:    request.TableSize,
		TotalTables:  request.TotalTables,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(slot)
}

// DeleteSlot removes a slot the manager owns; its bookings cascade with it.
func DeleteSlot(ctx iris.Context) {
	managerID, _ := utils.ContextUserID(ctx)
	slotID := ctx.Params().GetUintDefault("id", 0)

	if err := services.NewSlotService().DeleteSlot(managerID, slotID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"message": "Slot deleted"})
}
