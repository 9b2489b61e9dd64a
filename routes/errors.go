package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"github.com/sirupsen/logrus"

	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// missing entities are 404, business-rule violations and bad input are 400,
// everything else is an unexpected 500.
func writeServiceError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrCapacityExceeded):
		utils.JSONError(ctx, iris.StatusBadRequest, "capacity_exceeded", err.Error())
	case errors.Is(err, services.ErrPartySize):
		utils.JSONError(ctx, iris.StatusBadRequest, "party_size", err.Error())
	case errors.Is(err, services.ErrClosed):
		utils.JSONError(ctx, iris.StatusBadRequest, "closed", err.Error())
	case errors.Is(err, services.ErrOutOfHours):
		utils.JSONError(ctx, iris.StatusBadRequest, "out_of_hours", err.Error())
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.JSONError(ctx, iris.StatusBadRequest, "already_cancelled", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_transition", err.Error())
	case services.IsValidationError(err):
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", err.Error())
	default:
		logrus.WithError(err).Error("unexpected service error")
		utils.CreateInternalServerError(ctx)
	}
}
