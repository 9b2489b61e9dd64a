package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

type validationError struct {
	ActualTag string `json:"tag"`
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Param     string `json:"param"`
}

// HandleValidationErrors renders validator failures from ctx.ReadJSON as a
// 400 with per-field details.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		wrapped := make([]validationError, 0, len(errs))
		for _, e := range errs {
			wrapped = append(wrapped, validationError{
				ActualTag: e.ActualTag(),
				Namespace: e.Namespace(),
				Kind:      e.Kind().String(),
				Type:      e.Type().String(),
				Value:     fmt.Sprintf("%v", e.Value()),
				Param:     e.Param(),
			})
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"validationErrors": wrapped})
		return
	}

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"message": "Invalid request body"})
}
