package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
)

// UserIDFromTokenMiddleware extracts the principal's ID from the verified JWT
// and stores it in the request context for downstream handlers.
func UserIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("userID", claims.ID)
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}

// ManagerOnlyMiddleware ensures the requester is a restaurant manager.
func ManagerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleRestaurantManager {
		JSONError(ctx, iris.StatusForbidden, "forbidden", "restaurant manager access required")
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// AdminOnlyMiddleware ensures the requester is an admin.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleAdmin {
		JSONError(ctx, iris.StatusForbidden, "forbidden", "admin access required")
		return
	}
	ctx.Values().Set("userID", claims.ID)
	ctx.Next()
}

// ContextUserID returns the principal ID placed by the JWT middlewares.
func ContextUserID(ctx iris.Context) (uint, bool) {
	v := ctx.Values().Get("userID")
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
