package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/sirupsen/logrus"

	"github.com/gopinathsjsu/team-project-20202-gvp/routes"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	godotenv.Load()

	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web frontend
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	restaurants := app.Party("/api/restaurants")
	{
		restaurants.Get("/", routes.ListRestaurants)
		restaurants.Get("/search", routes.SearchRestaurants)
		restaurants.Get("/search/{id:uint}", routes.SearchRestaurantDetail)
		restaurants.Get("/{id:uint}", routes.GetRestaurant)
		restaurants.Get("/{id:uint}/available-slots", routes.AvailableSlots)
		restaurants.Get("/{id:uint}/reviews", routes.ListReviews)

		restaurants.Post("/{id:uint}/reviews", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateReview)

		restaurants.Post("/", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.CreateRestaurant)
		restaurants.Get("/my", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.ManagerRestaurants)
		restaurants.Patch("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.UpdateRestaurant)
		restaurants.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.DeleteRestaurant)
		restaurants.Put("/{id:uint}/hours", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.SetRestaurantHours)
	}

	bookings := app.Party("/api/bookings")
	{
		slots := bookings.Party("/slots", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware)
		{
			slots.Post("/", routes.CreateSlot)
			slots.Get("/", routes.ListManagedSlots)
			slots.Post("/recurring", routes.CreateRecurringSlots)
			slots.Get("/{id:uint}", routes.GetSlot)
			slots.Patch("/{id:uint}", routes.UpdateSlot)
			slots.Delete("/{id:uint}", routes.DeleteSlot)
		}

		bookings.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBooking)
		bookings.Get("/my", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MyBookings)
		bookings.Get("/my/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetBooking)
		bookings.Patch("/my/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.UpdateBooking)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/restaurants/pending", routes.PendingRestaurants)
		admin.Get("/restaurants/approved", routes.ApprovedRestaurants)
		admin.Post("/restaurants/{id:uint}/approve", routes.ApproveRestaurant)
		admin.Delete("/restaurants/{id:uint}", routes.RemoveRestaurant)
		admin.Get("/analytics", routes.AnalyticsDashboard)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
