package routes

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// buildTestApp wires a minimal Iris app with the real route tree and JWT
// verifier over an in-memory database.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.RestaurantHours{},
		&models.BookingSlot{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	))
	storage.DB = db
	storage.Redis = nil
	t.Cleanup(func() {
		storage.DB = nil
		sqlDB.Close()
	})

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	restaurants := app.Party("/api/restaurants")
	{
		restaurants.Get("/", ListRestaurants)
	}

	bookings := app.Party("/api/bookings")
	{
		bookings.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, CreateBooking)
		bookings.Get("/my", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, MyBookings)
		bookings.Patch("/my/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, UpdateBooking)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/restaurants/pending", PendingRestaurants)
		admin.Post("/restaurants/{id:uint}/approve", ApproveRestaurant)
	}

	require.NoError(t, app.Build())
	return app
}

// signTestToken returns a signed JWT for the given principal.
func signTestToken(t *testing.T, id uint, role string) string {
	t.Helper()
	token, err := utils.CreateAccessToken(id, role)
	require.NoError(t, err)
	return token
}

func seedUser(t *testing.T, role string) *models.User {
	t.Helper()
	email := fmt.Sprintf("%s-%d@routes.test", strings.ToLower(role), time.Now().UnixNano())
	user := models.User{FirstName: "Route", LastName: "Test", Email: email, Role: role}
	require.NoError(t, storage.DB.Create(&user).Error)
	return &user
}
