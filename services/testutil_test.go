package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
)

// setupTestDB points the global storage.DB at an in-memory SQLite database.
// A single connection serializes transactions the way the Postgres row lock
// does in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	timeNow = time.Now
	t.Cleanup(func() {
		storage.DB = nil
		timeNow = time.Now
		sqlDB.Close()
	})

	return db
}

func createUser(t *testing.T, role string) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     role + "-" + time.Now().Format("150405.000000") + "@example.com",
		Role:      role,
	}
	require.NoError(t, storage.DB.Create(&user).Error)
	return &user
}

func createRestaurant(t *testing.T, managerID uint, approved bool) *models.Restaurant {
	t.Helper()
	photos, _ := json.Marshal([]string{"https://cdn.example.com/front.jpg"})
	restaurant := models.Restaurant{
		ManagerID:   managerID,
		Name:        "Testaurant",
		CuisineType: "Italian",
		CostRating:  3,
		Address:     "1 Main St",
		City:        "San Jose",
		State:       "CA",
		ZipCode:     "95112",
		Photos:      photos,
		Approved:    approved,
	}
	require.NoError(t, storage.DB.Create(&restaurant).Error)
	return &restaurant
}

func setHours(t *testing.T, restaurantID uint, day, open, close string) {
	t.Helper()
	require.NoError(t, storage.DB.Create(&models.RestaurantHours{
		RestaurantID: restaurantID,
		DayOfWeek:    day,
		OpenTime:     open,
		CloseTime:    close,
	}).Error)
}

func createSlot(t *testing.T, restaurantID uint, at time.Time, tableSize, totalTables int) *models.BookingSlot {
	t.Helper()
	slot := models.BookingSlot{
		RestaurantID: restaurantID,
		SlotDatetime: at.UTC(),
		TableSize:    tableSize,
		TotalTables:  totalTables,
	}
	require.NoError(t, storage.DB.Create(&slot).Error)
	return &slot
}

// mustDate builds a UTC timestamp for tests.
func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed.UTC()
}
