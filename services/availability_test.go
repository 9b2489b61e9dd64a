package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
)

func TestSearchWindowClosedDay(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	setHours(t, restaurant.ID, "Monday", "09:00", "17:00")

	// 2025-06-03 is a Tuesday; no hours row for it.
	_, err := NewAvailabilityService().SearchWindow(restaurant.ID, mustDate(t, "2025-06-03 12:00"), 2)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSearchWindowHoursBoundaries(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	setHours(t, restaurant.ID, "Monday", "09:00", "17:00")

	as := NewAvailabilityService()

	_, err := as.SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 08:59"), 2)
	assert.ErrorIs(t, err, ErrOutOfHours)

	_, err = as.SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 17:01"), 2)
	assert.ErrorIs(t, err, ErrOutOfHours)

	// The window is inclusive at both ends.
	_, err = as.SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 09:00"), 2)
	assert.NoError(t, err)
	_, err = as.SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 17:00"), 2)
	assert.NoError(t, err)
}

func TestSearchWindowUnknownRestaurant(t *testing.T) {
	setupTestDB(t)

	_, err := NewAvailabilityService().SearchWindow(42, mustDate(t, "2025-06-02 12:00"), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchWindowExcludesFullSlots(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	setHours(t, restaurant.ID, "Monday", "09:00", "17:00")
	slot := createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 12:00"), 4, 2)

	bs := NewBookingService()
	for i := 0; i < 2; i++ {
		customer := createUser(t, models.RoleCustomer)
		_, err := bs.CreateBooking(customer.ID, slot.ID, 2)
		require.NoError(t, err)
	}

	options, err := NewAvailabilityService().SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 12:00"), 2)
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestSearchWindowReturnsSortedCandidates(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	setHours(t, restaurant.ID, "Monday", "09:00", "17:00")

	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 11:30"), 4, 2)
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 12:00"), 4, 2)
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 12:30"), 4, 2)

	options, err := NewAvailabilityService().SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 12:00"), 3)
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.True(t, options[0].Time.Before(options[1].Time))
	assert.True(t, options[1].Time.Before(options[2].Time))
	for _, option := range options {
		assert.Equal(t, 2, option.AvailableTables)
		assert.GreaterOrEqual(t, option.TableSize, 3)
	}
}

func TestSearchWindowSkipsTooSmallTables(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	setHours(t, restaurant.ID, "Monday", "09:00", "17:00")
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 12:00"), 2, 2)

	options, err := NewAvailabilityService().SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 12:00"), 4)
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestSearchWindowRecomputesWeekdayAcrossMidnight(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)
	// Monday runs to midnight; Tuesday is closed.
	setHours(t, restaurant.ID, "Monday", "09:00", "23:59")

	// A 23:45 search has a +30m candidate on Tuesday 00:15, which must be
	// evaluated against Tuesday's (absent) hours and skipped.
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 23:30"), 4, 2)
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-03 00:15"), 4, 2)

	options, err := NewAvailabilityService().SearchWindow(restaurant.ID, mustDate(t, "2025-06-02 23:45"), 2)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, mustDate(t, "2025-06-02 23:30"), options[0].Time.UTC())
}

func TestAvailableSlotsForDate(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, true)

	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 10:00"), 2, 2)
	big := createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 10:00"), 6, 1)
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-03 10:00"), 6, 1) // other day

	as := NewAvailabilityService()

	options, err := as.AvailableSlots(restaurant.ID, mustDate(t, "2025-06-02 00:00"), 4)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, big.ID, options[0].SlotID)
	assert.Equal(t, 1, options[0].AvailableTables)

	// Booking the last table removes the slot from the listing.
	customer := createUser(t, models.RoleCustomer)
	_, err = NewBookingService().CreateBooking(customer.ID, big.ID, 4)
	require.NoError(t, err)

	options, err = as.AvailableSlots(restaurant.ID, mustDate(t, "2025-06-02 00:00"), 4)
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestAvailableSlotsHidesUnapproved(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)
	restaurant := createRestaurant(t, manager.ID, false)
	createSlot(t, restaurant.ID, mustDate(t, "2025-06-02 10:00"), 4, 2)

	_, err := NewAvailabilityService().AvailableSlots(restaurant.ID, mustDate(t, "2025-06-02 00:00"), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchOpenRestaurants(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)

	open := createRestaurant(t, manager.ID, true)
	setHours(t, open.ID, "Monday", "09:00", "17:00")

	closedDay := createRestaurant(t, manager.ID, true)
	setHours(t, closedDay.ID, "Tuesday", "09:00", "17:00")

	unapproved := createRestaurant(t, manager.ID, false)
	setHours(t, unapproved.ID, "Monday", "09:00", "17:00")

	summaries, err := NewAvailabilityService().SearchOpenRestaurants(mustDate(t, "2025-06-02 12:00"), "", "", "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, open.ID, summaries[0].ID)
	assert.Equal(t, "https://cdn.example.com/front.jpg", summaries[0].ImageURL)
}

func TestSearchOpenRestaurantsLocationFilter(t *testing.T) {
	setupTestDB(t)
	manager := createUser(t, models.RoleRestaurantManager)

	here := createRestaurant(t, manager.ID, true)
	setHours(t, here.ID, "Monday", "09:00", "17:00")

	there := createRestaurant(t, manager.ID, true)
	there.City = "Oakland"
	require.NoError(t, storage.DB.Save(there).Error)
	setHours(t, there.ID, "Monday", "09:00", "17:00")

	as := NewAvailabilityService()

	summaries, err := as.SearchOpenRestaurants(mustDate(t, "2025-06-02 12:00"), "san jose", "", "")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, here.ID, summaries[0].ID)

	summaries, err = as.SearchOpenRestaurants(mustDate(t, "2025-06-02 12:00"), "", "", "")
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}
