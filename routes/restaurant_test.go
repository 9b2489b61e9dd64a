package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

func seedRestaurant(t *testing.T, managerID uint, name string, approved bool) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		ManagerID: managerID,
		Name:      name,
		Address:   "1 Main St",
		City:      "San Jose",
		State:     "CA",
		ZipCode:   "95112",
		Approved:  approved,
	}
	require.NoError(t, storage.DB.Create(&restaurant).Error)
	return &restaurant
}

type restaurantPage struct {
	Data []models.Restaurant `json:"data"`
	Meta utils.PageMeta      `json:"meta"`
}

func TestListRestaurantsPagination(t *testing.T) {
	app := buildTestApp(t)

	manager := seedUser(t, models.RoleRestaurantManager)
	seedRestaurant(t, manager.ID, "Alpha", true)
	seedRestaurant(t, manager.ID, "Bravo", true)
	seedRestaurant(t, manager.ID, "Charlie", true)
	seedRestaurant(t, manager.ID, "Hidden", false)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants?page=1&per_page=2", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var page restaurantPage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Meta.Total)
	assert.Equal(t, 1, page.Meta.Page)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Alpha", page.Data[0].Name)
	assert.Equal(t, "Bravo", page.Data[1].Name)

	req = httptest.NewRequest(http.MethodGet, "/api/restaurants?page=2&per_page=2", nil)
	resp = httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Charlie", page.Data[0].Name)
}

func TestListRestaurantsResetsStaleCounter(t *testing.T) {
	app := buildTestApp(t)

	manager := seedUser(t, models.RoleRestaurantManager)
	restaurant := seedRestaurant(t, manager.ID, "Yesterday's Hit", true)

	// Counter left over from a previous day must read as zero.
	yesterday := utils.Today(time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, storage.DB.Model(restaurant).Updates(map[string]interface{}{
		"times_booked_today": 5,
		"booked_today_date":  yesterday,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var page restaurantPage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, 0, page.Data[0].TimesBookedToday)
}

func TestPendingRestaurantsResetsStaleCounter(t *testing.T) {
	app := buildTestApp(t)

	admin := seedUser(t, models.RoleAdmin)
	manager := seedUser(t, models.RoleRestaurantManager)
	restaurant := seedRestaurant(t, manager.ID, "Pending Counter", false)

	yesterday := utils.Today(time.Now().UTC().AddDate(0, 0, -1))
	require.NoError(t, storage.DB.Model(restaurant).Updates(map[string]interface{}{
		"times_booked_today": 3,
		"booked_today_date":  yesterday,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/restaurants/pending", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, admin.ID, models.RoleAdmin))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var pending []models.Restaurant
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, 0, pending[0].TimesBookedToday)
}
