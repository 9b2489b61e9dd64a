package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

const searchCacheTTL = 60 * time.Second

// AvailabilityService answers "what can a party of size P book at restaurant
// R around time T" by combining operating hours, slots and the ledger's
// booked counts.
type AvailabilityService struct {
	counters *CounterService
}

func NewAvailabilityService() *AvailabilityService {
	return &AvailabilityService{counters: NewCounterService()}
}

// SlotOption is one bookable slot returned by an availability query.
type SlotOption struct {
	SlotID          uint      `json:"slotID"`
	Time            time.Time `json:"time"`
	TableSize       int       `json:"tableSize"`
	AvailableTables int       `json:"availableTables"`
}

// RestaurantSummary is the discovery-search projection of a restaurant.
type RestaurantSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Cuisine       string  `json:"cuisine"`
	CostRating    int     `json:"costRating"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"imageURL"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	BookedToday   int     `json:"timesBookedToday"`
}

// AvailableSlots lists a restaurant's open slots for a calendar date that fit
// the party size, each with its remaining table count.
func (as *AvailabilityService) AvailableSlots(restaurantID uint, date time.Time, partySize int) ([]SlotOption, error) {
	if partySize <= 0 {
		return nil, validationf("party size must be positive")
	}
	if _, err := approvedRestaurant(restaurantID); err != nil {
		return nil, err
	}

	dayStart := utils.Today(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var slots []models.BookingSlot
	err := storage.DB.
		Where("restaurant_id = ? AND slot_datetime >= ? AND slot_datetime < ? AND table_size >= ?",
			restaurantID, dayStart, dayEnd, partySize).
		Order("slot_datetime ASC, table_size ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}

	options := make([]SlotOption, 0, len(slots))
	for i := range slots {
		available, err := as.counters.AvailableTables(storage.DB, &slots[i])
		if err != nil {
			return nil, err
		}
		if available > 0 {
			options = append(options, SlotOption{
				SlotID:          slots[i].ID,
				Time:            slots[i].SlotDatetime,
				TableSize:       slots[i].TableSize,
				AvailableTables: available,
			})
		}
	}
	return options, nil
}

// SearchWindow implements the ±30-minute availability search. The requested
// time must fall inside that day's operating hours; each candidate time is
// then re-validated against its own day's hours, because a candidate 30
// minutes away can cross midnight into a different weekday's schedule.
func (as *AvailabilityService) SearchWindow(restaurantID uint, at time.Time, partySize int) ([]SlotOption, error) {
	if partySize <= 0 {
		return nil, validationf("party size must be positive")
	}
	if _, err := approvedRestaurant(restaurantID); err != nil {
		return nil, err
	}
	at = at.UTC()

	hours, ok, err := as.hoursFor(restaurantID, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrClosed
	}
	within, err := as.withinHours(hours, at)
	if err != nil {
		return nil, err
	}
	if !within {
		return nil, ErrOutOfHours
	}

	var options []SlotOption
	for _, offset := range []time.Duration{-utils.SlotInterval, 0, utils.SlotInterval} {
		candidate := at.Add(offset)

		candHours, ok, err := as.hoursFor(restaurantID, candidate)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		within, err := as.withinHours(candHours, candidate)
		if err != nil {
			return nil, err
		}
		if !within {
			continue
		}

		var slot models.BookingSlot
		err = storage.DB.
			Where("restaurant_id = ? AND slot_datetime = ? AND table_size >= ?", restaurantID, candidate, partySize).
			Order("table_size ASC").
			First(&slot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		available, err := as.counters.AvailableTables(storage.DB, &slot)
		if err != nil {
			return nil, err
		}
		if available > 0 {
			options = append(options, SlotOption{
				SlotID:          slot.ID,
				Time:            slot.SlotDatetime,
				TableSize:       slot.TableSize,
				AvailableTables: available,
			})
		}
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Time.Before(options[j].Time) })
	return options, nil
}

// SearchOpenRestaurants is the discovery mode: approved restaurants whose
// operating window contains the requested time, optionally narrowed by
// location. No per-slot capacity check happens here; that waits until a
// specific restaurant is selected.
func (as *AvailabilityService) SearchOpenRestaurants(at time.Time, city, state, zipCode string) ([]RestaurantSummary, error) {
	at = at.UTC()

	cacheKey := fmt.Sprintf("search:%d:%s:%s:%s", at.Unix(), strings.ToLower(city), strings.ToLower(state), zipCode)
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(bgContext, cacheKey).Bytes(); err == nil {
			var summaries []RestaurantSummary
			if json.Unmarshal(cached, &summaries) == nil {
				return summaries, nil
			}
		}
	}

	query := storage.DB.Where("approved = ?", true)
	if city != "" {
		query = query.Where("LOWER(city) = LOWER(?)", city)
	}
	if state != "" {
		query = query.Where("LOWER(state) = LOWER(?)", state)
	}
	if zipCode != "" {
		query = query.Where("zip_code = ?", zipCode)
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}

	summaries := make([]RestaurantSummary, 0, len(restaurants))
	for i := range restaurants {
		hours, ok, err := as.hoursFor(restaurants[i].ID, at)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		within, err := as.withinHours(hours, at)
		if err != nil {
			return nil, err
		}
		if !within {
			continue
		}

		rating, err := as.counters.AverageRating(restaurants[i].ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, RestaurantSummary{
			ID:          restaurants[i].ID,
			Name:        restaurants[i].Name,
			Cuisine:     restaurants[i].CuisineType,
			CostRating:  restaurants[i].CostRating,
			Rating:      rating,
			ImageURL:    firstPhoto(&restaurants[i]),
			City:        restaurants[i].City,
			State:       restaurants[i].State,
			BookedToday: as.counters.TimesBookedToday(&restaurants[i]),
		})
	}

	if storage.Redis != nil {
		if payload, err := json.Marshal(summaries); err == nil {
			storage.Redis.Set(bgContext, cacheKey, payload, searchCacheTTL)
		}
	}
	return summaries, nil
}

// hoursFor loads the operating-hours row matching t's own weekday.
func (as *AvailabilityService) hoursFor(restaurantID uint, t time.Time) (*models.RestaurantHours, bool, error) {
	var hours models.RestaurantHours
	err := storage.DB.
		Where("restaurant_id = ? AND day_of_week = ?", restaurantID, utils.DayOfWeek(t)).
		First(&hours).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &hours, true, nil
}

func (as *AvailabilityService) withinHours(hours *models.RestaurantHours, t time.Time) (bool, error) {
	open, err := utils.CombineDayClock(t, hours.OpenTime)
	if err != nil {
		return false, err
	}
	close, err := utils.CombineDayClock(t, hours.CloseTime)
	if err != nil {
		return false, err
	}
	return utils.WithinWindow(open, close, t), nil
}

func firstPhoto(restaurant *models.Restaurant) string {
	if len(restaurant.Photos) == 0 {
		return ""
	}
	var photos []string
	if err := json.Unmarshal(restaurant.Photos, &photos); err != nil || len(photos) == 0 {
		return ""
	}
	return photos[0]
}

// approvedRestaurant resolves a customer-visible restaurant.
func approvedRestaurant(restaurantID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND approved = ?", restaurantID, true).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}
