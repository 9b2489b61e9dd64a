package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

// DefaultTotalTables is the table count assigned to generator-created slots.
const DefaultTotalTables = 3

// SlotService owns BookingSlot records: manager-scoped CRUD and bulk
// generation from the restaurant's weekly operating hours.
type SlotService struct{}

func NewSlotService() *SlotService {
	return &SlotService{}
}

// CreateRecurringSlots walks every date in [startDate, endDate], and for each
// date with operating hours creates one slot per 30-minute step and table
// size, skipping (restaurant, datetime, size) keys that already exist so a
// re-run is idempotent. Each slot is its own transactional unit: a failure
// partway leaves already-created slots intact.
func (ss *SlotService) CreateRecurringSlots(managerID, restaurantID uint, startDate, endDate time.Time, tableSizes []int) ([]models.BookingSlot, error) {
	if len(tableSizes) == 0 {
		return nil, validationf("at least one table size is required")
	}
	for _, size := range tableSizes {
		if size <= 0 {
			return nil, validationf("table sizes must be positive, got %d", size)
		}
	}
	if endDate.Before(startDate) {
		return nil, validationf("end date must not be before start date")
	}

	restaurant, err := ownedRestaurant(managerID, restaurantID)
	if err != nil {
		return nil, err
	}

	var hours []models.RestaurantHours
	if err := storage.DB.Where("restaurant_id = ?", restaurant.ID).Find(&hours).Error; err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return nil, ErrNotFound
	}

	byDay := make(map[string]models.RestaurantHours, len(hours))
	for _, h := range hours {
		byDay[h.DayOfWeek] = h
	}

	var created []models.BookingSlot
	for date := utils.Today(startDate); !date.After(utils.Today(endDate)); date = date.AddDate(0, 0, 1) {
		dayHours, ok := byDay[utils.DayOfWeek(date)]
		if !ok {
			continue
		}

		open, err := utils.CombineDayClock(date, dayHours.OpenTime)
		if err != nil {
			return created, err
		}
		close, err := utils.CombineDayClock(date, dayHours.CloseTime)
		if err != nil {
			return created, err
		}

		for _, at := range utils.SlotSteps(open, close) {
			for _, size := range tableSizes {
				slot := models.BookingSlot{
					RestaurantID: restaurant.ID,
					SlotDatetime: at,
					TableSize:    size,
					TotalTables:  DefaultTotalTables,
				}
				result := storage.DB.
					Where("restaurant_id = ? AND slot_datetime = ? AND table_size = ?", restaurant.ID, at, size).
					FirstOrCreate(&slot)
				if result.Error != nil {
					// A concurrent run may have inserted the same key; the
					// unique index turns that into a skip, not a failure.
					if isDuplicateKeyError(result.Error) {
						continue
					}
					return created, result.Error
				}
				if result.RowsAffected > 0 {
					created = append(created, slot)
				}
			}
		}
	}

	return created, nil
}

// CreateSlot adds a single slot to a restaurant the manager owns.
func (ss *SlotService) CreateSlot(managerID, restaurantID uint, at time.Time, tableSize, totalTables int) (*models.BookingSlot, error) {
	if tableSize <= 0 || totalTables <= 0 {
		return nil, validationf("table size and total tables must be positive")
	}

	restaurant, err := ownedRestaurant(managerID, restaurantID)
	if err != nil {
		return nil, err
	}

	slot := models.BookingSlot{
		RestaurantID: restaurant.ID,
		SlotDatetime: at.UTC(),
		TableSize:    tableSize,
		TotalTables:  totalTables,
	}
	if err := storage.DB.Create(&slot).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, validationf("a slot already exists for this restaurant, time and table size")
		}
		return nil, err
	}
	return &slot, nil
}

// ListManagedSlots returns all slots across the manager's restaurants.
func (ss *SlotService) ListManagedSlots(managerID uint) ([]models.BookingSlot, error) {
	var slots []models.BookingSlot
	err := storage.DB.
		Joins("JOIN restaurants ON restaurants.id = booking_slots.restaurant_id").
		Where("restaurants.manager_id = ?", managerID).
		Order("booking_slots.slot_datetime ASC").
		Find(&slots).Error
	return slots, err
}

// GetManagedSlot resolves a slot the manager owns, ErrNotFound otherwise.
func (ss *SlotService) GetManagedSlot(managerID, slotID uint) (*models.BookingSlot, error) {
	var slot models.BookingSlot
	err := storage.DB.
		Joins("JOIN restaurants ON restaurants.id = booking_slots.restaurant_id").
		Where("booking_slots.id = ? AND restaurants.manager_id = ?", slotID, managerID).
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// SlotUpdate carries the mutable slot fields; nil means leave unchanged.
type SlotUpdate struct {
	SlotDatetime *time.Time
	TableSize    *int
	TotalTables  *int
}

func (ss *SlotService) UpdateSlot(managerID, slotID uint, update SlotUpdate) (*models.BookingSlot, error) {
	slot, err := ss.GetManagedSlot(managerID, slotID)
	if err != nil {
		return nil, err
	}

	if update.SlotDatetime != nil {
		slot.SlotDatetime = update.SlotDatetime.UTC()
	}
	if update.TableSize != nil {
		if *update.TableSize <= 0 {
			return nil, validationf("table size must be positive")
		}
		slot.TableSize = *update.TableSize
	}
	if update.TotalTables != nil {
		if *update.TotalTables <= 0 {
			return nil, validationf("total tables must be positive")
		}
		slot.TotalTables = *update.TotalTables
	}

	if err := storage.DB.Save(slot).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, validationf("a slot already exists for this restaurant, time and table size")
		}
		return nil, err
	}
	return slot, nil
}

func (ss *SlotService) DeleteSlot(managerID, slotID uint) error {
	slot, err := ss.GetManagedSlot(managerID, slotID)
	if err != nil {
		return err
	}
	return storage.DB.Delete(slot).Error
}

// ownedRestaurant resolves a restaurant and checks manager ownership.
// Both a missing row and someone else's restaurant read as ErrNotFound so the
// response does not leak which restaurants exist.
func ownedRestaurant(managerID, restaurantID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND manager_id = ?", restaurantID, managerID).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}
