package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

var bgContext = context.Background()

const ratingCacheTTL = 5 * time.Minute

// CounterService keeps the restaurant's "times booked today" counter in step
// with the booking ledger and computes derived aggregates on read.
type CounterService struct{}

func NewCounterService() *CounterService {
	return &CounterService{}
}

// ApplyBookingDelta adjusts the restaurant's booking counter. Must run inside
// the same transaction as the booking write. The counter is only valid for
// BookedTodayDate: the first write of a new UTC day resets it to zero before
// applying the delta, and the result is floored at zero.
func (cs *CounterService) ApplyBookingDelta(tx *gorm.DB, restaurantID uint, delta int) error {
	var restaurant models.Restaurant
	if err := lockForUpdate(tx).First(&restaurant, restaurantID).Error; err != nil {
		return err
	}

	today := utils.Today(timeNow())
	count := restaurant.TimesBookedToday
	if restaurant.BookedTodayDate == nil || !utils.SameDate(*restaurant.BookedTodayDate, today) {
		count = 0
	}

	count += delta
	if count < 0 {
		count = 0
	}

	return tx.Model(&models.Restaurant{}).Where("id = ?", restaurant.ID).
		Updates(map[string]interface{}{
			"times_booked_today": count,
			"booked_today_date":  today,
		}).Error
}

// TimesBookedToday returns the effective counter value: zero when the stored
// date is stale, so a day rollover never shows yesterday's count.
func (cs *CounterService) TimesBookedToday(restaurant *models.Restaurant) int {
	if restaurant.BookedTodayDate == nil || !utils.SameDate(*restaurant.BookedTodayDate, utils.Today(timeNow())) {
		return 0
	}
	return restaurant.TimesBookedToday
}

// BookedCount counts active bookings against a slot.
func (cs *CounterService) BookedCount(tx *gorm.DB, slotID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("slot_id = ? AND status = ?", slotID, models.BookingStatusBooked).
		Count(&count).Error
	return count, err
}

// AvailableTables returns total tables minus the slot's active bookings.
func (cs *CounterService) AvailableTables(tx *gorm.DB, slot *models.BookingSlot) (int, error) {
	booked, err := cs.BookedCount(tx, slot.ID)
	if err != nil {
		return 0, err
	}
	available := slot.TotalTables - int(booked)
	if available < 0 {
		available = 0
	}
	return available, nil
}

func ratingCacheKey(restaurantID uint) string {
	return fmt.Sprintf("restaurant:%d:avg_rating", restaurantID)
}

// AverageRating returns the mean review rating for a restaurant, zero when it
// has no reviews. Cached briefly in Redis; writes invalidate the key.
func (cs *CounterService) AverageRating(restaurantID uint) (float64, error) {
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(bgContext, ratingCacheKey(restaurantID)).Float64(); err == nil {
			return cached, nil
		}
	}

	var avg sql.NullFloat64
	if err := storage.DB.Model(&models.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return 0, err
	}

	rating := 0.0
	if avg.Valid {
		rating = avg.Float64
	}

	if storage.Redis != nil {
		storage.Redis.Set(bgContext, ratingCacheKey(restaurantID), rating, ratingCacheTTL)
	}
	return rating, nil
}

// InvalidateRating drops the cached average after a review write.
func (cs *CounterService) InvalidateRating(restaurantID uint) {
	if storage.Redis != nil {
		storage.Redis.Del(bgContext, ratingCacheKey(restaurantID))
	}
}
