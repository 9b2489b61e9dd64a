package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/gopinathsjsu/team-project-20202-gvp/models"
	"github.com/gopinathsjsu/team-project-20202-gvp/services"
	"github.com/gopinathsjsu/team-project-20202-gvp/storage"
	"github.com/gopinathsjsu/team-project-20202-gvp/utils"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type ReviewResponse struct {
	ID           uint   `json:"id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"createdAt"`
	CustomerName string `json:"customerName"`
}

// CreateReview records the customer's review of a restaurant. The unique
// (restaurant, customer) index makes the one-review rule hold even when two
// requests race.
func CreateReview(ctx iris.Context) {
	customerID, ok := utils.ContextUserID(ctx)
	if !ok {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"message": "User not authenticated"})
		return
	}

	restaurantID := ctx.Params().GetUintDefault("id", 0)
	var restaurant models.Restaurant
	err := storage.DB.Where("id = ? AND approved = ?", restaurantID, true).First(&restaurant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var request CreateReviewRequest
	if err := ctx.ReadJSON(&request); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review := models.Review{
		RestaurantID: restaurant.ID,
		CustomerID:   customerID,
		Rating:       request.Rating,
		Comment:      request.Comment,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		// The unique index rejects a second review from the same customer.
		utils.JSONError(ctx, iris.StatusBadRequest, "validation", "You have already reviewed this restaurant")
		return
	}

	services.NewCounterService().InvalidateRating(restaurant.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

// ListReviews returns a restaurant's reviews with the running average rating.
func ListReviews(ctx iris.Context) {
	restaurantID := ctx.Params().GetUintDefault("id", 0)
	if restaurantID == 0 {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid restaurant ID"})
		return
	}

	var reviews []models.Review
	if err := storage.DB.Preload("Customer").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	rating, err := services.NewCounterService().AverageRating(restaurantID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	formatted := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		formatted = append(formatted, ReviewResponse{
			ID:           review.ID,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt.Format("2006-01-02 15:04"),
			CustomerName: review.Customer.FirstName + " " + review.Customer.LastName,
		})
	}

	ctx.JSON(iris.Map{"rating": rating, "reviews": formatted})
}
