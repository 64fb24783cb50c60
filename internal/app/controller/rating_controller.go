package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type RatingController struct {
	ratingService service.RatingService
}

func NewRatingController(ratingService service.RatingService) *RatingController {
	return &RatingController{
		ratingService: ratingService,
	}
}

type RateStoreRequest struct {
	Score  *float64 `json:"score" binding:"required"`
	Review string   `json:"review"`
}

// RateStore records the caller's review of a store
// POST /api/v1/stores/:id/ratings
func (ctrl *RatingController) RateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}
	storeID := uint(id)

	var req RateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rating, err := ctrl.ratingService.Rate(userID, storeID, *req.Score, req.Review)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Rating score out of range",
			})
		case errors.Is(err, service.ErrRatingOwnStore):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cannot rate own store",
			})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
			})
		case errors.Is(err, service.ErrRatingAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Store already rated",
			})
		default:
			log.Error("Failed to rate store", err, map[string]interface{}{
				"user_id":  userID,
				"store_id": storeID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to rate store",
			})
		}
		return
	}

	log.Info("Store rated", map[string]interface{}{
		"rating_id": rating.ID,
		"store_id":  storeID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"rating": rating,
	})
}

// GetStoreRatings lists a store's reviews
// GET /api/v1/stores/:id/ratings
func (ctrl *RatingController) GetStoreRatings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}

	ratings, err := ctrl.ratingService.GetByStore(uint(id))
	if err != nil {
		log.Error("Failed to fetch store ratings", err, map[string]interface{}{
			"store_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch store ratings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ratings": ratings,
		"count":   len(ratings),
	})
}

// DeleteRating removes the caller's review
// DELETE /api/v1/ratings/:id
func (ctrl *RatingController) DeleteRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rating ID",
		})
		return
	}

	if err := ctrl.ratingService.Delete(uint(id), userID); err != nil {
		if errors.Is(err, service.ErrRatingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rating not found",
			})
			return
		}
		log.Error("Failed to delete rating", err, map[string]interface{}{
			"rating_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete rating",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating deleted",
	})
}
