package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type SocialController struct {
	socialService service.SocialService
}

func NewSocialController(socialService service.SocialService) *SocialController {
	return &SocialController{
		socialService: socialService,
	}
}

func socialTargetParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// react wraps the shared auth, param and error mapping for reaction writes.
func (ctrl *SocialController) react(c *gin.Context, param string, op func(userID, targetID uint) error, successMsg string) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	targetID, ok := socialTargetParam(c, param)
	if !ok {
		return
	}

	if err := op(userID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrPlateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
			})
		case errors.Is(err, service.ErrReactionAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reaction already recorded",
			})
		case errors.Is(err, service.ErrReactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reaction not found",
			})
		default:
			log.Error("Reaction operation failed", err, map[string]interface{}{
				"user_id": userID,
				param:     targetID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Operation failed",
			})
		}
		return
	}

	log.Info(successMsg, map[string]interface{}{
		"user_id": userID,
		param:     targetID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": successMsg,
	})
}

// LikePlate POST /api/v1/social/plates/:plates_id/like
func (ctrl *SocialController) LikePlate(c *gin.Context) {
	ctrl.react(c, "plates_id", ctrl.socialService.LikePlate, "Plate liked")
}

// UnlikePlate DELETE /api/v1/social/plates/:plates_id/like
func (ctrl *SocialController) UnlikePlate(c *gin.Context) {
	ctrl.react(c, "plates_id", ctrl.socialService.UnlikePlate, "Plate unliked")
}

// SavePlate POST /api/v1/social/plates/:plates_id/save
func (ctrl *SocialController) SavePlate(c *gin.Context) {
	ctrl.react(c, "plates_id", ctrl.socialService.SavePlate, "Plate saved")
}

// UnsavePlate DELETE /api/v1/social/plates/:plates_id/save
func (ctrl *SocialController) UnsavePlate(c *gin.Context) {
	ctrl.react(c, "plates_id", ctrl.socialService.UnsavePlate, "Plate unsaved")
}

// LikeStore POST /api/v1/social/stores/:store_id/like
func (ctrl *SocialController) LikeStore(c *gin.Context) {
	ctrl.react(c, "store_id", ctrl.socialService.LikeStore, "Store liked")
}

// UnlikeStore DELETE /api/v1/social/stores/:store_id/like
func (ctrl *SocialController) UnlikeStore(c *gin.Context) {
	ctrl.react(c, "store_id", ctrl.socialService.UnlikeStore, "Store unliked")
}

// SaveStore POST /api/v1/social/stores/:store_id/save
func (ctrl *SocialController) SaveStore(c *gin.Context) {
	ctrl.react(c, "store_id", ctrl.socialService.SaveStore, "Store saved")
}

// UnsaveStore DELETE /api/v1/social/stores/:store_id/save
func (ctrl *SocialController) UnsaveStore(c *gin.Context) {
	ctrl.react(c, "store_id", ctrl.socialService.UnsaveStore, "Store unsaved")
}

// GetReactions lists the caller's liked and saved plate and store ids
// GET /api/v1/social/me
func (ctrl *SocialController) GetReactions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	fail := func(err error) {
		log.Error("Failed to fetch reactions", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch reactions",
		})
	}

	likedPlates, err := ctrl.socialService.GetLikedPlateIDs(userID)
	if err != nil {
		fail(err)
		return
	}
	savedPlates, err := ctrl.socialService.GetSavedPlateIDs(userID)
	if err != nil {
		fail(err)
		return
	}
	likedStores, err := ctrl.socialService.GetLikedStoreIDs(userID)
	if err != nil {
		fail(err)
		return
	}
	savedStores, err := ctrl.socialService.GetSavedStoreIDs(userID)
	if err != nil {
		fail(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked_plates": likedPlates,
		"saved_plates": savedPlates,
		"liked_stores": likedStores,
		"saved_stores": savedStores,
	})
}
