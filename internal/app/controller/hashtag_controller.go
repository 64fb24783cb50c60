package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type HashtagController struct {
	hashtagService service.HashtagService
}

func NewHashtagController(hashtagService service.HashtagService) *HashtagController {
	return &HashtagController{
		hashtagService: hashtagService,
	}
}

type AttachHashtagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// AttachHashtag tags one of the caller's listings
// POST /api/v1/plates/:id/hashtags
func (ctrl *HashtagController) AttachHashtag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	platesID, ok := plateIDParam(c)
	if !ok {
		return
	}

	var req AttachHashtagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	hashtag, err := ctrl.hashtagService.Attach(userID, platesID, req.Tag)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidHashtag):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid hashtag",
			})
		case errors.Is(err, service.ErrPlateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
		case errors.Is(err, service.ErrPlateNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Plate does not belong to user",
			})
		case errors.Is(err, service.ErrHashtagAlreadyAttached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Hashtag already attached",
			})
		default:
			log.Error("Failed to attach hashtag", err, map[string]interface{}{
				"plates_id": platesID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to attach hashtag",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"hashtag": hashtag,
	})
}

// DetachHashtag removes a tag from one of the caller's listings
// DELETE /api/v1/plates/:id/hashtags/:hashtag_id
func (ctrl *HashtagController) DetachHashtag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	platesID, ok := plateIDParam(c)
	if !ok {
		return
	}

	hashtagID, err := strconv.ParseUint(c.Param("hashtag_id"), 10, 32)
	if err != nil || hashtagID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hashtag ID",
		})
		return
	}

	if err := ctrl.hashtagService.Detach(userID, platesID, uint(hashtagID)); err != nil {
		switch {
		case errors.Is(err, service.ErrPlateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
		case errors.Is(err, service.ErrPlateNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Plate does not belong to user",
			})
		case errors.Is(err, service.ErrHashtagNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hashtag not found",
			})
		default:
			log.Error("Failed to detach hashtag", err, map[string]interface{}{
				"plates_id":  platesID,
				"hashtag_id": hashtagID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to detach hashtag",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hashtag detached",
	})
}

// GetPlateHashtags lists a listing's tags
// GET /api/v1/plates/:id/hashtags
func (ctrl *HashtagController) GetPlateHashtags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	platesID, ok := plateIDParam(c)
	if !ok {
		return
	}

	hashtags, err := ctrl.hashtagService.GetByPlate(platesID)
	if err != nil {
		log.Error("Failed to fetch plate hashtags", err, map[string]interface{}{
			"plates_id": platesID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch plate hashtags",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hashtags": hashtags,
		"count":    len(hashtags),
	})
}

// GetPlatesByTag lists the listings carrying a tag, case-insensitively
// GET /api/v1/hashtags/:tag/plates
func (ctrl *HashtagController) GetPlatesByTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tag := c.Param("tag")

	plateIDs, err := ctrl.hashtagService.GetPlateIDsByTag(tag)
	if err != nil {
		log.Error("Failed to look up tag", err, map[string]interface{}{
			"tag": tag,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to look up tag",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plate_ids": plateIDs,
		"count":     len(plateIDs),
	})
}
