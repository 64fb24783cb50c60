package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	apperrors "github.com/app789plates/plates-backend/internal/errors"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type PlateController struct {
	plateService service.PlateService
}

func NewPlateController(plateService service.PlateService) *PlateController {
	return &PlateController{
		plateService: plateService,
	}
}

type CreatePlateRequest struct {
	FrontText      string `json:"front_text" binding:"required"`
	FrontNumber    int    `json:"front_number"`
	BackNumber     int    `json:"back_number" binding:"required"`
	VehicleTypeID  int    `json:"vehicle_type_id" binding:"required"`
	PlatesTypeID   int    `json:"plates_type_id" binding:"required"`
	ProvinceID     int    `json:"province_id" binding:"required"`
	SpecialFrontID *int   `json:"special_front_id"`
	PlatesURI      string `json:"plates_uri"`
	Information    string `json:"information"`
	Total          int    `json:"total"`
	IsTemporary    bool   `json:"is_temporary"`
	Price          int    `json:"price"`
}

type UpdatePriceRequest struct {
	Price int `json:"price" binding:"required"`
}

type UpdateInformationRequest struct {
	Information string `json:"information"`
}

type UpdateSellingRequest struct {
	IsSelling *bool `json:"is_selling" binding:"required"`
}

type UpdateTotalRequest struct {
	Total *int `json:"total" binding:"required"`
}

type UpdatePinRequest struct {
	IsPin *bool `json:"is_pin" binding:"required"`
}

func plateIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid plate ID",
		})
		return 0, false
	}
	return uint(id), true
}

// CreatePlate registers a new plate listing
// POST /api/v1/plates
func (ctrl *PlateController) CreatePlate(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req CreatePlateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create plate request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	plate, err := ctrl.plateService.Create(userID, service.CreatePlateInput{
		FrontText:      req.FrontText,
		FrontNumber:    req.FrontNumber,
		BackNumber:     req.BackNumber,
		VehicleTypeID:  req.VehicleTypeID,
		PlatesTypeID:   req.PlatesTypeID,
		ProvinceID:     req.ProvinceID,
		SpecialFrontID: req.SpecialFrontID,
		PlatesURI:      req.PlatesURI,
		Information:    req.Information,
		Total:          req.Total,
		IsTemporary:    req.IsTemporary,
		Price:          req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlateData):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid plate data",
			})
		case errors.Is(err, service.ErrPlateDuplicate):
			log.Warn("Duplicate plate registration", map[string]interface{}{
				"user_id": userID,
			})
			c.JSON(http.StatusConflict, gin.H{
				"error": "Plate already registered",
			})
		default:
			log.Error("Failed to create plate", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create plate")
		}
		return
	}

	log.Info("Plate created successfully", map[string]interface{}{
		"plates_id": plate.ID,
		"user_id":   userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"plate": plate,
	})
}

// GetMyPlates lists the caller's listings
// GET /api/v1/plates/me?pinned=true|false
func (ctrl *PlateController) GetMyPlates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	pinned := c.Query("pinned") == "true"

	plates, err := ctrl.plateService.GetByOwner(userID, pinned)
	if err != nil {
		log.Error("Failed to fetch plates", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch plates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plates": plates,
		"count":  len(plates),
	})
}

// AddPrice appends a new asking price to the listing's history
// POST /api/v1/plates/:id/price
func (ctrl *PlateController) AddPrice(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		var req UpdatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ErrInvalidPlateData
		}
		return ctrl.plateService.AddPrice(userID, platesID, req.Price)
	}, "Price updated successfully")
}

// UpdateInformation replaces the listing description
// PUT /api/v1/plates/:id/information
func (ctrl *PlateController) UpdateInformation(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		var req UpdateInformationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ErrInvalidPlateData
		}
		return ctrl.plateService.UpdateInformation(userID, platesID, req.Information)
	}, "Information updated successfully")
}

// UpdateSelling toggles listing visibility
// PUT /api/v1/plates/:id/selling
func (ctrl *PlateController) UpdateSelling(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		var req UpdateSellingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ErrInvalidPlateData
		}
		return ctrl.plateService.UpdateSelling(userID, platesID, *req.IsSelling)
	}, "Selling status updated successfully")
}

// UpdateTotal sets the available quantity
// PUT /api/v1/plates/:id/total
func (ctrl *PlateController) UpdateTotal(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		var req UpdateTotalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ErrInvalidPlateData
		}
		return ctrl.plateService.UpdateTotal(userID, platesID, *req.Total)
	}, "Total updated successfully")
}

// UpdatePin pins or unpins the listing
// PUT /api/v1/plates/:id/pin
func (ctrl *PlateController) UpdatePin(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		var req UpdatePinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return service.ErrInvalidPlateData
		}
		return ctrl.plateService.UpdatePin(userID, platesID, *req.IsPin)
	}, "Pin status updated successfully")
}

// DeletePlate removes the caller's listing
// DELETE /api/v1/plates/:id
func (ctrl *PlateController) DeletePlate(c *gin.Context) {
	ctrl.update(c, func(userID, platesID uint) error {
		return ctrl.plateService.Delete(userID, platesID)
	}, "Plate deleted successfully")
}

// update wraps the shared auth, id-param and error mapping for single-plate
// writes.
func (ctrl *PlateController) update(c *gin.Context, op func(userID, platesID uint) error, successMsg string) {
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

	if err := op(userID, platesID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlateData):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request data",
			})
		case errors.Is(err, service.ErrPlateNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
		case errors.Is(err, service.ErrPlateNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Plate does not belong to user",
			})
		case errors.Is(err, service.ErrPinLimitReached):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Pinned plate limit reached",
			})
		default:
			log.Error("Plate operation failed", err, map[string]interface{}{
				"user_id":   userID,
				"plates_id": platesID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update plate")
		}
		return
	}

	log.Info(successMsg, map[string]interface{}{
		"user_id":   userID,
		"plates_id": platesID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": successMsg,
	})
}
