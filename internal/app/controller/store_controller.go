package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type StoreController struct {
	storeService service.StoreService
	plateService service.PlateService
}

func NewStoreController(
	storeService service.StoreService,
	plateService service.PlateService,
) *StoreController {
	return &StoreController{
		storeService: storeService,
		plateService: plateService,
	}
}

// SearchStores lists stores by name with inventory aggregates
// GET /api/v1/stores?name=&limit=&offset=
func (ctrl *StoreController) SearchStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = v
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid offset",
			})
			return
		}
		offset = v
	}

	stores, err := ctrl.storeService.Search(c.Query("name"), limit, offset)
	if err != nil {
		log.Error("Failed to search stores", err, map[string]interface{}{
			"name": c.Query("name"),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// GetStoreByID returns one store with its aggregates and listings
// GET /api/v1/stores/:id
func (ctrl *StoreController) GetStoreByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid store ID",
		})
		return
	}
	storeID := uint(id)

	store, err := ctrl.storeService.GetByID(storeID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store not found",
			})
			return
		}
		log.Error("Failed to fetch store", err, map[string]interface{}{
			"store_id": storeID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch store",
		})
		return
	}

	pinned, err := ctrl.plateService.GetByOwner(storeID, true)
	if err != nil {
		log.Error("Failed to fetch store plates", err, map[string]interface{}{
			"store_id": storeID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch store plates",
		})
		return
	}
	others, err := ctrl.plateService.GetByOwner(storeID, false)
	if err != nil {
		log.Error("Failed to fetch store plates", err, map[string]interface{}{
			"store_id": storeID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch store plates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store":         store,
		"pinned_plates": pinned,
		"plates":        others,
	})
}
