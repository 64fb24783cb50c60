package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type PatternController struct {
	patternService service.PatternService
}

func NewPatternController(patternService service.PatternService) *PatternController {
	return &PatternController{
		patternService: patternService,
	}
}

// GetCategories lists every pattern category in catalog order
// GET /api/v1/patterns
func (ctrl *PatternController) GetCategories(c *gin.Context) {
	categories := ctrl.patternService.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategoryCount reports how many listings a category currently holds
// GET /api/v1/patterns/:category/count
func (ctrl *PatternController) GetCategoryCount(c *gin.Context) {
	category := c.Param("category")

	count, err := ctrl.patternService.CategorySize(category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown pattern category",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count category listings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"count":    count,
	})
}

// ReclassifyAll re-derives every listing's category memberships
// POST /api/v1/patterns/reclassify
func (ctrl *PatternController) ReclassifyAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	report, err := ctrl.patternService.ReclassifyAll()
	if err != nil {
		log.Error("Reclassification failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Reclassification failed",
		})
		return
	}

	log.Info("Reclassification finished", map[string]interface{}{
		"plates":      report.Plates,
		"memberships": report.Memberships,
	})

	c.JSON(http.StatusOK, gin.H{
		"report": report,
	})
}
