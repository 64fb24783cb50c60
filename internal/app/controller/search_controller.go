package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/app789plates/plates-backend/internal/app/repository"
	"github.com/app789plates/plates-backend/internal/app/service"
	"github.com/app789plates/plates-backend/internal/middleware"
)

type SearchController struct {
	searchService service.SearchService
}

func NewSearchController(searchService service.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// parseFilter reads the shared search query parameters:
// price_ceiling, plates_type_ids, province_ids, sort, limit, offset.
func parseFilter(c *gin.Context) (repository.SearchFilter, bool) {
	var filter repository.SearchFilter

	sort, err := service.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown sort key",
		})
		return filter, false
	}
	filter.Sort = sort

	if ceiling := c.Query("price_ceiling"); ceiling != "" {
		v, err := strconv.Atoi(ceiling)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid price ceiling",
			})
			return filter, false
		}
		filter.PriceCeiling = v
	}

	var ok bool
	if filter.PlatesTypeIDs, ok = parseIDList(c, "plates_type_ids"); !ok {
		return filter, false
	}
	if filter.ProvinceIDs, ok = parseIDList(c, "province_ids"); !ok {
		return filter, false
	}

	filter.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 1 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return filter, false
		}
		filter.Limit = v
	}
	if offset := c.Query("offset"); offset != "" {
		v, err := strconv.Atoi(offset)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid offset",
			})
			return filter, false
		}
		filter.Offset = v
	}

	return filter, true
}

func parseIDList(c *gin.Context, name string) ([]int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid " + name,
			})
			return nil, false
		}
		ids = append(ids, v)
	}
	return ids, true
}

func parseScope(c *gin.Context) (repository.ProvinceScope, bool) {
	scope, err := service.ParseProvinceScope(c.Query("province_scope"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown province scope",
		})
		return scope, false
	}
	return scope, true
}

func (ctrl *SearchController) respond(c *gin.Context, results []repository.PlateResult, err error) {
	log := middleware.GetLoggerFromContext(c)
	if err != nil {
		log.Error("Search failed", err, map[string]interface{}{
			"path": c.Request.URL.Path,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Search failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plates": results,
		"count":  len(results),
	})
}

// SearchByCategory lists plates in a lucky-number category
// GET /api/v1/search/category/:category
func (ctrl *SearchController) SearchByCategory(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	results, err := ctrl.searchService.SearchByCategory(c.Request.Context(), c.Param("category"), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown pattern category",
			})
			return
		}
		ctrl.respond(c, nil, err)
		return
	}
	ctrl.respond(c, results, nil)
}

// BrowseFrontTags lists plates excluding the reserved special front tag
// GET /api/v1/search/fronts
func (ctrl *SearchController) BrowseFrontTags(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	results, err := ctrl.searchService.BrowseFrontTags(filter)
	ctrl.respond(c, results, err)
}

func typeIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid type ID",
		})
		return 0, false
	}
	return id, true
}

// SearchByPlatesType lists plates of one plates type within a province scope
// GET /api/v1/search/plates-type/:id?province_scope=capital|provincial|any
func (ctrl *SearchController) SearchByPlatesType(c *gin.Context) {
	id, ok := typeIDParam(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	results, err := ctrl.searchService.SearchByPlatesType(id, scope, filter)
	ctrl.respond(c, results, err)
}

// SearchByVehicleType lists plates of one vehicle type within a province scope
// GET /api/v1/search/vehicle-type/:id?province_scope=capital|provincial|any
func (ctrl *SearchController) SearchByVehicleType(c *gin.Context) {
	id, ok := typeIDParam(c)
	if !ok {
		return
	}
	scope, ok := parseScope(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	results, err := ctrl.searchService.SearchByVehicleType(id, scope, filter)
	ctrl.respond(c, results, err)
}

// GetPlateDetail returns one enriched listing
// GET /api/v1/search/plates/:id
func (ctrl *SearchController) GetPlateDetail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	platesID, ok := plateIDParam(c)
	if !ok {
		return
	}

	result, err := ctrl.searchService.GetPlateDetail(platesID)
	if err != nil {
		if errors.Is(err, service.ErrPlateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Plate not found",
			})
			return
		}
		log.Error("Failed to fetch plate detail", err, map[string]interface{}{
			"plates_id": platesID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch plate detail",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plate": result,
	})
}

// SearchPlates runs the number/text search with tiered fallback
// GET /api/v1/search/plates?back_number=&front_number=&front_text=
func (ctrl *SearchController) SearchPlates(c *gin.Context) {
	var terms repository.SearchTerms

	if raw := c.Query("back_number"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid back number",
			})
			return
		}
		terms.BackNumber = &v
	}
	if raw := c.Query("front_number"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 99 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid front number",
			})
			return
		}
		terms.FrontNumber = &v
	}
	terms.FrontText = strings.TrimSpace(c.Query("front_text"))

	if terms.BackNumber == nil && terms.FrontNumber == nil && terms.FrontText == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "At least one search term is required",
		})
		return
	}

	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	results, err := ctrl.searchService.SearchByTerms(terms, filter)
	ctrl.respond(c, results, err)
}
